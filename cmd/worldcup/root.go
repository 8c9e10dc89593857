package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/roster"
	"github.com/npillmayer/roster/internal/config"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func rootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	root := &cobra.Command{
		Use:   "worldcup",
		Short: "Replay tournament scripts against a team roster",
		Long: `worldcup reads scripts of roster commands (add_team, add_player,
play_match, buy_team, …), executes them against an in-memory roster and
prints the status of every command.`,
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./worldcup.yaml)")
	flags.String("trace", "Error", "trace level: Debug, Info or Error")
	flags.String("color", config.ColorAuto, "colored status output: auto, always or never")
	flags.Int("directory-exponent", 3, "player directory starts with 2^k-1 buckets")
	flags.Int("max-nodes", 0, "capacity limit for every search tree, 0 for none")
	_ = v.BindPFlag("trace", flags.Lookup("trace"))
	_ = v.BindPFlag("color", flags.Lookup("color"))
	_ = v.BindPFlag("cup.directory_exponent", flags.Lookup("directory-exponent"))
	_ = v.BindPFlag("cup.max_nodes", flags.Lookup("max-nodes"))

	var cfg *config.Config
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.Init(v, cfgFile); err != nil {
			return err
		}
		var err error
		if cfg, err = config.Load(v); err != nil {
			return err
		}
		setupTracing(cfg, cmd.ErrOrStderr())
		return nil
	}
	root.AddCommand(runCmd(&cfg))
	root.AddCommand(dotCmd(&cfg))
	return root
}

func setupTracing(cfg *config.Config, w io.Writer) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetOutput(w)
	gtrace.CoreTracer.SetTraceLevel(tracing.TraceLevelFromString(strings.ToLower(cfg.Trace)))
}

// openScript opens the script named by args, or stdin.
func openScript(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", err
	}
	return f, args[0], nil
}

func replay(cfg *config.Config, r io.Reader, name string, out func(Result)) (*roster.Cup, error) {
	cup, err := roster.NewCup(cfg.CupConfig())
	if err != nil {
		return nil, err
	}
	cmds, err := ParseScript(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	T().Infof("replaying %d commands from %s", len(cmds), name)
	for _, c := range cmds {
		res := Execute(cup, c)
		if out != nil {
			out(res)
		}
	}
	return cup, nil
}

func runCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run [script]",
		Short: "Execute a script and print the status of every command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := openScript(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			console := NewConsole(cmd.OutOrStdout(), (*cfg).Color)
			_, err = replay(*cfg, in, name, console.Print)
			return err
		},
	}
}

func dotCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dot [script]",
		Short: "Execute a script and write the score-ordered team tree in DOT format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := openScript(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			cup, err := replay(*cfg, in, name, nil)
			if err != nil {
				return err
			}
			return cup.WriteTeamsDot(cmd.OutOrStdout())
		},
	}
}
