// Package config holds the configuration of the worldcup command.
//
// Values are read with spf13/viper from defaults, an optional worldcup.yaml
// and WORLDCUP_ environment variables, e.g. WORLDCUP_CUP_MAX_NODES for
// cup.max_nodes. Command-line flags are bound on top by the command.
package config

import (
	"fmt"
	"strings"

	"github.com/npillmayer/roster"
	"github.com/spf13/viper"
)

// Name is used for the config file name and as the environment prefix.
const Name = "worldcup"

// Config is the complete configuration of the worldcup command.
type Config struct {
	// Trace is the trace level: Debug, Info or Error.
	Trace string `mapstructure:"trace"`
	// Color is one of auto, always or never.
	Color string    `mapstructure:"color"`
	Cup   CupConfig `mapstructure:"cup"`
}

// CupConfig configures the roster.
type CupConfig struct {
	DirectoryExponent int `mapstructure:"directory_exponent"`
	MaxNodes          int `mapstructure:"max_nodes"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Trace: "Error",
		Color: ColorAuto,
		Cup: CupConfig{
			DirectoryExponent: 3,
			MaxNodes:          0,
		},
	}
}

// SetDefaults registers all defaults with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("trace", defaults.Trace)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("cup.directory_exponent", defaults.Cup.DirectoryExponent)
	v.SetDefault("cup.max_nodes", defaults.Cup.MaxNodes)
}

// Init prepares v for reading: defaults, config file search path and
// environment. If file is non-empty, it is used instead of searching.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/" + Name)
	}
	v.SetEnvPrefix(strings.ToUpper(Name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// CupConfig returns the roster configuration.
func (c *Config) CupConfig() roster.Config {
	return roster.Config{
		MaxNodes:          c.Cup.MaxNodes,
		DirectoryExponent: c.Cup.DirectoryExponent,
	}
}
