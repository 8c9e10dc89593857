package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/roster"
	"github.com/npillmayer/roster/internal/config"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# two teams, one purchase
add_team 1
add_team 2
add_team 0
add_player 10 1 2,1,3,4,5 3 7 0 true
add_player 20 2 1,3,2,4,5 0 2 1 true
add_player 21 2 1,1,2,3,4 0 2 1 true
play_match 1 2
get_team_points 1
num_played_games_for_player 10
get_partial_spirit 20
buy_team 2 1
get_partial_spirit 10
get_ith_pointless_ability 0
get_ith_pointless_ability 1
leading_team
num_valid_teams
get_team 2
remove_team 2
get_team 2
add_player_cards 10 1
get_player_cards 20
num_played_games_for_player 10
`

var sampleOutput = []string{
	"add_team: SUCCESS",
	"add_team: SUCCESS",
	"add_team: INVALID_INPUT",
	"add_player: SUCCESS",
	"add_player: SUCCESS",
	"add_player: INVALID_INPUT",
	"play_match: SUCCESS, 1",
	"get_team_points: SUCCESS, 3",
	"num_played_games_for_player: SUCCESS, 4",
	"get_partial_spirit: SUCCESS, 1,3,2,4,5",
	"buy_team: SUCCESS",
	"get_partial_spirit: SUCCESS, 3,1,2,4,5",
	"get_ith_pointless_ability: SUCCESS, 2",
	"get_ith_pointless_ability: FAILURE",
	"leading_team: SUCCESS, 2",
	"num_valid_teams: SUCCESS, 1",
	"get_team: SUCCESS, team 2 (points=3 ability=9 players=2)",
	"remove_team: SUCCESS",
	"get_team: FAILURE",
	"add_player_cards: FAILURE",
	"get_player_cards: SUCCESS, 1",
	"num_played_games_for_player: SUCCESS, 4",
}

func TestReplaySample(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	var lines []string
	_, err := replay(config.Default(), strings.NewReader(sample), "sample", func(r Result) {
		lines = append(lines, r.String())
	})
	require.NoError(t, err)
	assert.Equal(t, sampleOutput, lines)
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{
		"kick_off 1",
		"add_team",
		"add_team x",
		"play_match 1",
		"add_player 1 1 1,2,3,4,5 0 0 0 maybe",
	} {
		_, err := ParseScript(strings.NewReader("add_team 1\n" + bad + "\n"))
		assert.True(t, errors.Is(err, ErrSyntax), "expected syntax error for %q, got %v", bad, err)
		assert.Contains(t, err.Error(), "line 2")
	}
	cmds, err := ParseScript(strings.NewReader("\n# comment\n  add_team   5  \n"))
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, 3, cmds[0].Line)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "buy_team: ALLOCATION_ERROR", Result{Op: "buy_team", Err: roster.ErrAllocation}.String())
	assert.Equal(t, "add_team: SUCCESS", Result{Op: "add_team"}.String())
}

func TestConsoleColors(t *testing.T) {
	var plain, colored bytes.Buffer
	NewConsole(&plain, config.ColorNever).Print(Result{Op: "add_team", Err: roster.ErrFailure})
	assert.Equal(t, "add_team: FAILURE\n", plain.String())
	NewConsole(&colored, config.ColorAlways).Print(Result{Op: "get_team_points", Value: "3"})
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), ", 3\n")
	var auto bytes.Buffer
	NewConsole(&auto, config.ColorAuto).Print(Result{Op: "add_team"})
	assert.Equal(t, "add_team: SUCCESS\n", auto.String(), "buffers are no terminals")
}

func TestRunCommand(t *testing.T) {
	script := filepath.Join(t.TempDir(), "sample.in")
	require.NoError(t, os.WriteFile(script, []byte(sample), 0o644))
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"run", "--color", "never", "--config", writeConfig(t), script})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, strings.Join(sampleOutput, "\n")+"\n", out.String())
}

func TestRunFromStdin(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("add_team 4\nget_team_points 4\n"))
	cmd.SetArgs([]string{"run", "--color", "never", "--config", writeConfig(t)})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "add_team: SUCCESS\nget_team_points: SUCCESS, 0\n", out.String())
}

func TestMaxNodesFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("add_team 1\nadd_team 2\n"))
	cmd.SetArgs([]string{"run", "--color", "never", "--max-nodes", "1", "--config", writeConfig(t)})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "add_team: SUCCESS\nadd_team: ALLOCATION_ERROR\n", out.String())
}

func TestDotCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("add_team 1\nadd_team 2\nadd_team 3\n"))
	cmd.SetArgs([]string{"dot", "--config", writeConfig(t)})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "strict digraph {"))
	assert.Contains(t, out.String(), "->")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"run", "--color", "purple", "--config", writeConfig(t)})
	assert.Error(t, cmd.Execute())
}

// writeConfig isolates tests from a worldcup.yaml in the working directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "worldcup.yaml")
	require.NoError(t, os.WriteFile(file, []byte("trace: Error\n"), 0o644))
	return file
}
