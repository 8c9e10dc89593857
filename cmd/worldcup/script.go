package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/roster"
	"github.com/npillmayer/roster/perm"
)

// ErrSyntax signals a malformed script line.
var ErrSyntax = errors.New("script syntax error")

// Argument kinds of script commands.
const (
	argInt    = 'i' // decimal integer
	argSpirit = 'p' // permutation like 2,1,3,4,5
	argBool   = 'b' // true or false
)

// signatures lists the argument kinds of every command.
var signatures = map[string]string{
	"add_team":                    "i",
	"remove_team":                 "i",
	"add_player":                  "iipiiib",
	"play_match":                  "ii",
	"num_played_games_for_player": "i",
	"add_player_cards":            "ii",
	"get_player_cards":            "i",
	"get_team_points":             "i",
	"get_ith_pointless_ability":   "i",
	"get_partial_spirit":          "i",
	"buy_team":                    "ii",
	"leading_team":                "",
	"num_valid_teams":             "",
	"get_team":                    "i",
}

// Command is a parsed script line.
type Command struct {
	Line int
	Op   string
	args []any
}

func (c Command) intArg(i int) int {
	return int(c.args[i].(int64))
}

// Result is the outcome of a command.
type Result struct {
	Op    string
	Err   error  // nil on success
	Value string // empty if the command has no result value
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s", r.Op, roster.Status(r.Err))
	}
	if r.Value == "" {
		return r.Op + ": SUCCESS"
	}
	return fmt.Sprintf("%s: SUCCESS, %s", r.Op, r.Value)
}

// ParseScript reads one command per line. Empty lines and lines starting
// with # are skipped.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		cmd, err := parseCommand(lineno, fields)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func parseCommand(lineno int, fields []string) (Command, error) {
	cmd := Command{Line: lineno, Op: fields[0]}
	sig, ok := signatures[cmd.Op]
	if !ok {
		return cmd, fmt.Errorf("%w: line %d: unknown command %q", ErrSyntax, lineno, cmd.Op)
	}
	if len(fields)-1 != len(sig) {
		return cmd, fmt.Errorf("%w: line %d: %s takes %d arguments, have %d",
			ErrSyntax, lineno, cmd.Op, len(sig), len(fields)-1)
	}
	for i, kind := range sig {
		field := fields[i+1]
		switch kind {
		case argInt:
			n, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return cmd, fmt.Errorf("%w: line %d: %q is not a number", ErrSyntax, lineno, field)
			}
			cmd.args = append(cmd.args, n)
		case argSpirit:
			// an invalid spirit is passed on and rejected by the roster
			p, _ := perm.Parse(field)
			cmd.args = append(cmd.args, p)
		case argBool:
			b, err := strconv.ParseBool(field)
			if err != nil {
				return cmd, fmt.Errorf("%w: line %d: %q is not a boolean", ErrSyntax, lineno, field)
			}
			cmd.args = append(cmd.args, b)
		}
	}
	return cmd, nil
}

// Execute runs cmd against cup.
func Execute(cup *roster.Cup, cmd Command) Result {
	res := Result{Op: cmd.Op}
	var n int
	switch cmd.Op {
	case "add_team":
		res.Err = cup.AddTeam(cmd.intArg(0))
	case "remove_team":
		res.Err = cup.RemoveTeam(cmd.intArg(0))
	case "add_player":
		res.Err = cup.AddPlayer(cmd.intArg(0), cmd.intArg(1), cmd.args[2].(perm.Permutation),
			cmd.args[3].(int64), cmd.intArg(4), cmd.intArg(5), cmd.args[6].(bool))
	case "play_match":
		n, res.Err = cup.PlayMatch(cmd.intArg(0), cmd.intArg(1))
		res.Value = strconv.Itoa(n)
	case "num_played_games_for_player":
		var games int64
		games, res.Err = cup.NumPlayedGamesForPlayer(cmd.intArg(0))
		res.Value = strconv.FormatInt(games, 10)
	case "add_player_cards":
		res.Err = cup.AddPlayerCards(cmd.intArg(0), cmd.intArg(1))
	case "get_player_cards":
		n, res.Err = cup.PlayerCards(cmd.intArg(0))
		res.Value = strconv.Itoa(n)
	case "get_team_points":
		n, res.Err = cup.TeamPoints(cmd.intArg(0))
		res.Value = strconv.Itoa(n)
	case "get_ith_pointless_ability":
		n, res.Err = cup.IthPointlessAbility(cmd.intArg(0))
		res.Value = strconv.Itoa(n)
	case "get_partial_spirit":
		var p perm.Permutation
		p, res.Err = cup.PartialSpirit(cmd.intArg(0))
		res.Value = p.String()
	case "buy_team":
		res.Err = cup.BuyTeam(cmd.intArg(0), cmd.intArg(1))
	case "leading_team":
		n, res.Err = cup.LeadingTeam()
		res.Value = strconv.Itoa(n)
	case "num_valid_teams":
		res.Value = strconv.Itoa(cup.NumValidTeams())
	case "get_team":
		var team *roster.Team
		if team, res.Err = cup.Team(cmd.intArg(0)); res.Err == nil {
			res.Value = team.String()
		}
	}
	if res.Err != nil {
		T().Debugf("line %d: %s: %v", cmd.Line, cmd.Op, res.Err)
		res.Value = ""
	}
	return res
}
