package roster

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/roster/avl"
	"github.com/npillmayer/roster/perm"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	swap12 = perm.Permutation{2, 1, 3, 4, 5}
	swap23 = perm.Permutation{1, 3, 2, 4, 5}
	cycle  = perm.Permutation{2, 3, 4, 5, 1}
)

func newTestCup(t *testing.T) *Cup {
	t.Helper()
	c, err := NewCup(Config{})
	require.NoError(t, err)
	return c
}

func TestTeamRegistration(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)

	assert.ErrorIs(c.AddTeam(0), ErrInvalidInput)
	assert.ErrorIs(c.AddTeam(-3), ErrInvalidInput)
	assert.NoError(c.AddTeam(1))
	assert.ErrorIs(c.AddTeam(1), ErrFailure)
	assert.NoError(c.AddTeam(2))
	assert.Equal(2, c.NumTeams())

	assert.ErrorIs(c.RemoveTeam(0), ErrInvalidInput)
	assert.ErrorIs(c.RemoveTeam(3), ErrFailure)
	assert.NoError(c.RemoveTeam(1))
	assert.Equal(1, c.NumTeams())
	_, err := c.TeamPoints(1)
	assert.ErrorIs(err, ErrFailure)
	assert.NoError(c.AddTeam(1), "a removed team id may be reused")
}

func TestAddPlayerValidation(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	require.NoError(t, c.AddTeam(1))

	assert.ErrorIs(c.AddPlayer(0, 1, swap12, 0, 0, 0, false), ErrInvalidInput)
	assert.ErrorIs(c.AddPlayer(1, 0, swap12, 0, 0, 0, false), ErrInvalidInput)
	assert.ErrorIs(c.AddPlayer(1, 1, swap12, -1, 0, 0, false), ErrInvalidInput)
	assert.ErrorIs(c.AddPlayer(1, 1, swap12, 0, 0, -1, false), ErrInvalidInput)
	assert.ErrorIs(c.AddPlayer(1, 1, perm.Permutation{1, 1, 2, 3, 4}, 0, 0, 0, false), ErrInvalidInput)
	assert.ErrorIs(c.AddPlayer(1, 2, swap12, 0, 0, 0, false), ErrFailure)
	assert.NoError(c.AddPlayer(1, 1, swap12, 0, 0, 0, false))
	assert.ErrorIs(c.AddPlayer(1, 1, swap23, 0, 0, 0, false), ErrFailure)
	assert.Equal(1, c.NumPlayers())
}

func TestGamesAccumulateLazily(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	assert := assert.New(t)
	c := newTestCup(t)
	require.NoError(t, c.AddTeam(1))
	require.NoError(t, c.AddTeam(2))
	require.NoError(t, c.AddPlayer(10, 1, swap12, 5, 1, 0, true))
	require.NoError(t, c.AddPlayer(20, 2, swap23, 0, 1, 0, true))
	_, err := c.PlayMatch(1, 2)
	require.NoError(t, err)
	require.NoError(t, c.AddPlayer(11, 1, cycle, 2, 1, 0, false))
	_, err = c.PlayMatch(1, 2)
	require.NoError(t, err)

	for id, want := range map[int]int64{10: 7, 11: 3, 20: 2} {
		games, err := c.NumPlayedGamesForPlayer(id)
		assert.NoError(err)
		assert.Equal(want, games, "games of player %d", id)
	}
	_, err = c.NumPlayedGamesForPlayer(99)
	assert.ErrorIs(err, ErrFailure)
	_, err = c.NumPlayedGamesForPlayer(0)
	assert.ErrorIs(err, ErrInvalidInput)
}

func TestPlayMatchResults(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	for id := 1; id <= 4; id++ {
		require.NoError(t, c.AddTeam(id))
	}
	// team 1: ability 10; team 2: ability 4; teams 3 and 4: ability 4 with
	// different spirit strengths
	require.NoError(t, c.AddPlayer(1, 1, perm.Identity(), 0, 10, 0, true))
	require.NoError(t, c.AddPlayer(2, 2, perm.Identity(), 0, 4, 0, true))
	require.NoError(t, c.AddPlayer(3, 3, perm.Permutation{5, 4, 3, 2, 1}, 0, 4, 0, true))
	require.NoError(t, c.AddPlayer(4, 4, swap12, 0, 4, 0, true))

	r, err := c.PlayMatch(1, 2)
	assert.NoError(err)
	assert.Equal(1, r)
	r, err = c.PlayMatch(2, 1)
	assert.NoError(err)
	assert.Equal(3, r)
	r, err = c.PlayMatch(3, 4)
	assert.NoError(err)
	assert.Equal(2, r)
	r, err = c.PlayMatch(4, 3) // team 3 has 3 points now
	assert.NoError(err)
	assert.Equal(3, r)

	pts, _ := c.TeamPoints(1)
	assert.Equal(6, pts)
	pts, _ = c.TeamPoints(3)
	assert.Equal(6, pts)
	pts, _ = c.TeamPoints(2)
	assert.Equal(0, pts)

	_, err = c.PlayMatch(1, 1)
	assert.ErrorIs(err, ErrInvalidInput)
	_, err = c.PlayMatch(1, 9)
	assert.ErrorIs(err, ErrFailure)
}

func TestPlayMatchDrawAndStrengthLoss(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	for id := 1; id <= 3; id++ {
		require.NoError(t, c.AddTeam(id))
	}
	require.NoError(t, c.AddPlayer(1, 1, swap12, 0, 7, 0, true))
	require.NoError(t, c.AddPlayer(2, 2, swap23, 0, 7, 0, true))
	require.NoError(t, c.AddPlayer(3, 3, cycle, 0, 7, 0, true))
	r, err := c.PlayMatch(1, 2)
	assert.NoError(err)
	assert.Equal(0, r)
	for _, id := range []int{1, 2} {
		pts, _ := c.TeamPoints(id)
		assert.Equal(1, pts)
	}
	// team 3 lacks a point but gains ability; cycle has 4 inversions, swap12 has 1
	require.NoError(t, c.AddPlayer(4, 3, perm.Identity(), 0, 1, 0, false))
	r, err = c.PlayMatch(1, 3)
	assert.NoError(err)
	assert.Equal(4, r)
}

func TestPlayMatchNeedsGoalKeepers(t *testing.T) {
	c := newTestCup(t)
	require.NoError(t, c.AddTeam(1))
	require.NoError(t, c.AddTeam(2))
	require.NoError(t, c.AddPlayer(1, 1, swap12, 0, 3, 0, true))
	require.NoError(t, c.AddPlayer(2, 2, swap12, 0, 3, 0, false))
	assert.Equal(t, 1, c.NumValidTeams())
	_, err := c.PlayMatch(1, 2)
	assert.ErrorIs(t, err, ErrFailure)
	games, _ := c.NumPlayedGamesForPlayer(1)
	assert.Equal(t, int64(0), games)
}

func TestPartialSpiritFollowsJoiningOrder(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	require.NoError(t, c.AddTeam(1))
	spirits := []perm.Permutation{swap12, swap23, cycle, {5, 3, 1, 2, 4}}
	for i, s := range spirits {
		require.NoError(t, c.AddPlayer(i+1, 1, s, 0, 0, 0, false))
	}
	want := perm.Identity()
	for i, s := range spirits {
		want = want.Compose(s)
		got, err := c.PartialSpirit(i + 1)
		assert.NoError(err)
		assert.Equal(want, got, "partial spirit of player %d", i+1)
	}
	team, err := c.Team(1)
	require.NoError(t, err)
	assert.Equal(want, team.Spirit())
}

func TestBuyTeam(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	for id := 1; id <= 3; id++ {
		require.NoError(t, c.AddTeam(id))
	}
	// team 1 is the smaller buyer: its root moves below team 2's root
	require.NoError(t, c.AddPlayer(1, 1, swap12, 1, 5, 0, true))
	require.NoError(t, c.AddPlayer(2, 2, swap23, 2, 1, 0, false))
	require.NoError(t, c.AddPlayer(3, 2, cycle, 3, 1, 0, true))
	require.NoError(t, c.AddPlayer(4, 2, swap12, 4, 1, 0, false))
	require.NoError(t, c.AddPlayer(5, 3, cycle, 0, 1, 0, true))
	_, err := c.PlayMatch(2, 3)
	require.NoError(t, err)
	_, err = c.PlayMatch(1, 3)
	require.NoError(t, err)

	assert.ErrorIs(c.BuyTeam(1, 1), ErrInvalidInput)
	assert.ErrorIs(c.BuyTeam(1, 7), ErrFailure)
	require.NoError(t, c.BuyTeam(1, 2))

	_, err = c.TeamPoints(2)
	assert.ErrorIs(err, ErrFailure)
	assert.Equal(2, c.NumTeams())
	team, _ := c.Team(1)
	assert.Equal(4, team.Players())
	assert.Equal(8, team.Ability())
	assert.Equal(swap12.Compose(swap23).Compose(cycle).Compose(swap12), team.Spirit())

	for id, want := range map[int]int64{1: 2, 2: 3, 3: 4, 4: 5} {
		games, err := c.NumPlayedGamesForPlayer(id)
		assert.NoError(err)
		assert.Equal(want, games, "games of player %d", id)
	}
	spirit, _ := c.PartialSpirit(1)
	assert.Equal(swap12, spirit)
	spirit, _ = c.PartialSpirit(3)
	assert.Equal(swap12.Compose(swap23).Compose(cycle), spirit)

	// all bought players take part in the next match
	_, err = c.PlayMatch(1, 3)
	require.NoError(t, err)
	for id, want := range map[int]int64{1: 3, 2: 4, 3: 5, 4: 6} {
		games, _ := c.NumPlayedGamesForPlayer(id)
		assert.Equal(want, games, "games of player %d", id)
	}
}

func TestBuyEmptyTeams(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	for id := 1; id <= 3; id++ {
		require.NoError(t, c.AddTeam(id))
	}
	require.NoError(t, c.AddPlayer(1, 2, swap12, 4, 1, 0, true))
	assert.NoError(c.BuyTeam(1, 2))
	assert.NoError(c.BuyTeam(1, 3))
	spirit, err := c.PartialSpirit(1)
	assert.NoError(err)
	assert.Equal(swap12, spirit)
	require.NoError(t, c.AddPlayer(2, 1, swap23, 0, 1, 0, false))
	spirit, _ = c.PartialSpirit(2)
	assert.Equal(swap12.Compose(swap23), spirit)
	assert.Equal(1, c.NumValidTeams())
}

func TestReleasedPlayersAreFrozen(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	require.NoError(t, c.AddTeam(1))
	require.NoError(t, c.AddTeam(2))
	require.NoError(t, c.AddPlayer(1, 1, swap12, 3, 1, 2, true))
	require.NoError(t, c.AddPlayer(2, 1, swap23, 0, 1, 0, false))
	require.NoError(t, c.AddPlayer(3, 2, cycle, 0, 1, 0, true))
	_, err := c.PlayMatch(1, 2)
	require.NoError(t, err)
	require.NoError(t, c.RemoveTeam(1))
	// a new team with the same id must not revive the old players
	require.NoError(t, c.AddTeam(1))
	require.NoError(t, c.AddPlayer(4, 1, swap12, 0, 1, 0, true))
	_, err = c.PlayMatch(1, 2)
	require.NoError(t, err)

	games, err := c.NumPlayedGamesForPlayer(1)
	assert.NoError(err)
	assert.Equal(int64(4), games)
	games, _ = c.NumPlayedGamesForPlayer(2)
	assert.Equal(int64(1), games)
	assert.ErrorIs(c.AddPlayerCards(1, 1), ErrFailure)
	cards, err := c.PlayerCards(1)
	assert.NoError(err)
	assert.Equal(2, cards)
	_, err = c.PartialSpirit(2)
	assert.ErrorIs(err, ErrFailure)
	assert.ErrorIs(c.AddPlayer(1, 2, swap12, 0, 0, 0, false), ErrFailure, "released ids stay taken")
	assert.Equal(4, c.NumPlayers())
}

func TestCards(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	require.NoError(t, c.AddTeam(1))
	require.NoError(t, c.AddPlayer(1, 1, swap12, 0, 0, 1, false))
	assert.ErrorIs(c.AddPlayerCards(1, -1), ErrInvalidInput)
	assert.ErrorIs(c.AddPlayerCards(2, 1), ErrFailure)
	assert.NoError(c.AddPlayerCards(1, 4))
	cards, err := c.PlayerCards(1)
	assert.NoError(err)
	assert.Equal(5, cards)
	_, err = c.PlayerCards(-1)
	assert.ErrorIs(err, ErrInvalidInput)
}

func TestIthPointlessAbility(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	_, err := c.IthPointlessAbility(0)
	assert.ErrorIs(err, ErrFailure)
	for id := 1; id <= 4; id++ {
		require.NoError(t, c.AddTeam(id))
	}
	require.NoError(t, c.AddPlayer(1, 1, swap12, 0, 9, 0, true))
	require.NoError(t, c.AddPlayer(2, 3, swap12, 0, 2, 0, true))
	require.NoError(t, c.AddPlayer(3, 4, swap12, 0, 2, 0, true))
	// ability order: 2 (0), 3 (2), 4 (2), 1 (9)
	for i, want := range []int{2, 3, 4, 1} {
		id, err := c.IthPointlessAbility(i)
		assert.NoError(err)
		assert.Equal(want, id, "rank %d", i)
	}
	_, err = c.IthPointlessAbility(4)
	assert.ErrorIs(err, ErrFailure)
	_, err = c.IthPointlessAbility(-1)
	assert.ErrorIs(err, ErrFailure)
}

func TestLeadingTeam(t *testing.T) {
	assert := assert.New(t)
	c := newTestCup(t)
	_, err := c.LeadingTeam()
	assert.ErrorIs(err, ErrFailure)
	for id := 1; id <= 3; id++ {
		require.NoError(t, c.AddTeam(id))
		require.NoError(t, c.AddPlayer(id, id, swap12, 0, 5, 0, true))
	}
	lead, _ := c.LeadingTeam()
	assert.Equal(3, lead, "equal score and strength fall back to id")
	r, err := c.PlayMatch(1, 2)
	require.NoError(t, err)
	require.Equal(t, 0, r)
	_, err = c.PlayMatch(1, 3)
	require.NoError(t, err)
	lead, _ = c.LeadingTeam()
	assert.Equal(1, lead)
}

func TestAllocationLimit(t *testing.T) {
	c, err := NewCup(Config{MaxNodes: 2})
	require.NoError(t, err)
	require.NoError(t, c.AddTeam(1))
	require.NoError(t, c.AddTeam(2))
	err = c.AddTeam(3)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, ErrAllocation, Status(err))
	assert.Equal(t, 2, c.NumTeams())
	assert.Equal(t, 0, c.NumValidTeams())

	_, err = NewCup(Config{MaxNodes: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewCup(Config{DirectoryExponent: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatusMapping(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(Status(nil))
	assert.Equal(ErrInvalidInput, Status(ErrInvalidInput))
	assert.Equal(ErrAllocation, Status(avl.ErrOutOfMemory))
	assert.Equal(ErrFailure, Status(errors.New("other")))
	assert.Equal("ALLOCATION_ERROR", ErrAllocation.Error())
}

func TestWriteTeamsDot(t *testing.T) {
	c := newTestCup(t)
	for id := 1; id <= 3; id++ {
		require.NoError(t, c.AddTeam(id))
	}
	var buf bytes.Buffer
	require.NoError(t, c.WriteTeamsDot(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph"))
	assert.Contains(t, out, "2: 0")
}

func TestHundredTeamsBoughtByOne(t *testing.T) {
	c := newTestCup(t)
	rnd := rand.New(rand.NewSource(100))
	want := map[int]int64{}
	for id := 1; id <= 100; id++ {
		require.NoError(t, c.AddTeam(id))
		games := rnd.Int63n(50)
		p := perm.Identity()
		rnd.Shuffle(perm.N, func(i, j int) { p[i], p[j] = p[j], p[i] })
		require.NoError(t, c.AddPlayer(id, id, p, games, rnd.Intn(100), 0, true))
		want[id] = games
	}
	for i := 0; i < 200; i++ {
		a, b := rnd.Intn(100)+1, rnd.Intn(100)+1
		if a == b {
			continue
		}
		_, err := c.PlayMatch(a, b)
		require.NoError(t, err)
		want[a]++
		want[b]++
	}
	for id := 2; id <= 100; id++ {
		require.NoError(t, c.BuyTeam(1, id))
	}
	require.Equal(t, 1, c.NumTeams())
	for id := 1; id <= 100; id++ {
		games, err := c.NumPlayedGamesForPlayer(id)
		require.NoError(t, err)
		require.Equal(t, want[id], games, "games of player %d", id)
	}
}

func TestBrokenInvariantPanics(t *testing.T) {
	require.Panics(t, func() { invariant(false, "broken") })
	require.NotPanics(t, func() { invariant(true, "holds") })
}
