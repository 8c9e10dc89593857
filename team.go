package roster

import (
	"fmt"

	"github.com/npillmayer/roster/avl"
	"github.com/npillmayer/roster/lineage"
	"github.com/npillmayer/roster/perm"
)

// Team is a team record. Teams are created and mutated by a Cup only.
type Team struct {
	id          int
	points      int
	players     int
	goalKeepers int
	games       int64 // games not yet folded into the players' lineage
	ability     int
	spirit      perm.Permutation // product of all players' spirits, in joining order
	root        lineage.Handle   // forest root of the players, or lineage.None
}

func newTeam(id int) *Team {
	return &Team{id: id, spirit: perm.Identity(), root: lineage.None}
}

// ID returns the team id.
func (t *Team) ID() int { return t.id }

// Points returns the points won in matches.
func (t *Team) Points() int { return t.points }

// Players returns the number of players, bought players included.
func (t *Team) Players() int { return t.players }

// Ability returns the cumulative ability of all players.
func (t *Team) Ability() int { return t.ability }

// Spirit returns the team spirit.
func (t *Team) Spirit() perm.Permutation { return t.spirit }

// Score is points plus ability.
func (t *Team) Score() int { return t.points + t.ability }

// IsValid reports whether the team may play, i.e. has a goalkeeper.
func (t *Team) IsValid() bool { return t.goalKeepers > 0 }

func (t *Team) String() string {
	return fmt.Sprintf("team %d (points=%d ability=%d players=%d)", t.id, t.points, t.ability, t.players)
}

func (t *Team) abilityKey() avl.DualKey {
	return avl.DualKey{Secondary: t.ability, ID: t.id}
}

func (t *Team) scoreKey() avl.TripleKey {
	return avl.TripleKey{First: t.Score(), Second: t.spirit.Strength(), ID: t.id}
}

// validTeams counts teams with a goalkeeper per subtree.
type validTeams struct{}

func (validTeams) Zero() int { return 0 }

func (validTeams) FromValue(t *Team) int {
	if t.IsValid() {
		return 1
	}
	return 0
}

func (validTeams) Add(left, right int) int { return left + right }
