package roster

import "github.com/npillmayer/roster/lineage"

// Player is a player record. Games played and partial spirit are not stored
// here but in the lineage forest of the Cup.
type Player struct {
	id         int
	ability    int
	cards      int
	goalKeeper bool
	node       lineage.Handle
	team       *Team // set on lineage roots only; nil once released
}

// ID returns the player id.
func (p *Player) ID() int { return p.id }

// Cards returns the number of cards received.
func (p *Player) Cards() int { return p.cards }

// Ability returns the player's ability.
func (p *Player) Ability() int { return p.ability }

// IsGoalKeeper reports whether the player is a goalkeeper.
func (p *Player) IsGoalKeeper() bool { return p.goalKeeper }
