package roster

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/roster/avl"
	"github.com/npillmayer/roster/directory"
	"github.com/npillmayer/roster/lineage"
	"github.com/npillmayer/roster/perm"
)

// Config configures a Cup.
type Config struct {
	// MaxNodes bounds every search tree of the cup: the team trees and each
	// bucket of the player directory. 0 means unbounded.
	MaxNodes int
	// DirectoryExponent k gives 2^k − 1 initial player buckets. 0 means 3.
	DirectoryExponent int
}

// Cup is the tournament roster.
type Cup struct {
	teams     *avl.Tree[int, *Team, avl.NO_AUG]
	byAbility *avl.Tree[avl.DualKey, *Team, int] // summary counts valid teams
	byScore   *avl.Tree[avl.TripleKey, *Team, avl.NO_AUG]
	players   *directory.Directory[*Player]
	forest    *lineage.Forest[perm.Permutation]
	byNode    []*Player // indexed by lineage handle
}

// NewCup creates an empty cup.
func NewCup(cfg Config) (*Cup, error) {
	if cfg.MaxNodes < 0 {
		return nil, fmt.Errorf("%w: negative node limit %d", ErrInvalidInput, cfg.MaxNodes)
	}
	c := &Cup{}
	var err error
	if c.teams, err = avl.New(avl.Config[int, *Team, avl.NO_AUG]{
		Compare:  avl.CompareInt,
		MaxNodes: cfg.MaxNodes,
	}); err != nil {
		return nil, err
	}
	if c.byAbility, err = avl.New(avl.Config[avl.DualKey, *Team, int]{
		Compare:  avl.CompareDual,
		Augment:  validTeams{},
		MaxNodes: cfg.MaxNodes,
	}); err != nil {
		return nil, err
	}
	if c.byScore, err = avl.New(avl.Config[avl.TripleKey, *Team, avl.NO_AUG]{
		Compare:  avl.CompareTriple,
		MaxNodes: cfg.MaxNodes,
	}); err != nil {
		return nil, err
	}
	if c.players, err = directory.New[*Player](directory.Config{
		InitialExponent:   cfg.DirectoryExponent,
		MaxNodesPerBucket: cfg.MaxNodes,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if c.forest, err = lineage.New[perm.Permutation](perm.Group{}); err != nil {
		return nil, err
	}
	return c, nil
}

// NumTeams returns the number of registered teams.
func (c *Cup) NumTeams() int {
	return c.teams.Len()
}

// NumPlayers returns the number of registered players, released players
// included.
func (c *Cup) NumPlayers() int {
	return c.players.Len()
}

// NumValidTeams returns the number of teams having a goalkeeper.
func (c *Cup) NumValidTeams() int {
	return c.byAbility.Summary()
}

// Team returns the team with id teamID.
func (c *Cup) Team(teamID int) (*Team, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id %d", ErrInvalidInput, teamID)
	}
	return c.team(teamID)
}

func (c *Cup) team(teamID int) (*Team, error) {
	t, err := c.teams.Find(teamID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailure, err)
	}
	return t, nil
}

func (c *Cup) player(playerID int) (*Player, error) {
	p, err := c.players.Find(playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailure, err)
	}
	return p, nil
}

// AddTeam registers a new team without players.
func (c *Cup) AddTeam(teamID int) error {
	if teamID <= 0 {
		return fmt.Errorf("%w: team id %d", ErrInvalidInput, teamID)
	}
	if c.teams.Contains(teamID) {
		return fmt.Errorf("%w: team %d already exists", ErrFailure, teamID)
	}
	t := newTeam(teamID)
	if err := c.teams.Insert(teamID, t); err != nil {
		return allocationError(err)
	}
	if err := c.byAbility.Insert(t.abilityKey(), t); err != nil {
		must(c.teams.Remove(teamID))
		return allocationError(err)
	}
	if err := c.byScore.Insert(t.scoreKey(), t); err != nil {
		must(c.byAbility.Remove(t.abilityKey()))
		must(c.teams.Remove(teamID))
		return allocationError(err)
	}
	T().Debugf("roster: added team %d", teamID)
	return nil
}

// RemoveTeam unregisters a team. Its players stay registered but are released:
// their games played are frozen and they can no longer receive cards.
func (c *Cup) RemoveTeam(teamID int) error {
	if teamID <= 0 {
		return fmt.Errorf("%w: team id %d", ErrInvalidInput, teamID)
	}
	t, err := c.team(teamID)
	if err != nil {
		return err
	}
	if t.root != lineage.None {
		c.forest.AddCounter(t.root, t.games)
		c.byNode[t.root].team = nil
		t.games, t.root = 0, lineage.None
	}
	c.unindex(t)
	must(c.teams.Remove(teamID))
	T().Debugf("roster: removed team %d", teamID)
	return nil
}

// AddPlayer registers a new player with team teamID.
//
// gamesPlayed is the number of games the player has played before joining.
func (c *Cup) AddPlayer(playerID, teamID int, spirit perm.Permutation, gamesPlayed int64,
	ability, cards int, goalKeeper bool) error {
	//
	if playerID <= 0 || teamID <= 0 || gamesPlayed < 0 || cards < 0 || !spirit.IsValid() {
		return fmt.Errorf("%w: player %d, team %d, games %d, cards %d, spirit %v",
			ErrInvalidInput, playerID, teamID, gamesPlayed, cards, spirit)
	}
	if c.players.Contains(playerID) {
		return fmt.Errorf("%w: player %d already exists", ErrFailure, playerID)
	}
	t, err := c.team(teamID)
	if err != nil {
		return err
	}
	p := &Player{id: playerID, ability: ability, cards: cards, goalKeeper: goalKeeper}
	if err := c.players.Insert(playerID, p); err != nil {
		return allocationError(err)
	}
	teamSpirit := t.spirit.Compose(spirit)
	if t.root == lineage.None {
		p.node = c.forest.Add(gamesPlayed-t.games, teamSpirit)
		p.team = t
		t.root = p.node
	} else {
		rootGames, rootSpirit := c.forest.Local(t.root)
		p.node = c.forest.Attach(t.root, gamesPlayed-t.games-rootGames,
			rootSpirit.Inverse().Compose(teamSpirit))
	}
	invariant(int(p.node) == len(c.byNode), "AddPlayer: lineage handles out of sync")
	c.byNode = append(c.byNode, p)
	c.unindex(t)
	t.spirit = teamSpirit
	t.ability += ability
	t.players++
	if goalKeeper {
		t.goalKeepers++
	}
	c.reindex(t)
	T().Debugf("roster: added player %d to team %d", playerID, teamID)
	return nil
}

// PlayMatch lets two teams play a match and returns the result:
//
//	0  draw
//	1  team 1 wins by score
//	2  team 1 wins by spirit strength
//	3  team 2 wins by score
//	4  team 2 wins by spirit strength
//
// Score is points plus ability; spirit strength breaks ties. The winner gets
// 3 points, on a draw both teams get 1. Both teams need a goalkeeper.
func (c *Cup) PlayMatch(teamID1, teamID2 int) (int, error) {
	if teamID1 <= 0 || teamID2 <= 0 || teamID1 == teamID2 {
		return 0, fmt.Errorf("%w: teams %d and %d", ErrInvalidInput, teamID1, teamID2)
	}
	t1, err := c.team(teamID1)
	if err != nil {
		return 0, err
	}
	t2, err := c.team(teamID2)
	if err != nil {
		return 0, err
	}
	if !t1.IsValid() || !t2.IsValid() {
		return 0, fmt.Errorf("%w: teams %d and %d need a goalkeeper", ErrFailure, teamID1, teamID2)
	}
	result := matchResult(t1, t2)
	must(c.byScore.Remove(t1.scoreKey()))
	must(c.byScore.Remove(t2.scoreKey()))
	switch result {
	case 0:
		t1.points++
		t2.points++
	case 1, 2:
		t1.points += 3
	default:
		t2.points += 3
	}
	t1.games++
	t2.games++
	must(c.byScore.Insert(t1.scoreKey(), t1))
	must(c.byScore.Insert(t2.scoreKey(), t2))
	T().Debugf("roster: match %d vs %d, result %d", teamID1, teamID2, result)
	return result, nil
}

func matchResult(t1, t2 *Team) int {
	switch s1, s2 := t1.Score(), t2.Score(); {
	case s1 > s2:
		return 1
	case s1 < s2:
		return 3
	}
	switch s1, s2 := t1.spirit.Strength(), t2.spirit.Strength(); {
	case s1 > s2:
		return 2
	case s1 < s2:
		return 4
	}
	return 0
}

// NumPlayedGamesForPlayer returns the total games played by a player. Released
// players report the games played until release.
func (c *Cup) NumPlayedGamesForPlayer(playerID int) (int64, error) {
	if playerID <= 0 {
		return 0, fmt.Errorf("%w: player id %d", ErrInvalidInput, playerID)
	}
	p, err := c.player(playerID)
	if err != nil {
		return 0, err
	}
	root := c.forest.Find(p.node)
	games, _ := c.forest.Fold(p.node)
	if t := c.byNode[root].team; t != nil {
		games += t.games
	}
	return games, nil
}

// AddPlayerCards adds cards to an active player.
func (c *Cup) AddPlayerCards(playerID, cards int) error {
	if playerID <= 0 || cards < 0 {
		return fmt.Errorf("%w: player %d, cards %d", ErrInvalidInput, playerID, cards)
	}
	p, err := c.activePlayer(playerID)
	if err != nil {
		return err
	}
	p.cards += cards
	return nil
}

// PlayerCards returns the cards of a player, released or not.
func (c *Cup) PlayerCards(playerID int) (int, error) {
	if playerID <= 0 {
		return 0, fmt.Errorf("%w: player id %d", ErrInvalidInput, playerID)
	}
	p, err := c.player(playerID)
	if err != nil {
		return 0, err
	}
	return p.cards, nil
}

// TeamPoints returns the points of a team.
func (c *Cup) TeamPoints(teamID int) (int, error) {
	if teamID <= 0 {
		return 0, fmt.Errorf("%w: team id %d", ErrInvalidInput, teamID)
	}
	t, err := c.team(teamID)
	if err != nil {
		return 0, err
	}
	return t.points, nil
}

// IthPointlessAbility returns the id of the team at rank i, teams ordered by
// ability and id ascending.
func (c *Cup) IthPointlessAbility(i int) (int, error) {
	if i < 0 || i >= c.byAbility.Len() {
		return 0, fmt.Errorf("%w: rank %d of %d teams", ErrFailure, i, c.byAbility.Len())
	}
	key, _, err := c.byAbility.Select(i)
	invariant(err == nil, "IthPointlessAbility: rank checked but select failed")
	return key.ID, nil
}

// PartialSpirit returns the spirit of an active player composed with the
// spirits of all players who joined the team before, in joining order.
func (c *Cup) PartialSpirit(playerID int) (perm.Permutation, error) {
	if playerID <= 0 {
		return perm.Permutation{}, fmt.Errorf("%w: player id %d", ErrInvalidInput, playerID)
	}
	p, err := c.activePlayer(playerID)
	if err != nil {
		return perm.Permutation{}, err
	}
	_, spirit := c.forest.Fold(p.node)
	return spirit, nil
}

// BuyTeam lets team buyerID absorb team boughtID: points, ability, players
// and goalkeepers are added up, the spirit of the buyer becomes
// spirit(buyer) ∘ spirit(bought), and the bought team is removed.
func (c *Cup) BuyTeam(buyerID, boughtID int) error {
	if buyerID <= 0 || boughtID <= 0 || buyerID == boughtID {
		return fmt.Errorf("%w: teams %d and %d", ErrInvalidInput, buyerID, boughtID)
	}
	buyer, err := c.team(buyerID)
	if err != nil {
		return err
	}
	bought, err := c.team(boughtID)
	if err != nil {
		return err
	}
	for _, t := range [2]*Team{buyer, bought} {
		if t.root != lineage.None {
			c.forest.AddCounter(t.root, t.games)
			c.byNode[t.root].team = nil
		}
		t.games = 0
	}
	root := c.forest.Union(buyer.root, bought.root, buyer.players, bought.players,
		buyer.spirit, bought.spirit)
	if root != lineage.None {
		c.byNode[root].team = buyer
	}
	c.unindex(buyer)
	c.unindex(bought)
	must(c.teams.Remove(boughtID))
	buyer.root = root
	buyer.points += bought.points
	buyer.ability += bought.ability
	buyer.players += bought.players
	buyer.goalKeepers += bought.goalKeepers
	buyer.spirit = buyer.spirit.Compose(bought.spirit)
	c.reindex(buyer)
	T().Debugf("roster: team %d bought team %d", buyerID, boughtID)
	return nil
}

// LeadingTeam returns the id of the team with the highest score, ties broken
// by spirit strength and then by id.
func (c *Cup) LeadingTeam() (int, error) {
	key, _, err := c.byScore.Max()
	if err != nil {
		return 0, fmt.Errorf("%w: no teams", ErrFailure)
	}
	return key.ID, nil
}

// WriteTeamsDot writes the score-ordered team tree in Graphviz DOT format.
func (c *Cup) WriteTeamsDot(w io.Writer) error {
	return c.byScore.WriteDot(w, func(_ avl.TripleKey, t *Team) string {
		return fmt.Sprintf("%d: %d", t.id, t.Score())
	})
}

func (c *Cup) activePlayer(playerID int) (*Player, error) {
	p, err := c.player(playerID)
	if err != nil {
		return nil, err
	}
	if c.byNode[c.forest.Find(p.node)].team == nil {
		return nil, fmt.Errorf("%w: player %d has been released", ErrFailure, playerID)
	}
	return p, nil
}

// unindex removes t from the ordered team trees, prior to changing its keys.
func (c *Cup) unindex(t *Team) {
	must(c.byAbility.Remove(t.abilityKey()))
	must(c.byScore.Remove(t.scoreKey()))
}

// reindex inserts t into the ordered team trees. Each insert reuses the slot
// freed by the matching unindex.
func (c *Cup) reindex(t *Team) {
	must(c.byAbility.Insert(t.abilityKey(), t))
	must(c.byScore.Insert(t.scoreKey(), t))
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("roster: team index out of sync: %v", err))
	}
}

func allocationError(err error) error {
	if errors.Is(err, avl.ErrOutOfMemory) {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return fmt.Errorf("%w: %w", ErrFailure, err)
}
