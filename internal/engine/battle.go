package engine

import (
	"errors"
	"math/rand"

	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
)

var (
	ErrBattleNotActive = errors.New("battle is not active")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrUnknownSkill    = errors.New("unknown skill")
)

// Battle is the per-room turn authority. It validates whose turn it is,
// dispatches the action, checks the win condition and flips the turn.
// Battle itself is not goroutine-safe; the owning session serializes access.
type Battle struct {
	Player1 *game.Combatant
	Player2 *game.Combatant

	CurrentTurn game.Side
	State       game.BattleState
	TurnCount   int
	Winner      game.Side

	catalog    *skill.Registry
	dispatcher *Dispatcher
	// randomFirstTurn removes first-mover bias by choosing the opening
	// side 50/50 instead of always player1.
	randomFirstTurn bool
}

// NewBattle creates a battle in the waiting state.
func NewBattle(catalog *skill.Registry, dispatcher *Dispatcher, p1, p2 *game.Combatant, randomFirstTurn bool) *Battle {
	return &Battle{
		Player1:         p1,
		Player2:         p2,
		State:           game.StateWaiting,
		catalog:         catalog,
		dispatcher:      dispatcher,
		randomFirstTurn: randomFirstTurn,
	}
}

// Start transitions waiting -> active: both combatants are reset to full
// health and mana and the opening turn is assigned.
func (b *Battle) Start() {
	b.Player1.Reset()
	b.Player2.Reset()
	b.CurrentTurn = game.SidePlayer1
	if b.randomFirstTurn && rand.Intn(2) == 1 {
		b.CurrentTurn = game.SidePlayer2
	}
	b.State = game.StateActive
	b.TurnCount = 0
	b.Winner = game.SideNone
}

// Combatant returns the combatant for a side.
func (b *Battle) Combatant(side game.Side) *game.Combatant {
	if side == game.SidePlayer1 {
		return b.Player1
	}
	return b.Player2
}

// PerformAction validates and dispatches one action for the given side.
// Validation failures (wrong turn, inactive battle, unknown skill) reject
// the action with nothing mutated. A dispatched action always consumes the
// turn — a soft-failed heal still flips it — unless it ended the game.
func (b *Battle) PerformAction(side game.Side, skillName string) (*game.SkillResult, error) {
	if b.State != game.StateActive {
		return nil, ErrBattleNotActive
	}
	if side != b.CurrentTurn {
		return nil, ErrNotYourTurn
	}
	sk, ok := b.catalog.Get(skillName)
	if !ok {
		return nil, ErrUnknownSkill
	}

	caster := b.Combatant(side)
	opponent := b.Combatant(side.Opponent())

	res := b.dispatcher.Execute(sk, caster, opponent)
	b.TurnCount++

	if opponent.IsDefeated() {
		b.State = game.StateEnded
		b.Winner = side
		res.Message += " " + caster.Name + " wins!"
		return res, nil
	}

	b.CurrentTurn = side.Opponent()
	return res, nil
}
