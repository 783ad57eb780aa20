package session

import (
	"fmt"
	"time"

	"github.com/MackZumarraga/zodiax-game/internal/engine"
	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
)

// occupant binds a connected client to its chosen character and battle side.
type occupant struct {
	client    Client
	character game.Character
	side      game.Side
}

// Room is the paired, stateful context for one ongoing battle. It lives
// from pairing until a win or a disconnect; the manager's mutex guards all
// access.
type Room struct {
	ID        string
	p1, p2    *occupant
	battle    *engine.Battle
	createdAt time.Time
}

func newRoom(p1, p2 *occupant, catalog *skill.Registry, dispatcher *engine.Dispatcher, randomFirstTurn bool) *Room {
	battle := engine.NewBattle(catalog, dispatcher, p1.character.Combatant(), p2.character.Combatant(), randomFirstTurn)
	battle.Start()
	return &Room{
		ID:        fmt.Sprintf("room_%d", time.Now().UnixNano()),
		p1:        p1,
		p2:        p2,
		battle:    battle,
		createdAt: time.Now(),
	}
}

func (r *Room) occupantOf(clientID string) *occupant {
	switch clientID {
	case r.p1.client.ID():
		return r.p1
	case r.p2.client.ID():
		return r.p2
	}
	return nil
}

func (r *Room) occupantFor(side game.Side) *occupant {
	if side == game.SidePlayer1 {
		return r.p1
	}
	return r.p2
}

// viewFor builds the per-recipient room view: each side sees its own
// combatant as "player" and the other as "opponent".
func (r *Room) viewFor(side game.Side, last *game.SkillResult) RoomView {
	self := r.battle.Combatant(side)
	opponent := r.battle.Combatant(side.Opponent())

	view := RoomView{
		RoomID:     r.ID,
		Player:     self,
		Opponent:   opponent,
		IsYourTurn: r.battle.State == game.StateActive && r.battle.CurrentTurn == side,
		GameState:  r.battle.State,
		LastAction: last,
	}
	if r.battle.State == game.StateEnded {
		view.Winner = r.battle.Combatant(r.battle.Winner).Name
	}
	return view
}

// matchRecord captures the room's final state for persistence.
func (r *Room) matchRecord() *game.MatchRecord {
	return &game.MatchRecord{
		RoomID:    r.ID,
		Player1:   r.p1.character.Name,
		Player2:   r.p2.character.Name,
		TurnCount: r.battle.TurnCount,
		FinalHP1:  r.battle.Player1.HP,
		FinalHP2:  r.battle.Player2.HP,
	}
}

// RoomView is one side's perspective of the room, sent with gameFound and
// gameUpdate events.
type RoomView struct {
	RoomID     string            `json:"roomId"`
	Player     *game.Combatant   `json:"player"`
	Opponent   *game.Combatant   `json:"opponent"`
	IsYourTurn bool              `json:"isYourTurn"`
	GameState  game.BattleState  `json:"gameState"`
	LastAction *game.SkillResult `json:"lastAction,omitempty"`
	Winner     string            `json:"winner,omitempty"`
}

type availableCharactersPayload struct {
	Characters []game.Character `json:"characters"`
	Taken      []string         `json:"taken"`
}

type characterPayload struct {
	Character string `json:"character"`
}

type errorPayload struct {
	Reason string `json:"reason"`
}
