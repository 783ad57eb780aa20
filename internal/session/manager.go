package session

import (
	"errors"
	"sync"

	"github.com/MackZumarraga/zodiax-game/internal/constants"
	"github.com/MackZumarraga/zodiax-game/internal/engine"
	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/keys"
	"github.com/MackZumarraga/zodiax-game/internal/logging"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
	"github.com/MackZumarraga/zodiax-game/internal/storage"
)

var (
	ErrCharacterTaken   = errors.New("character already taken")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrAlreadyQueued    = errors.New("already queued or in a room")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNotInRoom        = errors.New("not a member of this room")
)

// Client is the transport-side handle for one connected player. Send
// delivers an outbound event; errors are the transport's problem and never
// abort session processing.
type Client interface {
	ID() string
	Send(event string, payload interface{}) error
}

// Manager owns the matchmaking queue, the character reservation set and the
// room map. All state lives on the instance (no package-level globals), so
// independent managers can run side by side in tests. A single mutex
// serializes every externally-triggered event (select, action, disconnect);
// handlers run to completion under it so no event ever observes a
// half-updated room.
type Manager struct {
	mu sync.Mutex

	catalog         *skill.Registry
	dispatcher      *engine.Dispatcher
	repo            storage.Repository // may be nil: stats become best-effort no-ops
	roster          []game.Character
	randomFirstTurn bool

	clients  map[string]Client
	waiting  *occupant
	reserved map[string]string // character key -> client ID
	rooms    map[string]*Room
	byClient map[string]string // client ID -> room ID
}

// NewManager creates an empty session manager for the given roster.
func NewManager(catalog *skill.Registry, dispatcher *engine.Dispatcher, repo storage.Repository, roster []game.Character, randomFirstTurn bool) *Manager {
	return &Manager{
		catalog:         catalog,
		dispatcher:      dispatcher,
		repo:            repo,
		roster:          roster,
		randomFirstTurn: randomFirstTurn,
		clients:         make(map[string]Client),
		reserved:        make(map[string]string),
		rooms:           make(map[string]*Room),
		byClient:        make(map[string]string),
	}
}

// Register adds a newly-connected client and sends it the current roster.
func (m *Manager) Register(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clients[c.ID()] = c
	m.sendRosterLocked(c)
}

// SendAvailableCharacters re-sends the roster and taken set to one client.
func (m *Manager) SendAvailableCharacters(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendRosterLocked(c)
}

func (m *Manager) sendRosterLocked(c Client) {
	taken := make([]string, 0, len(m.reserved))
	for key := range m.reserved {
		taken = append(taken, key)
	}
	m.send(c, constants.EventAvailableCharacters, availableCharactersPayload{
		Characters: m.roster,
		Taken:      taken,
	})
}

// TakenCharacters returns the currently reserved character keys.
func (m *Manager) TakenCharacters() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.reserved))
	for key := range m.reserved {
		out = append(out, key)
	}
	return out
}

// SelectCharacter reserves a character for the client and either queues it
// (first arrival) or pairs it with the waiting client into a new room. A
// reservation held by another connection rejects the request with no side
// effects.
func (m *Manager) SelectCharacter(c Client, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inQueueOrRoomLocked(c) {
		m.send(c, constants.EventError, errorPayload{Reason: "already queued or in a room"})
		return ErrAlreadyQueued
	}

	ch, ok := m.findCharacter(name)
	if !ok {
		m.send(c, constants.EventError, errorPayload{Reason: "unknown character: " + name})
		return ErrUnknownCharacter
	}

	key := keys.CharacterKey(ch.Name)
	if owner, taken := m.reserved[key]; taken && owner != c.ID() {
		m.send(c, constants.EventCharacterTaken, characterPayload{Character: ch.Name})
		return ErrCharacterTaken
	}
	m.reserved[key] = c.ID()
	m.broadcast(constants.EventCharacterSelected, characterPayload{Character: ch.Name})

	if m.waiting == nil {
		m.waiting = &occupant{client: c, character: ch, side: game.SidePlayer1}
		m.send(c, constants.EventWaitingForMatch, nil)
		logging.Info("player queued for match", logging.Fields{constants.LogFieldClientID: c.ID(), constants.LogFieldCharacter: ch.Name})
		return nil
	}

	// Pair with the waiting client: earlier arrival is player1.
	first := m.waiting
	m.waiting = nil
	second := &occupant{client: c, character: ch, side: game.SidePlayer2}

	room := newRoom(first, second, m.catalog, m.dispatcher, m.randomFirstTurn)
	m.rooms[room.ID] = room
	m.byClient[first.client.ID()] = room.ID
	m.byClient[second.client.ID()] = room.ID

	logging.Info("room created", logging.Fields{
		constants.LogFieldRoomID: room.ID,
		"player1":                first.character.Name,
		"player2":                second.character.Name,
	})

	m.send(first.client, constants.EventGameFound, room.viewFor(first.side, nil))
	m.send(second.client, constants.EventGameFound, room.viewFor(second.side, nil))
	return nil
}

// SubmitAction runs one battle action for the client and broadcasts the
// per-recipient room views. When the action ends the game the room is torn
// down after the broadcast.
func (m *Manager) SubmitAction(c Client, roomID, action string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		m.send(c, constants.EventError, errorPayload{Reason: "room not found"})
		return ErrRoomNotFound
	}
	occ := room.occupantOf(c.ID())
	if occ == nil {
		m.send(c, constants.EventError, errorPayload{Reason: "not a member of this room"})
		return ErrNotInRoom
	}

	res, err := room.battle.PerformAction(occ.side, action)
	if err != nil {
		m.send(c, constants.EventError, errorPayload{Reason: err.Error()})
		return err
	}

	m.send(room.p1.client, constants.EventGameUpdate, room.viewFor(game.SidePlayer1, res))
	m.send(room.p2.client, constants.EventGameUpdate, room.viewFor(game.SidePlayer2, res))

	if room.battle.State == game.StateEnded {
		m.finishRoomLocked(room)
	}
	return nil
}

// Disconnect tears down whatever the client owned: its queue slot and
// reservation when unmatched, or the whole room when paired. There are no
// reconnection semantics; a room disconnect is always fatal.
func (m *Manager) Disconnect(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients, c.ID())

	if m.waiting != nil && m.waiting.client.ID() == c.ID() {
		ch := m.waiting.character
		m.waiting = nil
		m.releaseLocked(ch)
		logging.Info("queued player disconnected", logging.Fields{constants.LogFieldClientID: c.ID(), constants.LogFieldCharacter: ch.Name})
		return
	}

	roomID, ok := m.byClient[c.ID()]
	if !ok {
		return
	}
	room := m.rooms[roomID]
	if room == nil {
		delete(m.byClient, c.ID())
		return
	}

	remaining := room.p1
	if remaining.client.ID() == c.ID() {
		remaining = room.p2
	}
	m.send(remaining.client, constants.EventOpponentDisconnected, nil)

	if m.repo != nil && room.battle.State == game.StateActive {
		rec := room.matchRecord()
		rec.EndReason = game.EndReasonDisconnect
		if err := m.repo.RecordMatch(rec); err != nil {
			logging.Error("failed to record disconnected match", err, logging.Fields{constants.LogFieldRoomID: room.ID})
		}
	}

	m.teardownRoomLocked(room)
	logging.Info("room torn down on disconnect", logging.Fields{constants.LogFieldRoomID: room.ID, constants.LogFieldClientID: c.ID()})
}

// finishRoomLocked persists stats for a naturally-ended battle and removes
// the room. Persistence failures are logged, never surfaced to players.
func (m *Manager) finishRoomLocked(room *Room) {
	if m.repo != nil {
		winner := room.occupantFor(room.battle.Winner)
		loser := room.occupantFor(room.battle.Winner.Opponent())

		winnerKey := keys.CharacterKey(winner.character.Name)
		loserKey := keys.CharacterKey(loser.character.Name)
		if err := m.repo.UpsertProfile(winnerKey, winner.character.Name); err != nil {
			logging.Error("failed to upsert winner profile", err, nil)
		}
		if err := m.repo.UpsertProfile(loserKey, loser.character.Name); err != nil {
			logging.Error("failed to upsert loser profile", err, nil)
		}
		if err := m.repo.UpdateStatsOnMatchEnd(winnerKey, loserKey); err != nil {
			logging.Error("failed to update stats", err, logging.Fields{constants.LogFieldRoomID: room.ID})
		}
		rec := room.matchRecord()
		rec.Winner = winner.character.Name
		rec.EndReason = game.EndReasonVictory
		if err := m.repo.RecordMatch(rec); err != nil {
			logging.Error("failed to record match", err, logging.Fields{constants.LogFieldRoomID: room.ID})
		}
	}

	logging.Info("match finished", logging.Fields{
		constants.LogFieldRoomID: room.ID,
		constants.LogFieldWinner: room.battle.Winner.String(),
	})
	m.teardownRoomLocked(room)
}

// teardownRoomLocked frees both reservations and deletes the room.
func (m *Manager) teardownRoomLocked(room *Room) {
	m.releaseLocked(room.p1.character)
	m.releaseLocked(room.p2.character)
	delete(m.byClient, room.p1.client.ID())
	delete(m.byClient, room.p2.client.ID())
	delete(m.rooms, room.ID)
}

// releaseLocked frees one reservation and announces it.
func (m *Manager) releaseLocked(ch game.Character) {
	key := keys.CharacterKey(ch.Name)
	if _, ok := m.reserved[key]; !ok {
		return
	}
	delete(m.reserved, key)
	m.broadcast(constants.EventCharacterFreed, characterPayload{Character: ch.Name})
}

func (m *Manager) inQueueOrRoomLocked(c Client) bool {
	if m.waiting != nil && m.waiting.client.ID() == c.ID() {
		return true
	}
	_, inRoom := m.byClient[c.ID()]
	return inRoom
}

func (m *Manager) findCharacter(name string) (game.Character, bool) {
	key := keys.CharacterKey(name)
	for _, ch := range m.roster {
		if keys.CharacterKey(ch.Name) == key {
			return ch, true
		}
	}
	return game.Character{}, false
}

// send delivers one event; transport errors are logged and swallowed.
func (m *Manager) send(c Client, event string, payload interface{}) {
	if err := c.Send(event, payload); err != nil {
		logging.Warn("failed to send event", err, logging.Fields{constants.LogFieldClientID: c.ID(), constants.LogFieldEvent: event})
	}
}

func (m *Manager) broadcast(event string, payload interface{}) {
	for _, c := range m.clients {
		m.send(c, event, payload)
	}
}
