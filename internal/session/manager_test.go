package session

import (
	"errors"
	"testing"

	"github.com/MackZumarraga/zodiax-game/internal/constants"
	"github.com/MackZumarraga/zodiax-game/internal/engine"
	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
)

type sentEvent struct {
	event   string
	payload interface{}
}

type fakeClient struct {
	id     string
	events []sentEvent
}

func (f *fakeClient) ID() string { return f.id }

func (f *fakeClient) Send(event string, payload interface{}) error {
	f.events = append(f.events, sentEvent{event: event, payload: payload})
	return nil
}

func (f *fakeClient) last() sentEvent {
	if len(f.events) == 0 {
		return sentEvent{}
	}
	return f.events[len(f.events)-1]
}

func (f *fakeClient) saw(event string) bool {
	for _, e := range f.events {
		if e.event == event {
			return true
		}
	}
	return false
}

type statsRepo struct {
	mockMatches []*game.MatchRecord
	statsCalled bool
	winnerKey   string
	loserKey    string
}

func (s *statsRepo) LoadPlayer(id uint) (*game.PlayerRecord, error) {
	return nil, errors.New("not implemented")
}

func (s *statsRepo) GetPlayerByName(name string) (*game.PlayerRecord, error) {
	return nil, errors.New("not implemented")
}

func (s *statsRepo) SavePlayer(r *game.PlayerRecord) error { return nil }

func (s *statsRepo) ResetAllPlayers(maxHP, maxMP int) error { return nil }

func (s *statsRepo) ListCharacters() ([]game.PlayerRecord, error) { return nil, nil }

func (s *statsRepo) UpsertProfile(key, displayName string) error { return nil }

func (s *statsRepo) UpdateStatsOnMatchEnd(winnerKey, loserKey string) error {
	s.statsCalled = true
	s.winnerKey, s.loserKey = winnerKey, loserKey
	return nil
}

func (s *statsRepo) GetProfileByKey(key string) (*game.PlayerProfile, error) {
	return nil, errors.New("not implemented")
}

func (s *statsRepo) RecordMatch(m *game.MatchRecord) error {
	s.mockMatches = append(s.mockMatches, m)
	return nil
}

func (s *statsRepo) ListRecentMatches(limit int) ([]game.MatchRecord, error) { return nil, nil }

var testRoster = []game.Character{
	{Name: "Shay Shay", MaxHP: 100, MaxMP: 15},
	{Name: "Charlotte", MaxHP: 100, MaxMP: 15},
	{Name: "Orion", MaxHP: 100, MaxMP: 15},
}

// newTestManager keeps repo nil (not a typed nil interface) when no stats
// tracking is wanted.
func newTestManager(repo *statsRepo) *Manager {
	m := NewManager(skill.DefaultCatalog(), engine.NewDispatcher(engine.DefaultRules()), nil, testRoster, false)
	if repo != nil {
		m.repo = repo
	}
	return m
}

func TestRegister_SendsRoster(t *testing.T) {
	m := newTestManager(nil)
	c := &fakeClient{id: "c1"}

	m.Register(c)

	if !c.saw(constants.EventAvailableCharacters) {
		t.Fatalf("expected roster on connect, got %v", c.events)
	}
	payload := c.last().payload.(availableCharactersPayload)
	if len(payload.Characters) != 3 || len(payload.Taken) != 0 {
		t.Fatalf("unexpected roster payload: %+v", payload)
	}
}

func TestSelectCharacter_QueuesFirstArrival(t *testing.T) {
	m := newTestManager(nil)
	c := &fakeClient{id: "c1"}
	m.Register(c)

	if err := m.SelectCharacter(c, "Shay Shay"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.saw(constants.EventCharacterSelected) {
		t.Fatalf("expected selection broadcast")
	}
	if c.last().event != constants.EventWaitingForMatch {
		t.Fatalf("expected waitingForMatch, got %v", c.last().event)
	}
	taken := m.TakenCharacters()
	if len(taken) != 1 || taken[0] != "shay_shay" {
		t.Fatalf("expected reservation under normalized key, got %v", taken)
	}
}

func TestSelectCharacter_PairsIntoRoom(t *testing.T) {
	m := newTestManager(nil)
	c1 := &fakeClient{id: "c1"}
	c2 := &fakeClient{id: "c2"}
	m.Register(c1)
	m.Register(c2)

	if err := m.SelectCharacter(c1, "Shay Shay"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.SelectCharacter(c2, "Charlotte"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c1.last().event != constants.EventGameFound || c2.last().event != constants.EventGameFound {
		t.Fatalf("expected gameFound on both sides, got %v / %v", c1.last().event, c2.last().event)
	}

	v1 := c1.last().payload.(RoomView)
	v2 := c2.last().payload.(RoomView)
	if v1.RoomID == "" || v1.RoomID != v2.RoomID {
		t.Fatalf("expected a shared room ID, got %q / %q", v1.RoomID, v2.RoomID)
	}
	// Each side sees itself as the player.
	if v1.Player.Name != "Shay Shay" || v1.Opponent.Name != "Charlotte" {
		t.Fatalf("wrong perspective for c1: %+v", v1)
	}
	if v2.Player.Name != "Charlotte" || v2.Opponent.Name != "Shay Shay" {
		t.Fatalf("wrong perspective for c2: %+v", v2)
	}
	// The first arrival opens (randomized first turn is off here).
	if !v1.IsYourTurn || v2.IsYourTurn {
		t.Fatalf("expected c1 to open, got %v / %v", v1.IsYourTurn, v2.IsYourTurn)
	}
}

func TestSelectCharacter_Rejections(t *testing.T) {
	m := newTestManager(nil)
	c1 := &fakeClient{id: "c1"}
	c2 := &fakeClient{id: "c2"}
	m.Register(c1)
	m.Register(c2)

	if err := m.SelectCharacter(c1, "Nobody"); !errors.Is(err, ErrUnknownCharacter) {
		t.Fatalf("expected ErrUnknownCharacter, got %v", err)
	}
	if c1.last().event != constants.EventError {
		t.Fatalf("expected error event, got %v", c1.last().event)
	}

	if err := m.SelectCharacter(c1, "Shay Shay"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.SelectCharacter(c2, "shay shay"); !errors.Is(err, ErrCharacterTaken) {
		t.Fatalf("expected ErrCharacterTaken, got %v", err)
	}
	if c2.last().event != constants.EventCharacterTaken {
		t.Fatalf("expected characterTaken event, got %v", c2.last().event)
	}

	// A queued client cannot select again.
	if err := m.SelectCharacter(c1, "Charlotte"); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("expected ErrAlreadyQueued, got %v", err)
	}
}

func pairUp(t *testing.T, m *Manager) (*fakeClient, *fakeClient, string) {
	t.Helper()
	c1 := &fakeClient{id: "c1"}
	c2 := &fakeClient{id: "c2"}
	m.Register(c1)
	m.Register(c2)
	if err := m.SelectCharacter(c1, "Shay Shay"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.SelectCharacter(c2, "Charlotte"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c1, c2, c1.last().payload.(RoomView).RoomID
}

func TestSubmitAction_BroadcastsUpdates(t *testing.T) {
	m := newTestManager(nil)
	c1, c2, roomID := pairUp(t, m)

	if err := m.SubmitAction(c1, roomID, "attack"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c1.last().event != constants.EventGameUpdate || c2.last().event != constants.EventGameUpdate {
		t.Fatalf("expected gameUpdate on both sides")
	}
	v2 := c2.last().payload.(RoomView)
	if v2.Player.HP >= 100 {
		t.Fatalf("expected c2 to have taken damage, HP=%d", v2.Player.HP)
	}
	if !v2.IsYourTurn {
		t.Fatalf("expected the turn to pass to c2")
	}
	if v2.LastAction == nil || v2.LastAction.SkillName != "attack" {
		t.Fatalf("expected last action in the view, got %+v", v2.LastAction)
	}
}

func TestSubmitAction_OutOfTurnSendsError(t *testing.T) {
	m := newTestManager(nil)
	_, c2, roomID := pairUp(t, m)

	if err := m.SubmitAction(c2, roomID, "attack"); !errors.Is(err, engine.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if c2.last().event != constants.EventError {
		t.Fatalf("expected error event, got %v", c2.last().event)
	}
}

func TestSubmitAction_WrongRoom(t *testing.T) {
	m := newTestManager(nil)
	c1, _, _ := pairUp(t, m)

	if err := m.SubmitAction(c1, "room_404", "attack"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	outsider := &fakeClient{id: "c3"}
	m.Register(outsider)
	roomID := m.byClient[c1.ID()]
	if err := m.SubmitAction(outsider, roomID, "attack"); !errors.Is(err, ErrNotInRoom) {
		t.Fatalf("expected ErrNotInRoom, got %v", err)
	}
}

func TestVictory_RecordsStatsAndFreesCharacters(t *testing.T) {
	repo := &statsRepo{}
	m := newTestManager(repo)
	c1, c2, roomID := pairUp(t, m)

	// Hand c2 a one-hit loss.
	room := m.rooms[roomID]
	room.battle.Player2.HP = 1

	if err := m.SubmitAction(c1, roomID, "attack"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v1 := c1.last().payload.(RoomView)
	if v1.GameState != game.StateEnded || v1.Winner != "Shay Shay" {
		t.Fatalf("expected an ended game won by Shay Shay, got %+v", v1)
	}
	if !repo.statsCalled || repo.winnerKey != "shay_shay" || repo.loserKey != "charlotte" {
		t.Fatalf("expected stats update for shay_shay over charlotte, got %+v", repo)
	}
	if len(repo.mockMatches) != 1 {
		t.Fatalf("expected one recorded match, got %d", len(repo.mockMatches))
	}
	rec := repo.mockMatches[0]
	if rec.Winner != "Shay Shay" || rec.EndReason != game.EndReasonVictory {
		t.Fatalf("unexpected match record: %+v", rec)
	}

	// Room is gone and both characters are selectable again.
	if len(m.rooms) != 0 || len(m.TakenCharacters()) != 0 {
		t.Fatalf("expected room torn down and reservations freed")
	}
	if !c2.saw(constants.EventCharacterFreed) {
		t.Fatalf("expected characterFreed broadcast")
	}
}

func TestDisconnect_QueuedPlayerFreesReservation(t *testing.T) {
	m := newTestManager(nil)
	c1 := &fakeClient{id: "c1"}
	m.Register(c1)
	if err := m.SelectCharacter(c1, "Shay Shay"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Disconnect(c1)

	if m.waiting != nil {
		t.Fatalf("expected empty queue after disconnect")
	}
	if len(m.TakenCharacters()) != 0 {
		t.Fatalf("expected reservation freed, got %v", m.TakenCharacters())
	}
}

func TestDisconnect_InRoomNotifiesAndRecords(t *testing.T) {
	repo := &statsRepo{}
	m := newTestManager(repo)
	c1, c2, _ := pairUp(t, m)

	m.Disconnect(c1)

	if !c2.saw(constants.EventOpponentDisconnected) {
		t.Fatalf("expected opponentDisconnected for the remaining player")
	}
	if len(m.rooms) != 0 || len(m.TakenCharacters()) != 0 {
		t.Fatalf("expected room torn down and reservations freed")
	}
	if len(repo.mockMatches) != 1 || repo.mockMatches[0].EndReason != game.EndReasonDisconnect {
		t.Fatalf("expected a disconnect match record, got %+v", repo.mockMatches)
	}
	if repo.statsCalled {
		t.Fatalf("disconnects must not count toward win stats")
	}

	// The survivor can queue again immediately.
	if err := m.SelectCharacter(c2, "Charlotte"); err != nil {
		t.Fatalf("expected re-selection after teardown, got %v", err)
	}
}
