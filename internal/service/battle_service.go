package service

import (
	"errors"
	"sync"

	"github.com/MackZumarraga/zodiax-game/internal/engine"
	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
	"github.com/MackZumarraga/zodiax-game/internal/storage"
)

var (
	ErrNotYourTurn    = errors.New("not your turn or game not active")
	ErrPlayerNotFound = errors.New("player or enemy not found")
	ErrUnknownAction  = errors.New("unknown action")
)

// AISkillName is the action the scripted enemy always takes on its turn.
const AISkillName = "attack"

// BattleService runs the solo (request/response) battle variant: the player
// acts against a persisted enemy record and a scripted AI answers with an
// attack. The turn/game state lives on the service object so independent
// instances can be tested side by side; a mutex keeps each action's
// multi-step load/dispatch/save sequence atomic.
type BattleService struct {
	mu         sync.Mutex
	repo       storage.Repository
	catalog    *skill.Registry
	dispatcher *engine.Dispatcher

	currentTurn game.Side
	state       game.BattleState
}

// NewBattleService returns a service in the waiting state; StartGame arms it.
func NewBattleService(repo storage.Repository, catalog *skill.Registry, dispatcher *engine.Dispatcher) *BattleService {
	return &BattleService{
		repo:        repo,
		catalog:     catalog,
		dispatcher:  dispatcher,
		currentTurn: game.SidePlayer1,
		state:       game.StateWaiting,
	}
}

// StartGame resets every persisted record to the given pools and opens a
// fresh game with the player to act.
func (s *BattleService) StartGame(maxHP, maxMP int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ResetAllPlayers(maxHP, maxMP); err != nil {
		return "", err
	}
	s.currentTurn = game.SidePlayer1
	s.state = game.StateActive
	return "Game started! All players HP and MP reset to maximum.", nil
}

// PerformAction executes one player action followed by the enemy AI's
// counterattack (unless the action ended the game) and persists both
// records. It returns the combined combat log.
func (s *BattleService) PerformAction(playerID, enemyID uint, action string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != game.StateActive || s.currentTurn != game.SidePlayer1 {
		return "", ErrNotYourTurn
	}

	sk, ok := s.catalog.Get(action)
	if !ok {
		return "", ErrUnknownAction
	}

	playerRec, err := s.repo.LoadPlayer(playerID)
	if err != nil {
		return "", ErrPlayerNotFound
	}
	enemyRec, err := s.repo.LoadPlayer(enemyID)
	if err != nil {
		return "", ErrPlayerNotFound
	}

	player := playerRec.Combatant()
	enemy := enemyRec.Combatant()

	res := s.dispatcher.Execute(sk, player, enemy)
	log := res.Message

	if err := s.saveBoth(playerRec, player, enemyRec, enemy); err != nil {
		return "", err
	}

	if enemy.IsDefeated() {
		s.state = game.StateEnded
		return log + " - Enemy defeated! You win!", nil
	}

	// A soft-failed action (not enough MP) still consumes the turn.
	s.currentTurn = game.SidePlayer2
	aiLog, err := s.enemyTurn(playerRec, player, enemyRec, enemy)
	if err != nil {
		return "", err
	}
	return log + "\n" + aiLog, nil
}

// enemyTurn runs the scripted AI action (always attack) and hands the turn
// back to the player unless the player was defeated.
func (s *BattleService) enemyTurn(playerRec *game.PlayerRecord, player *game.Combatant, enemyRec *game.PlayerRecord, enemy *game.Combatant) (string, error) {
	sk, ok := s.catalog.Get(AISkillName)
	if !ok {
		return "", ErrUnknownAction
	}

	res := s.dispatcher.Execute(sk, enemy, player)
	log := res.Message

	if err := s.saveBoth(playerRec, player, enemyRec, enemy); err != nil {
		return "", err
	}

	if player.IsDefeated() {
		s.state = game.StateEnded
		return log + " - You have been defeated! Game over!", nil
	}

	s.currentTurn = game.SidePlayer1
	return log, nil
}

func (s *BattleService) saveBoth(playerRec *game.PlayerRecord, player *game.Combatant, enemyRec *game.PlayerRecord, enemy *game.Combatant) error {
	playerRec.SyncFrom(player)
	if err := s.repo.SavePlayer(playerRec); err != nil {
		return err
	}
	enemyRec.SyncFrom(enemy)
	return s.repo.SavePlayer(enemyRec)
}
