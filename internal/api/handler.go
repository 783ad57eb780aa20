package api

import (
	"github.com/MackZumarraga/zodiax-game/internal/service"
	"github.com/MackZumarraga/zodiax-game/internal/session"
	"github.com/MackZumarraga/zodiax-game/internal/storage"
)

// BattleHandler groups the HTTP handlers for the solo battle surface and
// the read-only roster/stats endpoints.
type BattleHandler struct {
	svc      *service.BattleService
	repo     storage.Repository
	sessions *session.Manager
	maxHP    int
	maxMP    int
}

// NewBattleHandler wires the handler. sessions may be nil when the realtime
// surface is disabled (taken characters then always report empty).
func NewBattleHandler(svc *service.BattleService, repo storage.Repository, sessions *session.Manager, maxHP, maxMP int) *BattleHandler {
	return &BattleHandler{svc: svc, repo: repo, sessions: sessions, maxHP: maxHP, maxMP: maxMP}
}
