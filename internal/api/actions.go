package api

import (
	"net/http"

	"github.com/MackZumarraga/zodiax-game/internal/constants"

	"github.com/gin-gonic/gin"
)

// actionRequest matches the original wire format of the battle endpoints.
type actionRequest struct {
	PlayerID uint `json:"playerId"`
	EnemyID  uint `json:"enemyId"`
}

// Attack handles POST /battle/attack.
func (h *BattleHandler) Attack(c *gin.Context) { h.performAction(c, "attack") }

// Block handles POST /battle/block.
func (h *BattleHandler) Block(c *gin.Context) { h.performAction(c, "block") }

// Heal handles POST /battle/heal.
func (h *BattleHandler) Heal(c *gin.Context) { h.performAction(c, "heal") }

// Curse handles POST /battle/curse.
func (h *BattleHandler) Curse(c *gin.Context) { h.performAction(c, "curse") }

// performAction runs one solo-battle action. Error granularity is
// deliberately coarse: every failure maps to 500 with the error text, which
// is the contract the original clients rely on.
func (h *BattleHandler) performAction(c *gin.Context, action string) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeySuccess: false, constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	log, err := h.svc.PerformAction(req.PlayerID, req.EnemyID, action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeySuccess: false, constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeySuccess: true, constants.JSONKeyMessage: log})
}

// StartGame handles POST /game/start: resets all records and opens a fresh
// game.
func (h *BattleHandler) StartGame(c *gin.Context) {
	msg, err := h.svc.StartGame(h.maxHP, h.maxMP)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeySuccess: false, constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeySuccess: true, constants.JSONKeyMessage: msg})
}
