package api

import (
	"errors"
	"net/http"

	"github.com/MackZumarraga/zodiax-game/internal/constants"
	"github.com/MackZumarraga/zodiax-game/internal/dedupe"
	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/keys"
	"github.com/MackZumarraga/zodiax-game/internal/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const recentMatchesLimit = 20

// Characters handles GET /characters: the selectable roster plus which
// characters are currently reserved by connected clients.
func (h *BattleHandler) Characters(c *gin.Context) {
	v, err, _ := dedupe.RosterGroup.Do("characters", func() (interface{}, error) {
		return h.repo.ListCharacters()
	})
	if err != nil {
		logging.Error("list characters failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	roster := v.([]game.PlayerRecord)

	taken := []string{}
	if h.sessions != nil {
		taken = h.sessions.TakenCharacters()
	}
	c.JSON(http.StatusOK, gin.H{"characters": roster, "taken": taken})
}

// PlayerStats handles GET /players/:name/stats.
func (h *BattleHandler) PlayerStats(c *gin.Context) {
	key := keys.CharacterKey(c.Param("name"))
	profile, err := h.repo.GetProfileByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
			return
		}
		logging.Error("fetch player stats failed", err, logging.Fields{constants.LogFieldCharacter: key})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Matches handles GET /matches: the most recent finished realtime matches.
func (h *BattleHandler) Matches(c *gin.Context) {
	v, err, _ := dedupe.MatchesGroup.Do("recent", func() (interface{}, error) {
		return h.repo.ListRecentMatches(recentMatchesLimit)
	})
	if err != nil {
		logging.Error("list matches failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": v.([]game.MatchRecord)})
}
