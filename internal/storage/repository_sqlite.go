package storage

import (
	"strings"

	"github.com/MackZumarraga/zodiax-game/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a migrated gorm DB in the Repository interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) LoadPlayer(id uint) (*game.PlayerRecord, error) {
	var rec game.PlayerRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) GetPlayerByName(name string) (*game.PlayerRecord, error) {
	var rec game.PlayerRecord
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) SavePlayer(rec *game.PlayerRecord) error {
	return r.db.Model(&game.PlayerRecord{}).Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"current_hp": rec.CurrentHP,
			"current_mp": rec.CurrentMP,
		}).Error
}

func (r *sqliteRepository) ResetAllPlayers(maxHP, maxMP int) error {
	return r.db.Model(&game.PlayerRecord{}).Where("1 = 1").
		Updates(map[string]interface{}{
			"current_hp": maxHP,
			"max_hp":     maxHP,
			"current_mp": maxMP,
			"max_mp":     maxMP,
		}).Error
}

func (r *sqliteRepository) ListCharacters() ([]game.PlayerRecord, error) {
	var records []game.PlayerRecord
	if err := r.db.Where("is_enemy = ?", false).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sqliteRepository) UpsertProfile(key, displayName string) error {
	profile := game.PlayerProfile{CharacterKey: key, DisplayName: displayName}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "character_key"}},
		DoNothing: true,
	}).Create(&profile).Error
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(winnerKey, loserKey string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range []string{winnerKey, loserKey} {
			if key == "" {
				continue
			}
			if err := tx.Model(&game.PlayerProfile{}).Where("character_key = ?", key).
				UpdateColumn("games_played", gorm.Expr("games_played + 1")).Error; err != nil {
				return err
			}
		}
		if winnerKey != "" {
			if err := tx.Model(&game.PlayerProfile{}).Where("character_key = ?", winnerKey).
				UpdateColumn("wins", gorm.Expr("wins + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetProfileByKey(key string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("character_key = ?", key).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) RecordMatch(m *game.MatchRecord) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) ListRecentMatches(limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var matches []game.MatchRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
