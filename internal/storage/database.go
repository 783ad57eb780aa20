package storage

import (
	"os"
	"path/filepath"

	"github.com/MackZumarraga/zodiax-game/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens (creating directories as needed) the SQLite database,
// runs schema migration and seeds the selectable roster on first start.
func OpenAndMigrate(dataSourceName string, seed []game.PlayerRecord) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.PlayerRecord{}, &game.PlayerProfile{}, &game.MatchRecord{}); err != nil {
		return nil, err
	}

	seedPlayerRecords(db, seed)
	return db, nil
}

// seedPlayerRecords inserts the configured characters once; later starts
// leave existing rows (and their current HP/MP) untouched.
func seedPlayerRecords(db *gorm.DB, seed []game.PlayerRecord) {
	var count int64
	db.Model(&game.PlayerRecord{}).Count(&count)
	if count > 0 || len(seed) == 0 {
		return
	}
	records := make([]game.PlayerRecord, len(seed))
	copy(records, seed)
	for i := range records {
		if records[i].CurrentHP == 0 {
			records[i].CurrentHP = records[i].MaxHP
		}
		if records[i].CurrentMP == 0 {
			records[i].CurrentMP = records[i].MaxMP
		}
	}
	db.Create(&records)
}
