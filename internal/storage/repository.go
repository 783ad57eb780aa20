package storage

import "github.com/MackZumarraga/zodiax-game/internal/game"

// Repository is the persistence collaborator. The battle engine and session
// layer never assume a particular storage technology; they work on plain
// records and snapshots.
type Repository interface {
	// LoadPlayer returns the persisted combatant record by ID.
	LoadPlayer(id uint) (*game.PlayerRecord, error)
	// GetPlayerByName returns a record by its name (case-insensitive).
	GetPlayerByName(name string) (*game.PlayerRecord, error)
	// SavePlayer persists the record's battle-mutable fields.
	SavePlayer(r *game.PlayerRecord) error
	// ResetAllPlayers restores every record to the given pools.
	ResetAllPlayers(maxHP, maxMP int) error
	// ListCharacters returns the selectable roster (AI records excluded).
	ListCharacters() ([]game.PlayerRecord, error)

	// UpsertProfile ensures a stats profile exists for a character key.
	UpsertProfile(key, displayName string) error
	// UpdateStatsOnMatchEnd bumps games-played for both sides and wins for
	// the winner. Keys may be empty (e.g. disconnect before a winner).
	UpdateStatsOnMatchEnd(winnerKey, loserKey string) error
	// GetProfileByKey returns the stats profile for a character key.
	GetProfileByKey(key string) (*game.PlayerProfile, error)

	// RecordMatch stores one finished realtime match.
	RecordMatch(m *game.MatchRecord) error
	// ListRecentMatches returns the most recent finished matches.
	ListRecentMatches(limit int) ([]game.MatchRecord, error)
}
