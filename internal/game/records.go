package game

import "gorm.io/gorm"

// PlayerRecord is the persisted combatant state used by the solo battle
// endpoints. The realtime engine only ever sees Combatant snapshots built
// from these records.
type PlayerRecord struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex"`
	CurrentHP int    `json:"current_hp"`
	MaxHP     int    `json:"max_hp"`
	CurrentMP int    `json:"current_mp"`
	MaxMP     int    `json:"max_mp"`
	// IsEnemy marks AI-controlled records so roster listings can exclude them.
	IsEnemy bool `json:"is_enemy"`
}

func (PlayerRecord) TableName() string { return "player_records" }

// Combatant builds a battle snapshot from the persisted record.
func (r *PlayerRecord) Combatant() *Combatant {
	return &Combatant{
		Name:  r.Name,
		HP:    r.CurrentHP,
		MaxHP: r.MaxHP,
		MP:    r.CurrentMP,
		MaxMP: r.MaxMP,
	}
}

// SyncFrom copies battle-mutable fields back from a snapshot.
func (r *PlayerRecord) SyncFrom(c *Combatant) {
	r.CurrentHP = c.HP
	r.CurrentMP = c.MP
}

// PlayerProfile stores aggregate stats per character across realtime matches.
type PlayerProfile struct {
	gorm.Model
	CharacterKey string `json:"character_key" gorm:"uniqueIndex"`
	DisplayName  string `json:"display_name"`
	GamesPlayed  int    `json:"games_played"`
	Wins         int    `json:"wins"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// MatchRecord is one finished realtime match.
type MatchRecord struct {
	gorm.Model
	RoomID    string `json:"room_id" gorm:"index"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	Winner    string `json:"winner"`
	TurnCount int    `json:"turn_count"`
	EndReason string `json:"end_reason"` // victory | disconnect
	FinalHP1  int    `json:"final_hp1"`
	FinalHP2  int    `json:"final_hp2"`
}

func (MatchRecord) TableName() string { return "match_records" }

// Match end reasons recorded on MatchRecord.
const (
	EndReasonVictory    = "victory"
	EndReasonDisconnect = "disconnect"
)
