package services

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/models"
)

// GameStore mirrors live session state onto game rows after every
// event. It implements game.SessionRecorder; reconnect resync never
// reads it back, the in-memory session stays authoritative.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) RecordSession(snap game.Snapshot, startedAt, endedAt time.Time) error {
	numbers, err := json.Marshal(snap.DrawnNumbers)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"status":          string(snap.Status),
		"current_pattern": snap.CurrentPattern,
		"numbers_json":    datatypes.JSON(numbers),
	}
	if !startedAt.IsZero() {
		updates["start_time"] = startedAt
	}
	if !endedAt.IsZero() {
		updates["end_time"] = endedAt
	}
	return s.db.Model(&models.Game{}).Where("id = ?", snap.GameID).Updates(updates).Error
}

// ClaimStore persists every decided claim. Implements
// game.ClaimRecorder.
type ClaimStore struct {
	db *gorm.DB
}

func NewClaimStore(db *gorm.DB) *ClaimStore {
	return &ClaimStore{db: db}
}

func (s *ClaimStore) RecordClaim(c game.Claim) error {
	row := models.WinClaim{
		GameID:      c.GameID,
		UserID:      c.UserID,
		CardID:      c.CardID,
		PatternName: c.PatternName,
		Outcome:     string(c.Outcome),
		ClaimedAt:   c.ClaimedAt,
	}
	return s.db.Create(&row).Error
}
