package models

import "time"

type WinClaim struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GameID      uint      `gorm:"index" json:"game_id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	CardID      uint      `json:"card_id"`
	PatternName string    `json:"pattern_name"`
	Outcome     string    `json:"outcome"`
	ClaimedAt   time.Time `json:"claimed_at"`
	CreatedAt   time.Time `json:"created_at"`
}
