package models

import (
	"time"

	"gorm.io/datatypes"
)

type Card struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	GameID     uint           `gorm:"index" json:"game_id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	CardNumber int            `json:"card_number"` // ordinal per (game, user)
	Numbers    datatypes.JSON `json:"numbers"`     // 25 ints, column major, center ignored
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
