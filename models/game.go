package models

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Stake          int            `json:"stake"` // Perlas per card
	Status         string         `json:"status"`
	CurrentPattern string         `json:"current_pattern"`
	NumbersJSON    datatypes.JSON `json:"numbers_json"` // drawn numbers, in draw order
	StartTime      time.Time      `json:"start_time"`
	EndTime        time.Time      `json:"end_time"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
