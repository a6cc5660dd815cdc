package models

import "time"

type UserRole string

const (
	RolePlayer UserRole = "player"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Phone        string    `gorm:"uniqueIndex" json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `gorm:"default:player" json:"role"`
	Balance      float64   `json:"balance"` // Perlas
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
