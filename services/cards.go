package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/models"
)

// CardStore adapts purchased card rows into engine card layouts. It
// implements game.CardSource.
type CardStore struct {
	db *gorm.DB
}

func NewCardStore(db *gorm.DB) *CardStore {
	return &CardStore{db: db}
}

// Card loads one card of a game and lays its numbers onto the grid.
func (s *CardStore) Card(gameID, cardID uint) (*game.Card, error) {
	var row models.Card
	if err := s.db.Where("game_id = ?", gameID).First(&row, cardID).Error; err != nil {
		return nil, fmt.Errorf("card %d in game %d: %w", cardID, gameID, err)
	}
	return cardFromRow(&row)
}

func cardFromRow(row *models.Card) (*game.Card, error) {
	var flat []int
	if err := json.Unmarshal(row.Numbers, &flat); err != nil {
		return nil, fmt.Errorf("card %d layout: %w", row.ID, err)
	}
	if len(flat) != game.GridCells {
		return nil, fmt.Errorf("card %d layout has %d cells, want %d", row.ID, len(flat), game.GridCells)
	}
	var numbers [game.GridCells]int
	copy(numbers[:], flat)
	return game.NewCard(row.ID, row.GameID, row.UserID, numbers), nil
}
