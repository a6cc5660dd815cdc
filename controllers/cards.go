package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/config"
	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/middleware"
	"github.com/perlasplay/bingo-backend/models"
)

type buyCardRequest struct {
	GameID  uint  `json:"game_id" binding:"required"`
	Numbers []int `json:"numbers" binding:"required"`
}

// BuyCard purchases a card in a game, deducting the stake from the
// buyer's Perlas balance
func BuyCard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req buyCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Numbers) != game.GridCells {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card must have 25 numbers"})
		return
	}
	var layout [game.GridCells]int
	copy(layout[:], req.Numbers)
	if err := game.ValidateCardNumbers(layout); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var g models.Game
	if err := config.DB.First(&g, req.GameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	// purchases close once the game leaves the pre-play states
	if g.Status != string(game.StatusScheduled) && g.Status != string(game.StatusOpen) {
		c.JSON(http.StatusConflict, gin.H{"error": "game already started"})
		return
	}
	if user.Balance < float64(g.Stake) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		return
	}

	numbers, err := json.Marshal(req.Numbers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card numbers"})
		return
	}

	var card models.Card
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		user.Balance -= float64(g.Stake)
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		var count int64
		tx.Model(&models.Card{}).Where("game_id = ? AND user_id = ?", g.ID, user.ID).Count(&count)
		card = models.Card{
			GameID:     g.ID,
			UserID:     user.ID,
			CardNumber: int(count) + 1,
			Numbers:    datatypes.JSON(numbers),
		}
		if err := tx.Create(&card).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:       user.ID,
			Type:         models.PurchaseTransaction,
			Amount:       -float64(g.Stake),
			BalanceAfter: user.Balance,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to buy card"})
		return
	}
	c.JSON(http.StatusCreated, card)
}

// MyCards lists the caller's cards, optionally filtered by game
func MyCards(c *gin.Context) {
	user := middleware.CurrentUser(c)

	q := config.DB.Where("user_id = ?", user.ID)
	if gameID := c.Query("game_id"); gameID != "" {
		q = q.Where("game_id = ?", gameID)
	}

	var cards []models.Card
	if err := q.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}
