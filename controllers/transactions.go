package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/config"
	"github.com/perlasplay/bingo-backend/middleware"
	"github.com/perlasplay/bingo-backend/models"
)

type amountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// Deposit credits Perlas to the caller's wallet
func Deposit(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tx models.Transaction
	err := config.DB.Transaction(func(db *gorm.DB) error {
		user.Balance += req.Amount
		if err := db.Save(user).Error; err != nil {
			return err
		}
		deposit := models.Deposit{
			UserID:    user.ID,
			Amount:    req.Amount,
			Reference: uuid.NewString(),
		}
		if err := db.Create(&deposit).Error; err != nil {
			return err
		}
		tx = models.Transaction{
			UserID:       user.ID,
			Type:         models.DepositTransaction,
			Amount:       req.Amount,
			BalanceAfter: user.Balance,
		}
		return db.Create(&tx).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deposit"})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// Withdraw debits Perlas from the caller's wallet
func Withdraw(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user.Balance < req.Amount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		return
	}

	var tx models.Transaction
	err := config.DB.Transaction(func(db *gorm.DB) error {
		user.Balance -= req.Amount
		if err := db.Save(user).Error; err != nil {
			return err
		}
		tx = models.Transaction{
			UserID:       user.ID,
			Type:         models.WithdrawTransaction,
			Amount:       -req.Amount,
			BalanceAfter: user.Balance,
		}
		return db.Create(&tx).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to withdraw"})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// History lists the caller's ledger, newest first
func History(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var txs []models.Transaction
	if err := config.DB.Where("user_id = ?", user.ID).Order("id DESC").Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, txs)
}
