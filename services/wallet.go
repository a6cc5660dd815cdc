package services

import (
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/models"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

// winners take this share of the pot; the rest is the house cut
const payoutShare = 0.8

// Wallet credits winnings and journals them on the Perlas ledger.
type Wallet struct {
	db *gorm.DB
}

func NewWallet(db *gorm.DB) *Wallet {
	return &Wallet{db: db}
}

// AwardPot pays an accepted claimant their share of the game's pot
// (stake times cards sold). Wired as the arbiter's accept hook; the
// engine itself never moves funds.
func (w *Wallet) AwardPot(claim game.Claim) {
	var g models.Game
	if err := w.db.First(&g, claim.GameID).Error; err != nil {
		logger.Errorf("[wallet] game %d not found for payout: %v", claim.GameID, err)
		return
	}

	var sold int64
	w.db.Model(&models.Card{}).Where("game_id = ?", claim.GameID).Count(&sold)

	winnings := float64(g.Stake) * float64(sold) * payoutShare
	if winnings <= 0 {
		return
	}

	err := w.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, claim.UserID).Error; err != nil {
			return err
		}
		user.Balance += winnings
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:       claim.UserID,
			Type:         models.WinTransaction,
			Amount:       winnings,
			BalanceAfter: user.Balance,
		}).Error
	})
	if err != nil {
		logger.Errorf("[wallet] payout to user %d failed: %v", claim.UserID, err)
		return
	}
	logger.Infof("[wallet] user %d won %.2f Perlas on game %d", claim.UserID, winnings, claim.GameID)
}
