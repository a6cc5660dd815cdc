package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perlasplay/bingo-backend/services"
)

type LeaderboardController struct {
	lb *services.Leaderboard
}

func NewLeaderboardController(lb *services.Leaderboard) *LeaderboardController {
	return &LeaderboardController{lb: lb}
}

// Top returns the ten biggest winners
func (ct *LeaderboardController) Top(c *gin.Context) {
	entries, err := ct.lb.Top(c.Request.Context(), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leaderboard"})
		return
	}
	if entries == nil {
		entries = []services.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
