package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/perlasplay/bingo-backend/config"
	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/models"
)

type GameController struct {
	hub     *game.Hub
	catalog *game.Catalog
}

func NewGameController(hub *game.Hub, catalog *game.Catalog) *GameController {
	return &GameController{hub: hub, catalog: catalog}
}

// ListGames returns all games, newest first
func (ct *GameController) ListGames(c *gin.Context) {
	var games []models.Game
	config.DB.Order("id DESC").Find(&games)
	c.JSON(http.StatusOK, games)
}

// GetGame returns single game info
func (ct *GameController) GetGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var g models.Game
	if err := config.DB.First(&g, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, g)
}

type createGameRequest struct {
	Stake int `json:"stake" binding:"required,gt=0"`
}

// CreateGame provisions a game row and its live session (admin only)
func (ct *GameController) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g := models.Game{Stake: req.Stake, Status: string(game.StatusScheduled)}
	if err := config.DB.Create(&g).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create game"})
		return
	}
	ct.hub.CreateSession(g.ID)
	c.JSON(http.StatusCreated, g)
}

// LiveState returns the authoritative live snapshot of a session
func (ct *GameController) LiveState(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	s, ok := ct.hub.Session(uint(id))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no live session for game"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// Patterns lists the winning-pattern catalog
func (ct *GameController) Patterns(c *gin.Context) {
	out := make([]gin.H, 0, len(ct.catalog.Patterns()))
	for _, p := range ct.catalog.Patterns() {
		out = append(out, gin.H{"name": p.Name, "positions": p.Positions})
	}
	c.JSON(http.StatusOK, out)
}
