package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/config"
	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/models"
	"github.com/perlasplay/bingo-backend/routes"
	"github.com/perlasplay/bingo-backend/services"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

func main() {
	cfg := config.Load()

	db := config.SetupDatabase(cfg.DatabaseURL)
	rdb := config.InitRedis(cfg.RedisAddr)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	leaderboard := services.NewLeaderboard(rdb)
	wallet := services.NewWallet(db)

	// Live game engine
	catalog := game.DefaultCatalog()
	registry := game.NewRegistry()
	arbiter := game.NewArbiter(catalog, services.NewCardStore(db), logger.Log)
	arbiter.SetRecorder(services.NewClaimStore(db))
	arbiter.SetAcceptHook(func(claim game.Claim) {
		wallet.AwardPot(claim)
		leaderboard.RecordWin(claim)
	})

	hub := game.NewHub(registry, catalog, arbiter, logger.Log)
	hub.SetRecorder(services.NewGameStore(db))
	restorePendingSessions(db, hub)

	ws := services.NewWSHandlers(hub, authService)

	router := setupRouter(authService, hub, catalog, leaderboard, ws)

	logger.Infof("bingo backend listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("failed to start server: %v", err)
	}
}

// setupRouter initializes Gin routes and middleware
func setupRouter(
	auth *services.AuthService,
	hub *game.Hub,
	catalog *game.Catalog,
	leaderboard *services.Leaderboard,
	ws *services.WSHandlers,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, auth, hub, catalog, leaderboard, ws)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	return r
}

// restorePendingSessions re-registers sessions for every non-terminal
// game. Drawn numbers are not replayed: a game that was mid-draw comes
// back open and its operator restarts it with a reset command.
func restorePendingSessions(db *gorm.DB, hub *game.Hub) {
	var games []models.Game
	pending := []string{
		string(game.StatusScheduled),
		string(game.StatusOpen),
		string(game.StatusInProgress),
		string(game.StatusPaused),
	}
	if err := db.Where("status IN ?", pending).Find(&games).Error; err != nil {
		logger.Errorf("restore sessions: %v", err)
		return
	}
	for _, g := range games {
		hub.RestoreSession(g.ID, game.Status(g.Status))
	}
	if len(games) > 0 {
		logger.Infof("restored %d pending sessions", len(games))
	}
}
