package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/perlasplay/bingo-backend/controllers"
	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/middleware"
	"github.com/perlasplay/bingo-backend/services"
)

func SetupRoutes(
	r *gin.Engine,
	auth *services.AuthService,
	hub *game.Hub,
	catalog *game.Catalog,
	lb *services.Leaderboard,
	ws *services.WSHandlers,
) {
	users := controllers.NewUserController(auth)
	games := controllers.NewGameController(hub, catalog)
	leaderboard := controllers.NewLeaderboardController(lb)

	api := r.Group("/api")

	// ----------------------
	// Public routes
	// ----------------------
	api.POST("/users", users.Register)
	api.POST("/login", users.Login)
	api.GET("/games", games.ListGames)
	api.GET("/games/:id", games.GetGame)
	api.GET("/games/:id/live", games.LiveState)
	api.GET("/patterns", games.Patterns)
	api.GET("/leaderboard", leaderboard.Top)

	// ----------------------
	// Authenticated routes
	// ----------------------
	authed := api.Group("/")
	authed.Use(middleware.Auth(auth))
	{
		authed.GET("/profile", users.Profile)
		authed.POST("/cards", controllers.BuyCard)
		authed.GET("/cards", controllers.MyCards)
		authed.POST("/deposit", controllers.Deposit)
		authed.POST("/withdraw", controllers.Withdraw)
		authed.GET("/transactions", controllers.History)

		admin := authed.Group("/")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/games", games.CreateGame)
		}
	}

	// ----------------------
	// Live game channels
	// ----------------------
	r.GET("/ws/game/:id", ws.PlayerSocket)
	r.GET("/ws/admin/:id", ws.AdminSocket)
}
