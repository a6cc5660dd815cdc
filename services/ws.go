package services

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandlers wires authenticated websocket joins into the hub.
type WSHandlers struct {
	hub  *game.Hub
	auth *AuthService
}

func NewWSHandlers(hub *game.Hub, auth *AuthService) *WSHandlers {
	return &WSHandlers{hub: hub, auth: auth}
}

// PlayerSocket handles GET /ws/game/:id?token=...
func (h *WSHandlers) PlayerSocket(c *gin.Context) {
	h.serve(c, game.RolePlayer)
}

// AdminSocket handles GET /ws/admin/:id?token=... The admin role is
// checked before the upgrade; the registry itself never authorizes.
func (h *WSHandlers) AdminSocket(c *gin.Context) {
	h.serve(c, game.RoleAdmin)
}

func (h *WSHandlers) serve(c *gin.Context, role game.Role) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	user, err := h.auth.UserFromToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if role == game.RoleAdmin && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[ws] upgrade error: %v", err)
		return
	}

	client := NewClient(conn, h.hub, uint(gameID), user.ID, role)
	if err := client.Start(); err != nil {
		logger.Warnf("[ws] user %d could not join game %d: %v", user.ID, gameID, err)
		conn.Close()
		return
	}
	logger.Infof("[ws] user %d joined game %d as %s", user.ID, gameID, role)
}
