package services

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

const sendBuffer = 32

// Client is one live websocket connection bound to a game channel.
type Client struct {
	id     string
	userID uint
	gameID uint
	role   game.Role
	conn   *websocket.Conn
	hub    *game.Hub
	sub    *game.Subscription
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func NewClient(conn *websocket.Conn, hub *game.Hub, gameID, userID uint, role game.Role) *Client {
	return &Client{
		id:     uuid.NewString(),
		userID: userID,
		gameID: gameID,
		role:   role,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Push implements game.Outbox. It never blocks; a full queue or a
// closed client fails the push and the hub drops the subscription.
func (c *Client) Push(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Start joins the hub, which replays a snapshot, then begins pumping.
func (c *Client) Start() error {
	sub, err := c.hub.HandleJoin(c.gameID, c.role, c.userID, c)
	if err != nil {
		return err
	}
	c.sub = sub
	go c.writePump()
	go c.readPump()
	return nil
}

func (c *Client) Close() {
	c.once.Do(func() {
		c.hub.HandleLeave(c.sub)
		close(c.done)
		c.conn.Close()
	})
}

// inbound frames carry an action discriminator.
type inboundMessage struct {
	Action  string `json:"action"`
	Pattern string `json:"pattern,omitempty"`
	CardID  uint   `json:"cardId,omitempty"`
	Resume  bool   `json:"resume,omitempty"`
}

func (c *Client) readPump() {
	defer c.Close()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[client %s] disconnected normally", c.id)
			} else {
				logger.Debugf("[client %s] read error: %v", c.id, err)
			}
			return
		}
		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		logger.Debugf("[client %s] invalid message: %v", c.id, err)
		c.pushError("invalid message")
		return
	}

	switch msg.Action {
	case "claim-bingo":
		claim, err := c.hub.HandlePlayerClaim(c.gameID, c.userID, msg.CardID, msg.Pattern)
		if err != nil {
			logger.Debugf("[client %s] claim failed: %v", c.id, err)
			c.pushError(err.Error())
			return
		}
		c.pushJSON(game.MsgClaimResult, claim)
	default:
		cmd := game.Command{Action: game.Action(msg.Action), Pattern: msg.Pattern, Resume: msg.Resume}
		caps := game.Capabilities{Admin: c.role == game.RoleAdmin}
		if _, err := c.hub.HandleAdminCommand(c.gameID, cmd, caps); err != nil {
			// command errors go back to this connection only
			c.pushError(err.Error())
		}
	}
}

func (c *Client) pushJSON(typ string, payload any) {
	b, err := json.Marshal(game.Envelope{Type: typ, Payload: payload})
	if err != nil {
		return
	}
	if !c.Push(b) {
		logger.Debugf("[client %s] dropping %s", c.id, typ)
	}
}

func (c *Client) pushError(message string) {
	c.pushJSON(game.MsgError, map[string]string{"message": message})
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debugf("[client %s] write error: %v", c.id, err)
				return
			}
		case <-c.done:
			return
		}
	}
}
