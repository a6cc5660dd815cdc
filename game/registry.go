package game

import (
	"sync"

	"github.com/google/uuid"
)

// Role separates a game's spectator channel from its control channel.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// Outbox is the outbound queue of one live connection. Push must not
// block; false means the queue is full or closed, and the subscription
// gets dropped. Close then tears the connection down so the client
// sees the disconnect and rejoins for a fresh snapshot instead of
// silently missing events. Close must be idempotent.
type Outbox interface {
	Push(msg []byte) bool
	Close()
}

// Subscription ties one live connection to a (game, role) pair. It is
// ephemeral and never persisted.
type Subscription struct {
	ID     string
	GameID uint
	Role   Role
	UserID uint
	out    Outbox
}

// Registry tracks which live connections belong to which game's player
// channel vs its admin channel. Membership only; it never authorizes.
// Multiple admin connections per game are permitted.
type Registry struct {
	mu    sync.RWMutex
	games map[uint]map[*Subscription]struct{}
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[uint]map[*Subscription]struct{})}
}

// Join adds a connection to a game channel and returns the handle
// used for later removal.
func (r *Registry) Join(gameID uint, role Role, userID uint, out Outbox) *Subscription {
	sub := &Subscription{
		ID:     uuid.NewString(),
		GameID: gameID,
		Role:   role,
		UserID: userID,
		out:    out,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.games[gameID]
	if !ok {
		set = make(map[*Subscription]struct{})
		r.games[gameID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Leave removes a subscription. Idempotent: calling it on an already
// removed (or nil) handle is a no-op.
func (r *Registry) Leave(sub *Subscription) {
	if sub == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.games[sub.GameID]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(r.games, sub.GameID)
	}
}

// Members returns a point-in-time copy of a channel for fan-out. Joins
// that race with the copy may miss the in-flight broadcast; they rely
// on their join snapshot instead.
func (r *Registry) Members(gameID uint, role Role) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var members []*Subscription
	for sub := range r.games[gameID] {
		if sub.Role == role {
			members = append(members, sub)
		}
	}
	return members
}

// Count returns the live connection count for a channel.
func (r *Registry) Count(gameID uint, role Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for sub := range r.games[gameID] {
		if sub.Role == role {
			n++
		}
	}
	return n
}
