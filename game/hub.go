package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Action is the closed set of admin commands.
type Action string

const (
	ActionOpen       Action = "open-game"
	ActionStart      Action = "start-game"
	ActionDraw       Action = "draw-number"
	ActionSetPattern Action = "set-pattern"
	ActionPause      Action = "pause"
	ActionResume     Action = "resume"
	ActionReset      Action = "reset"
	ActionEnd        Action = "end"
	ActionCancel     Action = "cancel"
)

// Command is one admin instruction for a game.
type Command struct {
	Action  Action `json:"action"`
	Pattern string `json:"pattern,omitempty"`
	// Resume sends a reset straight back into in_progress.
	Resume bool `json:"resume,omitempty"`
}

// Capabilities is what the auth layer established about the requester.
type Capabilities struct {
	Admin bool
}

// SessionRecorder mirrors session state to storage after each event.
// Reconnect resync always comes from the in-memory session, not from
// the recorder.
type SessionRecorder interface {
	RecordSession(snap Snapshot, startedAt, endedAt time.Time) error
}

// Hub applies admin commands to sessions and fans the resulting events
// out to the registry's subscribers. It is the only caller of session
// mutators and the only component that pushes events outward. A
// per-game mutex serializes commands and join snapshots, so a joiner's
// snapshot is always a prefix-or-equal of the live stream it sees
// afterwards.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint]*sessionEntry

	registry *Registry
	catalog  *Catalog
	arbiter  *Arbiter
	recorder SessionRecorder
	log      *zap.SugaredLogger

	// AutoComplete ends a session as soon as a claim is accepted.
	// Off by default: ending stays an explicit operator decision.
	AutoComplete bool
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

func NewHub(registry *Registry, catalog *Catalog, arbiter *Arbiter, log *zap.SugaredLogger) *Hub {
	return &Hub{
		sessions: make(map[uint]*sessionEntry),
		registry: registry,
		catalog:  catalog,
		arbiter:  arbiter,
		log:      log,
	}
}

// SetRecorder attaches optional session persistence.
func (h *Hub) SetRecorder(r SessionRecorder) { h.recorder = r }

// CreateSession registers a new scheduled session for gameID. Calling
// it again for the same id returns the existing session.
func (h *Hub) CreateSession(gameID uint) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.sessions[gameID]; ok {
		return e.session
	}
	s := NewSession(gameID, h.catalog)
	h.sessions[gameID] = &sessionEntry{session: s}
	h.log.Infow("session created", "game", gameID)
	return s
}

// RestoreSession re-registers a session for a game found in storage at
// startup. Drawn history is never replayed into the fresh pool; a game
// that was past scheduled comes back open, so its operator can admit
// players again or issue a reset to restart play.
func (h *Hub) RestoreSession(gameID uint, status Status) *Session {
	s := h.CreateSession(gameID)
	if status != StatusScheduled && s.Status() == StatusScheduled {
		if _, err := s.Open(); err != nil {
			h.log.Warnw("restore session", "game", gameID, "err", err)
		}
	}
	return s
}

// Session returns the live session for gameID, if any.
func (h *Hub) Session(gameID uint) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.sessions[gameID]
	if !ok {
		return nil, false
	}
	return e.session, true
}

func (h *Hub) entry(gameID uint) (*sessionEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrSessionNotFound)
	}
	return e, nil
}

// HandleAdminCommand authorizes, applies and broadcasts one command.
// On failure the error goes back to the issuing admin only; nothing is
// broadcast and no state changes.
func (h *Hub) HandleAdminCommand(gameID uint, cmd Command, caps Capabilities) (Event, error) {
	if !caps.Admin {
		return nil, fmt.Errorf("%s on game %d: %w", cmd.Action, gameID, ErrUnauthorized)
	}
	e, err := h.entry(gameID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	event, err := apply(e.session, cmd)
	if err != nil {
		return nil, err
	}
	if _, reset := event.(SessionReset); reset && h.arbiter != nil {
		h.arbiter.ResetGame(gameID)
	}
	h.record(e.session)
	h.broadcast(e.session, event)
	return event, nil
}

func apply(s *Session, cmd Command) (Event, error) {
	switch cmd.Action {
	case ActionOpen:
		return s.Open()
	case ActionStart:
		return s.Start()
	case ActionDraw:
		return s.DrawNext()
	case ActionSetPattern:
		return s.SetPattern(cmd.Pattern)
	case ActionPause:
		return s.Pause()
	case ActionResume:
		return s.Resume()
	case ActionReset:
		return s.Reset(cmd.Resume)
	case ActionEnd:
		return s.End()
	case ActionCancel:
		return s.Cancel()
	default:
		return nil, fmt.Errorf("unknown action %q", cmd.Action)
	}
}

// HandleJoin registers a connection on a game channel and immediately
// replays a full snapshot to it. Registration and the snapshot send
// happen under the game's command lock as one logical step, so the
// joiner never sees a gap between snapshot and live events.
func (h *Hub) HandleJoin(gameID uint, role Role, userID uint, out Outbox) (*Subscription, error) {
	e, err := h.entry(gameID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := h.registry.Join(gameID, role, userID, out)
	msg, err := encode(MsgSessionSnapshot, e.session.Snapshot())
	if err != nil {
		h.registry.Leave(sub)
		return nil, err
	}
	if !out.Push(msg) {
		h.registry.Leave(sub)
		return nil, fmt.Errorf("join game %d: outbox rejected snapshot", gameID)
	}
	h.log.Infow("joined", "game", gameID, "role", role, "user", userID, "sub", sub.ID)
	return sub, nil
}

// HandleLeave removes a connection; safe to call more than once.
func (h *Hub) HandleLeave(sub *Subscription) {
	h.registry.Leave(sub)
}

// HandlePlayerClaim arbitrates a bingo claim against authoritative
// state. The decided claim goes back to the caller for every outcome;
// only accepted claims are additionally broadcast to the game's
// admins.
func (h *Hub) HandlePlayerClaim(gameID, userID, cardID uint, claimedPattern string) (Claim, error) {
	e, err := h.entry(gameID)
	if err != nil {
		return Claim{}, err
	}
	claim, err := h.arbiter.Submit(e.session, userID, cardID, claimedPattern)
	if err != nil {
		return Claim{}, err
	}
	if claim.Accepted() {
		if msg, err := encode(MsgClaimResult, claim); err == nil {
			h.push(gameID, RoleAdmin, msg)
		}
		if h.AutoComplete {
			if _, err := h.HandleAdminCommand(gameID, Command{Action: ActionEnd}, Capabilities{Admin: true}); err != nil {
				h.log.Warnw("auto-complete failed", "game", gameID, "err", err)
			}
		}
	}
	return claim, nil
}

func (h *Hub) broadcast(s *Session, event Event) {
	playerMsg, err := encode(event.Name(), event)
	if err != nil {
		h.log.Errorw("encode event", "game", s.ID(), "event", event.Name(), "err", err)
		return
	}
	adminMsg, err := encode(event.Name(), adminPayload(s, event))
	if err != nil {
		adminMsg = playerMsg
	}
	h.push(s.ID(), RolePlayer, playerMsg)
	h.push(s.ID(), RoleAdmin, adminMsg)
}

// adminPayload decorates an event with operator-only metadata.
func adminPayload(s *Session, event Event) any {
	if d, ok := event.(NumberDrawn); ok {
		return struct {
			NumberDrawn
			Remaining int `json:"remaining"`
		}{d, s.Remaining()}
	}
	return event
}

// push is fire-and-forget per connection: a full or dead outbox drops
// that subscription and never blocks the command path or delivery to
// the other connections. The dropped outbox is closed so its client
// observes the disconnect and rejoins.
func (h *Hub) push(gameID uint, role Role, msg []byte) {
	for _, sub := range h.registry.Members(gameID, role) {
		if !sub.out.Push(msg) {
			h.registry.Leave(sub)
			sub.out.Close()
			h.log.Warnw("dropping slow subscriber", "game", gameID, "role", role, "sub", sub.ID)
		}
	}
}

func (h *Hub) record(s *Session) {
	if h.recorder == nil {
		return
	}
	if err := h.recorder.RecordSession(s.Snapshot(), s.StartedAt(), s.EndedAt()); err != nil {
		h.log.Errorw("persist session", "game", s.ID(), "err", err)
	}
}
