package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Status is a session lifecycle state.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further mutation is permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Session owns one game's truth: lifecycle status, the drawn-number
// sequence and the active pattern. All mutation goes through its
// operation set under a single mutex, so draws on the same game never
// interleave. Each successful operation returns exactly one Event.
type Session struct {
	mu      sync.Mutex
	id      uint
	status  Status
	drawn   []int
	pool    []int // undrawn numbers, pre-shuffled
	pattern string
	catalog *Catalog
	rng     *rand.Rand

	createdAt time.Time
	startedAt time.Time
	endedAt   time.Time
}

// NewSession creates a scheduled session for a game id.
func NewSession(id uint, catalog *Catalog) *Session {
	return NewSeededSession(id, catalog, time.Now().UnixNano())
}

// NewSeededSession is NewSession with a fixed draw seed.
func NewSeededSession(id uint, catalog *Catalog, seed int64) *Session {
	s := &Session{
		id:        id,
		status:    StatusScheduled,
		catalog:   catalog,
		rng:       rand.New(rand.NewSource(seed)),
		createdAt: time.Now(),
	}
	s.pool = s.shuffledPool()
	return s
}

func (s *Session) shuffledPool() []int {
	nums := make([]int, MaxNumber)
	for i := range nums {
		nums[i] = i + 1
	}
	s.rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	return nums
}

// ID returns the game id this session is the single writer for.
func (s *Session) ID() uint { return s.id }

// Open admits players: scheduled -> open.
func (s *Session) Open() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("open", StatusScheduled); err != nil {
		return nil, err
	}
	return s.transition(StatusOpen), nil
}

// Start begins play: open -> in_progress.
func (s *Session) Start() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("start", StatusOpen); err != nil {
		return nil, err
	}
	s.startedAt = time.Now()
	return s.transition(StatusInProgress), nil
}

// DrawNext reveals the next ball, uniformly at random from the
// undrawn pool, and appends it to the drawn sequence.
func (s *Session) DrawNext() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("draw on game %d: %w", s.id, ErrSessionClosed)
	}
	if s.status != StatusInProgress {
		return nil, fmt.Errorf("draw on game %d while %s: %w", s.id, s.status, ErrGameNotActive)
	}
	if len(s.pool) == 0 {
		return nil, fmt.Errorf("draw on game %d: %w", s.id, ErrPoolExhausted)
	}
	n := s.pool[len(s.pool)-1]
	s.pool = s.pool[:len(s.pool)-1]
	s.drawn = append(s.drawn, n)
	return NumberDrawn{GameID: s.id, Number: n, DrawnCount: len(s.drawn)}, nil
}

// Pause suspends drawing: in_progress -> paused.
func (s *Session) Pause() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("pause", StatusInProgress); err != nil {
		return nil, err
	}
	return s.transition(StatusPaused), nil
}

// Resume continues play: paused -> in_progress.
func (s *Session) Resume() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("resume", StatusPaused); err != nil {
		return nil, err
	}
	return s.transition(StatusInProgress), nil
}

// SetPattern activates a catalog pattern. Allowed in any non-terminal
// state; it does not clear drawn numbers.
func (s *Session) SetPattern(name string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("set pattern on game %d: %w", s.id, ErrSessionClosed)
	}
	if _, ok := s.catalog.Get(name); !ok {
		return nil, fmt.Errorf("pattern %q: %w", name, ErrUnknownPattern)
	}
	s.pattern = name
	return PatternChanged{GameID: s.id, PatternName: name}, nil
}

// Reset restarts the same session id for operator error recovery: it
// clears the drawn sequence and the active pattern, reshuffles the
// pool and returns to open, or straight to in_progress when active.
func (s *Session) Reset(active bool) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("reset game %d: %w", s.id, ErrSessionClosed)
	}
	s.drawn = nil
	s.pattern = ""
	s.pool = s.shuffledPool()
	s.status = StatusOpen
	if active {
		s.status = StatusInProgress
		if s.startedAt.IsZero() {
			s.startedAt = time.Now()
		}
	}
	return SessionReset{GameID: s.id, Status: s.status}, nil
}

// End completes the game. Ending is an explicit operator decision;
// accepted claims never end a game by themselves.
func (s *Session) End() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("end", StatusInProgress, StatusPaused); err != nil {
		return nil, err
	}
	s.endedAt = time.Now()
	return s.transition(StatusCompleted), nil
}

// Cancel aborts the game from any non-terminal state.
func (s *Session) Cancel() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("cancel game %d: %w", s.id, ErrSessionClosed)
	}
	s.endedAt = time.Now()
	return s.transition(StatusCancelled), nil
}

// require fails with ErrSessionClosed on terminal states and
// ErrInvalidTransition when the current status is not one of from.
// State is left untouched on failure.
func (s *Session) require(op string, from ...Status) error {
	if s.status.Terminal() {
		return fmt.Errorf("%s game %d: %w", op, s.id, ErrSessionClosed)
	}
	for _, f := range from {
		if s.status == f {
			return nil
		}
	}
	return fmt.Errorf("%s game %d from %s: %w", op, s.id, s.status, ErrInvalidTransition)
}

func (s *Session) transition(to Status) Event {
	from := s.status
	s.status = to
	return StatusChanged{GameID: s.id, From: from, To: to}
}

// Snapshot returns a consistent copy of the resync state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		GameID:         s.id,
		Status:         s.status,
		DrawnNumbers:   append([]int(nil), s.drawn...),
		CurrentPattern: s.pattern,
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentPattern returns the active pattern name, empty when unset.
func (s *Session) CurrentPattern() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pattern
}

// Remaining returns how many numbers are still undrawn.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

// StartedAt is zero until Start.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// EndedAt is zero until End or Cancel.
func (s *Session) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}
