package game

import "encoding/json"

// Outbound wire message types, shared with the websocket layer.
const (
	MsgNumberCalled    = "number-called"
	MsgPatternChanged  = "pattern-changed"
	MsgStatusChanged   = "game-status-changed"
	MsgGameReset       = "game-reset"
	MsgSessionSnapshot = "session-snapshot"
	MsgClaimResult     = "claim-result"
	MsgError           = "error"
)

// Event is the closed set of state machine outputs. Every successful
// session operation produces exactly one event; the hub is the only
// consumer and the only broadcaster.
type Event interface {
	Name() string
	Game() uint
}

// NumberDrawn reports one freshly drawn ball.
type NumberDrawn struct {
	GameID     uint `json:"gameId"`
	Number     int  `json:"number"`
	DrawnCount int  `json:"drawnCount"`
}

func (e NumberDrawn) Name() string { return MsgNumberCalled }
func (e NumberDrawn) Game() uint   { return e.GameID }

// PatternChanged reports a new active winning pattern. It does not
// rewrite history; only future claims are evaluated against it.
type PatternChanged struct {
	GameID      uint   `json:"gameId"`
	PatternName string `json:"patternName"`
}

func (e PatternChanged) Name() string { return MsgPatternChanged }
func (e PatternChanged) Game() uint   { return e.GameID }

// StatusChanged reports a lifecycle transition.
type StatusChanged struct {
	GameID uint   `json:"gameId"`
	From   Status `json:"from"`
	To     Status `json:"to"`
}

func (e StatusChanged) Name() string { return MsgStatusChanged }
func (e StatusChanged) Game() uint   { return e.GameID }

// SessionReset reports an operator restart of the same session id.
type SessionReset struct {
	GameID uint   `json:"gameId"`
	Status Status `json:"status"`
}

func (e SessionReset) Name() string { return MsgGameReset }
func (e SessionReset) Game() uint   { return e.GameID }

// Snapshot is the minimal complete state a (re)joining connection
// needs to reconstruct a correct local view without event replay.
type Snapshot struct {
	GameID         uint   `json:"gameId"`
	Status         Status `json:"status"`
	DrawnNumbers   []int  `json:"drawnNumbers"`
	CurrentPattern string `json:"currentPattern,omitempty"`
}

// Envelope is the outbound wire frame.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func encode(typ string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{Type: typ, Payload: payload})
}
