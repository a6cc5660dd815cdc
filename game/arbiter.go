package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ClaimOutcome is the terminal result of one bingo claim. Rejections
// are normal, reportable results, not errors.
type ClaimOutcome string

const (
	ClaimAccepted            ClaimOutcome = "ACCEPTED"
	ClaimRejectedNotComplete ClaimOutcome = "REJECTED_NOT_COMPLETE"
	ClaimRejectedDuplicate   ClaimOutcome = "REJECTED_DUPLICATE"
	ClaimRejectedNoPattern   ClaimOutcome = "REJECTED_NO_PATTERN"
	ClaimRejectedNotOwner    ClaimOutcome = "REJECTED_NOT_OWNER"
)

// Claim records one decided bingo claim. Immutable once decided.
type Claim struct {
	GameID      uint         `json:"gameId"`
	UserID      uint         `json:"userId"`
	CardID      uint         `json:"cardId"`
	PatternName string       `json:"patternName"`
	ClaimedAt   time.Time    `json:"claimedAt"`
	Outcome     ClaimOutcome `json:"outcome"`
}

func (c Claim) Accepted() bool { return c.Outcome == ClaimAccepted }

type claimKey struct {
	gameID  uint
	userID  uint
	cardID  uint
	pattern string
}

// ClaimRecorder persists decided claims.
type ClaimRecorder interface {
	RecordClaim(Claim) error
}

// Arbiter validates player claims against authoritative session state:
// the marked set is recomputed from the session's drawn numbers and the
// card layout, never from client-reported marks. It never mutates the
// session; an accepted claim does not end the game.
type Arbiter struct {
	mu       sync.Mutex
	accepted map[claimKey]bool

	catalog  *Catalog
	cards    CardSource
	recorder ClaimRecorder
	onAccept func(Claim)
	log      *zap.SugaredLogger
}

func NewArbiter(catalog *Catalog, cards CardSource, log *zap.SugaredLogger) *Arbiter {
	return &Arbiter{
		accepted: make(map[claimKey]bool),
		catalog:  catalog,
		cards:    cards,
		log:      log,
	}
}

// SetRecorder attaches optional claim persistence.
func (a *Arbiter) SetRecorder(r ClaimRecorder) { a.recorder = r }

// SetAcceptHook runs fn once for every accepted claim, e.g. to trigger
// a prize payout. The arbiter itself never moves funds.
func (a *Arbiter) SetAcceptHook(fn func(Claim)) { a.onAccept = fn }

// Submit decides one claim. Clients must claim the pattern the server
// currently has active, on a card they bought themselves; at most one
// accepted claim can exist per
// (game, user, card, pattern). The only errors are lookup or storage
// failures, never rejections.
func (a *Arbiter) Submit(s *Session, userID, cardID uint, claimedPattern string) (Claim, error) {
	claim := Claim{
		GameID:      s.ID(),
		UserID:      userID,
		CardID:      cardID,
		PatternName: claimedPattern,
		ClaimedAt:   time.Now(),
	}

	snap := s.Snapshot()
	if snap.CurrentPattern == "" || claimedPattern != snap.CurrentPattern {
		return a.decide(claim, ClaimRejectedNoPattern), nil
	}
	pattern, ok := a.catalog.Get(claimedPattern)
	if !ok {
		return a.decide(claim, ClaimRejectedNoPattern), nil
	}

	key := claimKey{snap.GameID, userID, cardID, claimedPattern}
	a.mu.Lock()
	dup := a.accepted[key]
	a.mu.Unlock()
	if dup {
		return a.decide(claim, ClaimRejectedDuplicate), nil
	}

	card, err := a.cards.Card(snap.GameID, cardID)
	if err != nil {
		return Claim{}, fmt.Errorf("card %d in game %d: %w", cardID, snap.GameID, ErrUnknownCard)
	}
	// only the card's buyer may claim on it; an accepted claim pays
	// the claimant, so this check gates the payout hook too
	if card.UserID != userID {
		return a.decide(claim, ClaimRejectedNotOwner), nil
	}
	if !Evaluate(card.MarkedPositions(snap.DrawnNumbers), pattern) {
		return a.decide(claim, ClaimRejectedNotComplete), nil
	}

	a.mu.Lock()
	if a.accepted[key] {
		// raced with an identical claim
		a.mu.Unlock()
		return a.decide(claim, ClaimRejectedDuplicate), nil
	}
	a.accepted[key] = true
	a.mu.Unlock()

	claim = a.decide(claim, ClaimAccepted)
	a.log.Infow("claim accepted", "game", claim.GameID, "user", userID, "card", cardID, "pattern", claimedPattern)
	if a.onAccept != nil {
		a.onAccept(claim)
	}
	return claim, nil
}

func (a *Arbiter) decide(c Claim, outcome ClaimOutcome) Claim {
	c.Outcome = outcome
	if a.recorder != nil {
		if err := a.recorder.RecordClaim(c); err != nil {
			a.log.Errorw("persist claim", "game", c.GameID, "user", c.UserID, "err", err)
		}
	}
	return c
}

// ResetGame forgets accepted claims for a game; called when the
// operator restarts its session.
func (a *Arbiter) ResetGame(gameID uint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for k := range a.accepted {
		if k.gameID == gameID {
			delete(a.accepted, k)
		}
	}
}
