package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// cardSourceFunc adapts a function to CardSource.
type cardSourceFunc func(gameID, cardID uint) (*Card, error)

func (f cardSourceFunc) Card(gameID, cardID uint) (*Card, error) { return f(gameID, cardID) }

// fixedCardSource serves testCardNumbers for every card id, with every
// card owned by user 10.
func fixedCardSource() CardSource {
	return cardSourceFunc(func(gameID, cardID uint) (*Card, error) {
		return NewCard(cardID, gameID, 10, testCardNumbers), nil
	})
}

type recordedClaims struct {
	claims []Claim
	err    error
}

func (r *recordedClaims) RecordClaim(c Claim) error {
	r.claims = append(r.claims, c)
	return r.err
}

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

// drawUntil draws until every target number has come up.
func drawUntil(t *testing.T, s *Session, targets ...int) {
	t.Helper()
	want := make(map[int]bool, len(targets))
	for _, n := range targets {
		want[n] = true
	}
	for len(want) > 0 {
		ev, err := s.DrawNext()
		require.NoError(t, err)
		delete(want, ev.(NumberDrawn).Number)
	}
}

func TestSubmitRejectsWithoutActivePattern(t *testing.T) {
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	s := newTestSession(t, 1)
	startSession(t, s)

	claim, err := a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimRejectedNoPattern, claim.Outcome)
}

func TestSubmitRejectsPatternMismatch(t *testing.T) {
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	s := newTestSession(t, 1)
	startSession(t, s)
	_, err := s.SetPattern("four-corners")
	require.NoError(t, err)

	claim, err := a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimRejectedNoPattern, claim.Outcome)
}

func TestSubmitRejectsIncompleteCard(t *testing.T) {
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	s := newTestSession(t, 1)
	startSession(t, s)
	_, err := s.SetPattern("diagonal-down")
	require.NoError(t, err)

	// nothing drawn yet; only the free space is marked
	claim, err := a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimRejectedNotComplete, claim.Outcome)
}

func TestSubmitAcceptsOnceThenRejectsDuplicates(t *testing.T) {
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	s := newTestSession(t, 1)
	startSession(t, s)
	_, err := s.SetPattern("diagonal-down")
	require.NoError(t, err)
	drawUntil(t, s, 7, 18, 56, 75)

	claim, err := a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimAccepted, claim.Outcome)
	assert.True(t, claim.Accepted())
	assert.Equal(t, uint(1), claim.GameID)
	assert.Equal(t, uint(10), claim.UserID)
	assert.Equal(t, uint(5), claim.CardID)

	claim, err = a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimRejectedDuplicate, claim.Outcome)

	// a different card on the same pattern is its own claim
	claim, err = a.Submit(s, 10, 6, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimAccepted, claim.Outcome)
}

func TestSubmitRejectsCardOwnedBySomeoneElse(t *testing.T) {
	rec := &recordedClaims{}
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	a.SetRecorder(rec)
	hooked := 0
	a.SetAcceptHook(func(Claim) { hooked++ })

	s := newTestSession(t, 1)
	startSession(t, s)
	_, err := s.SetPattern("diagonal-down")
	require.NoError(t, err)
	drawUntil(t, s, 7, 18, 56, 75)

	// the card is complete, but user 99 does not own it
	claim, err := a.Submit(s, 99, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimRejectedNotOwner, claim.Outcome)
	assert.Equal(t, 0, hooked)
	require.Len(t, rec.claims, 1)
	assert.Equal(t, ClaimRejectedNotOwner, rec.claims[0].Outcome)
	assert.Equal(t, uint(99), rec.claims[0].UserID)

	// the owner's own claim is unaffected
	claim, err = a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimAccepted, claim.Outcome)
	assert.Equal(t, 1, hooked)
}

func TestSubmitUnknownCard(t *testing.T) {
	src := cardSourceFunc(func(gameID, cardID uint) (*Card, error) {
		return nil, errors.New("no such row")
	})
	a := NewArbiter(DefaultCatalog(), src, testLogger())
	s := newTestSession(t, 1)
	startSession(t, s)
	_, err := s.SetPattern("diagonal-down")
	require.NoError(t, err)

	_, err = a.Submit(s, 10, 404, "diagonal-down")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestSubmitRecordsEveryOutcome(t *testing.T) {
	rec := &recordedClaims{}
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	a.SetRecorder(rec)

	var hooked []Claim
	a.SetAcceptHook(func(c Claim) { hooked = append(hooked, c) })

	s := newTestSession(t, 1)
	startSession(t, s)

	_, err := a.Submit(s, 10, 5, "diagonal-down") // no pattern yet
	require.NoError(t, err)
	_, err = s.SetPattern("diagonal-down")
	require.NoError(t, err)
	_, err = a.Submit(s, 10, 5, "diagonal-down") // not complete
	require.NoError(t, err)
	drawUntil(t, s, 7, 18, 56, 75)
	_, err = a.Submit(s, 10, 5, "diagonal-down") // accepted
	require.NoError(t, err)
	_, err = a.Submit(s, 10, 5, "diagonal-down") // duplicate
	require.NoError(t, err)

	require.Len(t, rec.claims, 4)
	assert.Equal(t, ClaimRejectedNoPattern, rec.claims[0].Outcome)
	assert.Equal(t, ClaimRejectedNotComplete, rec.claims[1].Outcome)
	assert.Equal(t, ClaimAccepted, rec.claims[2].Outcome)
	assert.Equal(t, ClaimRejectedDuplicate, rec.claims[3].Outcome)

	// the hook fires for accepted claims only
	require.Len(t, hooked, 1)
	assert.Equal(t, ClaimAccepted, hooked[0].Outcome)
}

func TestResetGameForgetsAcceptedClaims(t *testing.T) {
	a := NewArbiter(DefaultCatalog(), fixedCardSource(), testLogger())
	s := newTestSession(t, 1)
	startSession(t, s)
	_, err := s.SetPattern("diagonal-down")
	require.NoError(t, err)
	drawUntil(t, s, 7, 18, 56, 75)

	claim, err := a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	require.Equal(t, ClaimAccepted, claim.Outcome)

	other := newTestSession(t, 2)
	startSession(t, other)
	_, err = other.SetPattern("diagonal-down")
	require.NoError(t, err)
	drawUntil(t, other, 7, 18, 56, 75)
	claim, err = a.Submit(other, 10, 5, "diagonal-down")
	require.NoError(t, err)
	require.Equal(t, ClaimAccepted, claim.Outcome)

	a.ResetGame(1)

	// game 1 can be won again, game 2's claim is still remembered
	claim, err = a.Submit(s, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimAccepted, claim.Outcome)
	claim, err = a.Submit(other, 10, 5, "diagonal-down")
	require.NoError(t, err)
	assert.Equal(t, ClaimRejectedDuplicate, claim.Outcome)
}
