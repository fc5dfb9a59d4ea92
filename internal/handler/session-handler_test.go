package handler

import (
	"testing"

	"sellerbot/internal/domain"
)

func TestSessionZeroValueMeansNothingAwaited(t *testing.T) {
	m := NewSessionManager()

	session := m.Get(1)
	if session.Awaiting != domain.AwaitingNothing {
		t.Fatalf("zero session awaits %q, want nothing", session.Awaiting)
	}
}

func TestSessionSetGetClear(t *testing.T) {
	m := NewSessionManager()

	m.Set(1, domain.Session{
		Awaiting:   domain.AwaitingReviewText,
		ReviewType: domain.ReviewTypeReview,
	})

	session := m.Get(1)
	if session.Awaiting != domain.AwaitingReviewText || session.ReviewType != domain.ReviewTypeReview {
		t.Fatalf("session = %+v", session)
	}

	m.Clear(1)
	if got := m.Get(1); got != (domain.Session{}) {
		t.Fatalf("session after Clear = %+v, want zero", got)
	}
}

// Await moves the flow to the next step without losing what was already
// collected.
func TestAwaitKeepsCollectedInput(t *testing.T) {
	m := NewSessionManager()

	m.Set(1, domain.Session{
		Awaiting:     domain.AwaitingReviewText,
		ReviewType:   domain.ReviewTypeQuestion,
		PendingInput: "какой размер выбрать?",
	})
	m.Await(1, domain.AwaitingProductInfo)

	session := m.Get(1)
	if session.Awaiting != domain.AwaitingProductInfo {
		t.Fatalf("awaiting = %q, want product info", session.Awaiting)
	}
	if session.PendingInput != "какой размер выбрать?" || session.ReviewType != domain.ReviewTypeQuestion {
		t.Fatalf("collected input lost: %+v", session)
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewSessionManager()

	m.Set(1, domain.Session{Awaiting: domain.AwaitingDescription})
	m.Set(2, domain.Session{Awaiting: domain.AwaitingKeywords})
	m.Clear(1)

	if got := m.Get(2).Awaiting; got != domain.AwaitingKeywords {
		t.Fatalf("user 2 awaiting = %q, want keywords", got)
	}
}

func TestUserLimiterBurstThenThrottle(t *testing.T) {
	l := newUserLimiter(60, 2)

	if !l.Allow(1) || !l.Allow(1) {
		t.Fatal("burst requests should be allowed")
	}
	if l.Allow(1) {
		t.Fatal("request beyond burst should be throttled")
	}

	// Another user has their own bucket
	if !l.Allow(2) {
		t.Fatal("a different user should not share the bucket")
	}
}
