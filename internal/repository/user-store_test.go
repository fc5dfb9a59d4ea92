package repository

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"sellerbot/internal/domain"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()
	store, err := NewUserStore(filepath.Join(t.TempDir(), "users.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewUserStore: %v", err)
	}
	return store
}

func TestLoadMissingFileReturnsEmptyStore(t *testing.T) {
	store := newTestStore(t)

	users, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := domain.UserProfile{
		Marketplace:  domain.MarketplaceOzon,
		Tariff:       domain.TariffFree,
		RequestsLeft: 3,
	}
	if err := store.Put(42, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
}

func TestGetUnknownUserReturnsErrNoProfile(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get(7); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("Get err = %v, want ErrNoProfile", err)
	}
}

func TestSaveLoadIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(1, domain.NewUserProfile(domain.MarketplaceWildberries, 3)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(2, domain.NewUserProfile(domain.MarketplaceOzon, 2)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	first, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Load()
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("save(load()) changed the store: %+v != %+v", first, second)
	}
}

func TestUpdateUnknownUserReturnsErrNoProfile(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(9, func(p *domain.UserProfile) error {
		p.RequestsLeft = 0
		return nil
	})
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("Update err = %v, want ErrNoProfile", err)
	}
}

func TestUpdateErrorAbortsWrite(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(5, domain.NewUserProfile(domain.MarketplaceOzon, 3)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	wantErr := errors.New("no")
	err := store.Update(5, func(p *domain.UserProfile) error {
		p.RequestsLeft = 0
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update err = %v, want %v", err, wantErr)
	}

	got, err := store.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RequestsLeft != 3 {
		t.Fatalf("aborted update still wrote: requests_left = %d", got.RequestsLeft)
	}
}

func TestConsumeRequestDecrements(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(11, domain.NewUserProfile(domain.MarketplaceOzon, 3)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.ConsumeRequest(11); err != nil {
		t.Fatalf("ConsumeRequest: %v", err)
	}

	got, err := store.Get(11)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RequestsLeft != 2 {
		t.Fatalf("requests_left = %d, want 2", got.RequestsLeft)
	}
}

func TestConsumeRequestExhausted(t *testing.T) {
	store := newTestStore(t)

	profile := domain.NewUserProfile(domain.MarketplaceOzon, 3)
	profile.RequestsLeft = 0
	if err := store.Put(12, profile); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.ConsumeRequest(12); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("ConsumeRequest err = %v, want ErrQuotaExhausted", err)
	}

	got, _ := store.Get(12)
	if got.RequestsLeft != 0 {
		t.Fatalf("requests_left = %d, want 0", got.RequestsLeft)
	}
}

// Two concurrent consumers of a single remaining request must not both
// succeed.
func TestConsumeRequestConcurrentLastRequest(t *testing.T) {
	store := newTestStore(t)

	profile := domain.NewUserProfile(domain.MarketplaceWildberries, 3)
	profile.RequestsLeft = 1
	if err := store.Put(13, profile); err != nil {
		t.Fatalf("Put: %v", err)
	}

	const workers = 8
	results := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.ConsumeRequest(13)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrQuotaExhausted):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d consumers succeeded, want exactly 1", succeeded)
	}

	got, _ := store.Get(13)
	if got.RequestsLeft != 0 {
		t.Fatalf("requests_left = %d, want 0", got.RequestsLeft)
	}
}
