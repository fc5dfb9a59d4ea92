package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"sellerbot/internal/domain"

	"go.uber.org/zap"
)

var (
	// ErrNoProfile is returned when a user has no stored profile yet
	ErrNoProfile = errors.New("profile not found")
	// ErrQuotaExhausted is returned when a profile has no generation requests left
	ErrQuotaExhausted = errors.New("quota exhausted")
)

// UserStore is a durable mapping from Telegram user ID to profile, backed by
// a single JSON file. The whole mapping is loaded and rewritten on every
// mutation; a store-level mutex serializes read-modify-write cycles so
// concurrent updates cannot lose writes.
type UserStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewUserStore(path string, logger *zap.Logger) (*UserStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &UserStore{path: path, logger: logger}, nil
}

// Load reads the full mapping. A missing backing file is not an error and
// yields an empty mapping.
func (s *UserStore) Load() (map[string]domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the entire backing store atomically.
func (s *UserStore) Save(users map[string]domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(users)
}

// Get returns the profile for a single user, ErrNoProfile if absent.
func (s *UserStore) Get(telegramID int64) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile, ok := users[key(telegramID)]
	if !ok {
		return domain.UserProfile{}, ErrNoProfile
	}
	return profile, nil
}

// Put stores a profile for the user, replacing any previous one.
func (s *UserStore) Put(telegramID int64, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	users[key(telegramID)] = profile
	return s.save(users)
}

// Update runs fn against the stored profile inside one locked
// load-mutate-save cycle. Returns ErrNoProfile when the user is unknown; a
// non-nil error from fn aborts the update without writing.
func (s *UserStore) Update(telegramID int64, fn func(*domain.UserProfile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	profile, ok := users[key(telegramID)]
	if !ok {
		return ErrNoProfile
	}

	if err := fn(&profile); err != nil {
		return err
	}

	users[key(telegramID)] = profile
	return s.save(users)
}

// ConsumeRequest decrements the user's remaining quota by one. The check and
// the decrement happen under the store lock, so two concurrent consumers of a
// single remaining request cannot both succeed: the loser observes
// ErrQuotaExhausted.
func (s *UserStore) ConsumeRequest(telegramID int64) error {
	return s.Update(telegramID, func(p *domain.UserProfile) error {
		if p.RequestsLeft <= 0 {
			return ErrQuotaExhausted
		}
		p.RequestsLeft--
		return nil
	})
}

func (s *UserStore) load() (map[string]domain.UserProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]domain.UserProfile), nil
		}
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}

	if len(data) == 0 {
		return make(map[string]domain.UserProfile), nil
	}

	users := make(map[string]domain.UserProfile)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user store: %w", err)
	}
	return users, nil
}

func (s *UserStore) save(users map[string]domain.UserProfile) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}

	// Whole-file replace via temp file + rename keeps the store parsable even
	// if the process dies mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace user store: %w", err)
	}

	s.logger.Debug("user store saved", zap.Int("users", len(users)))
	return nil
}

func key(telegramID int64) string {
	return strconv.FormatInt(telegramID, 10)
}
