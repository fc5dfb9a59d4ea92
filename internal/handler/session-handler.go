package handler

import (
	"sync"

	"sellerbot/internal/domain"
)

// SessionManager keeps per-user scratch data for multi-step flows in memory.
// A session appears when a flow starts and is cleared when the flow finishes
// or the user navigates back to the main menu.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]domain.Session),
	}
}

// Get returns the session for a user; the zero session means nothing is
// awaited.
func (m *SessionManager) Get(telegramID int64) domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[telegramID]
}

// Set replaces the session for a user
func (m *SessionManager) Set(telegramID int64, session domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[telegramID] = session
}

// Await marks which free-text input is expected next, keeping other fields
func (m *SessionManager) Await(telegramID int64, awaiting domain.Awaiting) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.sessions[telegramID]
	session.Awaiting = awaiting
	m.sessions[telegramID] = session
}

// Clear drops the session for a user
func (m *SessionManager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, telegramID)
}
