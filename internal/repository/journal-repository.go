package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JournalEntry records one successful generation
type JournalEntry struct {
	ID          string    `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	Kind        string    `json:"kind"`
	Marketplace string    `json:"marketplace"`
	PromptLen   int       `json:"prompt_len"`
	ReplyLen    int       `json:"reply_len"`
	CreatedAt   time.Time `json:"created_at"`
}

type JournalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewJournalRepository(db *sql.DB, logger *zap.Logger) *JournalRepository {
	return &JournalRepository{
		db:     db,
		logger: logger,
	}
}

// Record inserts a journal row for a successful generation
func (r *JournalRepository) Record(telegramID int64, kind, marketplace string, promptLen, replyLen int) error {
	entryID := uuid.New().String()

	query := `
		INSERT INTO generation_journal (
			id, telegram_id, kind, marketplace, prompt_len, reply_len, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		entryID, telegramID, kind, marketplace, promptLen, replyLen, time.Now(),
	)

	if err != nil {
		r.logger.Error("Failed to record journal entry",
			zap.Error(err),
			zap.Int64("telegram_id", telegramID),
			zap.String("kind", kind))
		return fmt.Errorf("failed to record journal entry: %w", err)
	}

	return nil
}

// CountByUser returns the total number of successful generations for a user
func (r *JournalRepository) CountByUser(telegramID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM generation_journal WHERE telegram_id = ?`,
		telegramID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return count, nil
}

// Recent returns the newest journal entries, most recent first
func (r *JournalRepository) Recent(limit int) ([]JournalEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, telegram_id, kind, marketplace, prompt_len, reply_len, created_at
		FROM generation_journal
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var entry JournalEntry
		if err := rows.Scan(
			&entry.ID, &entry.TelegramID, &entry.Kind, &entry.Marketplace,
			&entry.PromptLen, &entry.ReplyLen, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
