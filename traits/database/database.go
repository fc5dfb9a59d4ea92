package database

import (
	"database/sql"
	"os"

	"sellerbot/config"

	"go.uber.org/zap"
)

// InitDatabase initializes the SQLite database used for the generation journal
func InitDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", cfg.GetDatabasePath()+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Database initialized successfully",
		zap.String("path", cfg.GetDatabasePath()),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return db, nil
}

// CreateTables creates the generation journal table
func CreateTables(db *sql.DB, logger *zap.Logger) error {
	journalTable := `
		CREATE TABLE IF NOT EXISTS generation_journal (
			id TEXT PRIMARY KEY,
			telegram_id INTEGER NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('description', 'keywords', 'review', 'question')),
			marketplace TEXT DEFAULT '',
			prompt_len INTEGER NOT NULL DEFAULT 0,
			reply_len INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`

	journalIndex := `
		CREATE INDEX IF NOT EXISTS idx_journal_telegram_id
		ON generation_journal(telegram_id, created_at);`

	for _, stmt := range []string{journalTable, journalIndex} {
		if _, err := db.Exec(stmt); err != nil {
			logger.Error("failed to create journal schema", zap.Error(err))
			return err
		}
	}

	logger.Info("Database tables created successfully")
	return nil
}
