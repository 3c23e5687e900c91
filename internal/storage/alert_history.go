package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/t77yq/drive-arbiter/internal/model"
)

// AlertRecord is one surfaced alert: the moment arbitration switched the
// display to it.
type AlertRecord struct {
	ID        string         `json:"id"`
	AlertType string         `json:"alert_type"`
	EventType string         `json:"event_type"`
	Priority  model.Priority `json:"priority"`
	Text1     string         `json:"text_1"`
	Text2     string         `json:"text_2,omitempty"`
	StartedAt time.Time      `json:"started_at"`
}

// AlertHistory defines the interface for alert history storage.
type AlertHistory interface {
	// Store records a newly surfaced alert.
	Store(ctx context.Context, record *AlertRecord) error

	// List retrieves the most recent records, newest first.
	List(ctx context.Context, limit int) ([]*AlertRecord, error)

	// DeleteBefore deletes records that started before the given time.
	DeleteBefore(ctx context.Context, before time.Time) error

	// Close releases the store.
	Close() error
}

// SQLiteAlertHistory implements AlertHistory using SQLite, with a
// cron-scheduled retention job.
type SQLiteAlertHistory struct {
	logger    *zap.Logger
	db        *sql.DB
	cron      *cron.Cron
	retention time.Duration
}

// cronLogger adapts zap.Logger to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, zap.Error(err))
}

// NewSQLiteAlertHistory opens (or creates) the history database at dbPath.
// Records older than retention are purged by a daily job once StartRetention
// is called.
func NewSQLiteAlertHistory(logger *zap.Logger, dbPath string, retention time.Duration) (*SQLiteAlertHistory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteAlertHistory{
		logger:    logger.Named("alert-history"),
		db:        db,
		retention: retention,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// initialize creates the necessary tables if they don't exist.
func (s *SQLiteAlertHistory) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS alert_history (
			id TEXT PRIMARY KEY,
			alert_type TEXT NOT NULL,
			event_type TEXT NOT NULL,
			priority INTEGER NOT NULL,
			text_1 TEXT NOT NULL,
			text_2 TEXT,
			started_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_alert_history_alert_type ON alert_history(alert_type);
		CREATE INDEX IF NOT EXISTS idx_alert_history_started_at ON alert_history(started_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// StartRetention schedules the daily cleanup job.
func (s *SQLiteAlertHistory) StartRetention() error {
	logger := &cronLogger{logger: s.logger.Named("cron")}
	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(logger)),
	)

	// Daily at 03:00.
	_, err := s.cron.AddFunc("0 0 3 * * *", func() {
		cutoff := time.Now().Add(-s.retention)
		if err := s.DeleteBefore(context.Background(), cutoff); err != nil {
			s.logger.Error("Failed to clean up alert history", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Retention job scheduled", zap.Duration("retention", s.retention))
	return nil
}

// Store implements AlertHistory.Store.
func (s *SQLiteAlertHistory) Store(ctx context.Context, record *AlertRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alert_history (id, alert_type, event_type, priority, text_1, text_2, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.AlertType, record.EventType, int(record.Priority),
		record.Text1, record.Text2, record.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to store alert record: %w", err)
	}
	return nil
}

// List implements AlertHistory.List.
func (s *SQLiteAlertHistory) List(ctx context.Context, limit int) ([]*AlertRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, alert_type, event_type, priority, text_1, text_2, started_at
		FROM alert_history
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert records: %w", err)
	}
	defer rows.Close()

	var records []*AlertRecord
	for rows.Next() {
		var r AlertRecord
		var priority int
		var text2 sql.NullString
		if err := rows.Scan(&r.ID, &r.AlertType, &r.EventType, &priority, &r.Text1, &text2, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert record: %w", err)
		}
		r.Priority = model.Priority(priority)
		r.Text2 = text2.String
		records = append(records, &r)
	}
	return records, rows.Err()
}

// DeleteBefore implements AlertHistory.DeleteBefore.
func (s *SQLiteAlertHistory) DeleteBefore(ctx context.Context, before time.Time) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alert_history WHERE started_at < ?`, before)
	if err != nil {
		return fmt.Errorf("failed to delete alert records: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("Deleted old alert records", zap.Int64("count", n))
	}
	return nil
}

// Close implements AlertHistory.Close.
func (s *SQLiteAlertHistory) Close() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return s.db.Close()
}
