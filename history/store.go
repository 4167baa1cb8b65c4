// Package history keeps a log of completed draws in SQLite.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minaorangina/luckydraw/deck"
	"github.com/minaorangina/luckydraw/rules"
	"github.com/minaorangina/luckydraw/session"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var ErrNotConfigured = errors.New("history storage is not configured")

// Record is one stored draw
type Record struct {
	ID          int64       `json:"id"`
	SessionID   string      `json:"session_id"`
	Number      int         `json:"draw"`
	Hand        []deck.Card `json:"hand"`
	Matched     bool        `json:"matched"`
	Description string      `json:"description,omitempty"`
	Date        rules.Date  `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
}

// FromDraw builds a Record for a session draw
func FromDraw(sessionID string, d session.Draw, at time.Time) Record {
	return Record{
		SessionID:   sessionID,
		Number:      d.Number,
		Hand:        d.Hand,
		Matched:     d.Result.Matched,
		Description: d.Result.Description,
		Date:        d.Date,
		CreatedAt:   at,
	}
}

// Store provides SQLite-backed draw history.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a history SQLite store and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordDraw persists one draw.
func (s *Store) RecordDraw(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}

	record.SessionID = strings.TrimSpace(record.SessionID)
	if record.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if record.Number <= 0 {
		return fmt.Errorf("draw number must be positive")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}

	hand, err := json.Marshal(record.Hand)
	if err != nil {
		return fmt.Errorf("encode hand: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO draws (
	session_id,
	draw_number,
	hand,
	matched,
	description,
	draw_month,
	draw_day,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		record.SessionID,
		record.Number,
		string(hand),
		record.Matched,
		record.Description,
		int(record.Date.Month),
		record.Date.Day,
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record draw: %w", err)
	}
	return nil
}

// ListDraws lists a session's draws, highest draw number first.
func (s *Store) ListDraws(ctx context.Context, sessionID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	session_id,
	draw_number,
	hand,
	matched,
	description,
	draw_month,
	draw_day,
	created_at
FROM draws
WHERE session_id = ?
ORDER BY draw_number DESC, id DESC
LIMIT ?
`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list draws: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var (
			record    Record
			hand      string
			month     int
			createdAt int64
		)
		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.Number,
			&hand,
			&record.Matched,
			&record.Description,
			&month,
			&record.Date.Day,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan draw: %w", err)
		}
		if err := json.Unmarshal([]byte(hand), &record.Hand); err != nil {
			return nil, fmt.Errorf("decode hand: %w", err)
		}
		record.Date.Month = time.Month(month)
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate draws: %w", err)
	}
	return records, nil
}

// Recorder returns a session renderer that stores every draw it sees
func (s *Store) Recorder(ctx context.Context, onError func(error)) session.Renderer {
	return session.RendererFunc(func(sessionID string, d session.Draw) {
		if err := s.RecordDraw(ctx, FromDraw(sessionID, d, s.now())); err != nil && onError != nil {
			onError(err)
		}
	})
}
