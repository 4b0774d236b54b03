package logging

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS session_turns (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id     TEXT NOT NULL,
	turn           INTEGER NOT NULL,
	text           TEXT NOT NULL,
	delay_seconds  REAL NOT NULL,
	speaking_secs  REAL NOT NULL,
	confidence     REAL NOT NULL,
	hesitations    INTEGER NOT NULL,
	gauge_before   INTEGER NOT NULL,
	gauge_after    INTEGER NOT NULL,
	mood           TEXT NOT NULL,
	event_type     TEXT,
	reversal_type  TEXT,
	interrupted    INTEGER NOT NULL DEFAULT 0,
	modifications  TEXT,
	created_at     TEXT NOT NULL,
	UNIQUE (session_id, turn)
);

CREATE INDEX IF NOT EXISTS idx_session_turns_session
	ON session_turns (session_id, turn);
`
// #endregion schema

// #region store-struct
// Store persists per-turn provenance in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region log-turn
// LogTurn writes one turn record. Logging the same (session, turn) pair twice
// is an error: the pipeline evaluates each turn exactly once.
func (s *Store) LogTurn(rec TurnRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO session_turns
		 (session_id, turn, text, delay_seconds, speaking_secs, confidence, hesitations,
		  gauge_before, gauge_after, mood, event_type, reversal_type, interrupted, modifications, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Turn,
		rec.Text,
		rec.ResponseDelaySeconds,
		rec.SpeakingDuration,
		rec.Confidence,
		rec.HesitationCount,
		rec.GaugeBefore,
		rec.GaugeAfter,
		rec.Mood,
		nullIfEmpty(rec.EventType),
		nullIfEmpty(rec.ReversalType),
		rec.Interrupted,
		nullIfEmpty(rec.ModificationsJSON),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log turn %d of session %s: %w", rec.Turn, rec.SessionID, err)
	}
	return nil
}
// #endregion log-turn

// #region session-turns
// SessionTurns returns the full turn history of one session in order.
func (s *Store) SessionTurns(sessionID string) ([]TurnRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, turn, text, delay_seconds, speaking_secs, confidence, hesitations,
		        gauge_before, gauge_after, mood, event_type, reversal_type, interrupted, modifications, created_at
		 FROM session_turns WHERE session_id = ? ORDER BY turn`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []TurnRecord
	for rows.Next() {
		var rec TurnRecord
		var eventType, reversalType, modifications sql.NullString
		var createdAt string
		if err := rows.Scan(
			&rec.SessionID, &rec.Turn, &rec.Text,
			&rec.ResponseDelaySeconds, &rec.SpeakingDuration, &rec.Confidence, &rec.HesitationCount,
			&rec.GaugeBefore, &rec.GaugeAfter, &rec.Mood,
			&eventType, &reversalType, &rec.Interrupted, &modifications, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		rec.EventType = eventType.String
		rec.ReversalType = reversalType.String
		rec.ModificationsJSON = modifications.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
// #endregion session-turns

// #region sessions
// Sessions lists every logged session with turn count and final gauge.
func (s *Store) Sessions() ([]SessionSummary, error) {
	rows, err := s.db.Query(
		`SELECT session_id, COUNT(*), MAX(created_at),
		        (SELECT gauge_after FROM session_turns t2
		         WHERE t2.session_id = t1.session_id ORDER BY turn DESC LIMIT 1)
		 FROM session_turns t1 GROUP BY session_id ORDER BY MAX(created_at)`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var lastAt string
		if err := rows.Scan(&sum.SessionID, &sum.Turns, &lastAt, &sum.FinalGauge); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.LastTurnAt, _ = time.Parse(time.RFC3339Nano, lastAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}
// #endregion sessions

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
