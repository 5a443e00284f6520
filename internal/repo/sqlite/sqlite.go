package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS probe_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			host_id TEXT NOT NULL,
			address TEXT NOT NULL,
			rtt_ms REAL,
			classification TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			checked_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_probe_history_lookup
			ON probe_history(host_id, checked_at);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, r *domain.ProbeResult) error {
	var rtt sql.NullFloat64
	if r.RTTMS != nil {
		rtt = sql.NullFloat64{Float64: *r.RTTMS, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO probe_history (host_id, address, rtt_ms, classification, reason, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(r.HostID), r.Address, rtt, string(r.Classification), r.Reason, r.CheckedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func (s *Store) LastByHost(ctx context.Context, id domain.HostID) (*domain.ProbeResult, error) {
	rs, err := s.Recent(ctx, id, 1)
	if err != nil || len(rs) == 0 {
		return nil, err
	}
	return &rs[0], nil
}

func (s *Store) Recent(ctx context.Context, id domain.HostID, n int) ([]domain.ProbeResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT host_id, address, rtt_ms, classification, reason, checked_at FROM (
			SELECT host_id, address, rtt_ms, classification, reason, checked_at
			FROM probe_history
			WHERE host_id = ?
			ORDER BY checked_at DESC, id DESC
			LIMIT ?
		) ORDER BY checked_at ASC`,
		string(id), n,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []domain.ProbeResult
	for rows.Next() {
		var r domain.ProbeResult
		var hostID, class string
		var rtt sql.NullFloat64
		if err := rows.Scan(&hostID, &r.Address, &rtt, &class, &r.Reason, &r.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		r.HostID = domain.HostID(hostID)
		r.Classification = domain.Classification(class)
		if rtt.Valid {
			v := rtt.Float64
			r.RTTMS = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Cleanup drops history older than the retention cutoff.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM probe_history WHERE checked_at < ?`, olderThan.UTC())
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
