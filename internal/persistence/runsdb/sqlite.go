// Package runsdb keeps a sqlite history of scoring runs. Writes go through a
// single writer goroutine; a full queue drops the record rather than stalling
// a scan, the JSONL run log remains the source of truth.
package runsdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"boardlens.ai/internal/protocol"
)

type DB struct {
	db *sql.DB

	ch   chan runRow
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type runRow struct {
	runID  string
	at     time.Time
	digest string
	result *protocol.ScanResult

	fence chan struct{} // when set, the writer just closes it
}

// RunSummary is one row of the runs table, as read back by RecentRuns.
type RunSummary struct {
	RunID         string
	At            string
	CatalogDigest string
	Players       int
	Cards         int
	Total         int
}

func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &DB{
		db: db,
		ch: make(chan runRow, 1024),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			at TEXT NOT NULL,
			catalog_digest TEXT NOT NULL,
			players INTEGER NOT NULL,
			cards INTEGER NOT NULL,
			total INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(at);`,
		`CREATE TABLE IF NOT EXISTS run_entries (
			run_id TEXT NOT NULL,
			player TEXT NOT NULL,
			seq INTEGER NOT NULL,
			label TEXT NOT NULL,
			title TEXT NOT NULL,
			points INTEGER NOT NULL,
			reason TEXT NOT NULL,
			grp TEXT,
			PRIMARY KEY (run_id, player, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// Record queues one finished run for insertion.
func (s *DB) Record(runID string, at time.Time, res *protocol.ScanResult) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- runRow{runID: runID, at: at, digest: res.CatalogDigest, result: res}:
	default:
	}
}

func (s *DB) loop() {
	for r := range s.ch {
		if r.fence != nil {
			close(r.fence)
			continue
		}
		s.insert(r)
	}
}

func (s *DB) insert(r runRow) {
	cards, total := 0, 0
	for _, p := range r.result.Players {
		cards += len(p.Cards)
		total += p.Total
	}

	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO runs (run_id, at, catalog_digest, players, cards, total) VALUES (?,?,?,?,?,?)`,
		r.runID, r.at.UTC().Format(time.RFC3339Nano), r.digest, len(r.result.Players), cards, total,
	)
	if err != nil {
		_ = tx.Rollback()
		return
	}
	for _, p := range r.result.Players {
		for seq, c := range p.Cards {
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO run_entries (run_id, player, seq, label, title, points, reason, grp) VALUES (?,?,?,?,?,?,?,?)`,
				r.runID, p.Name, seq, c.Label, c.Title, c.Points, c.Reason, c.Group,
			); err != nil {
				_ = tx.Rollback()
				return
			}
		}
	}
	_ = tx.Commit()
}

// Flush blocks until everything queued so far has been written. The CLI and
// tests call this before reading back.
func (s *DB) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	fence := make(chan struct{})
	s.ch <- runRow{fence: fence}
	<-fence
}

// RecentRuns returns the newest runs, newest first.
func (s *DB) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT run_id, at, catalog_digest, players, cards, total FROM runs ORDER BY at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.At, &r.CatalogDigest, &r.Players, &r.Cards, &r.Total); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
