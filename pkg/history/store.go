// Package history persists per-group coverage aggregates across runs in
// a local SQLite database, so coverage trends can be inspected without
// keeping old report files around.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/covtools/report-augmenter/pkg/report"
)

// Store wraps the coverage history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			label       TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS group_coverage (
			run_id     INTEGER NOT NULL REFERENCES runs(id),
			group_name TEXT NOT NULL,
			covered    INTEGER NOT NULL,
			total      INTEGER NOT NULL,
			position   INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_group_coverage_run
			ON group_coverage(run_id);
	`)
	return err
}

// Record stores one run's aggregates and returns the run id.
func (s *Store) Record(label string, groups []report.Aggregate) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO runs (label, recorded_at) VALUES (?, ?)",
		label, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, g := range groups {
		if _, err := tx.Exec(
			"INSERT INTO group_coverage (run_id, group_name, covered, total, position) VALUES (?, ?, ?, ?, ?)",
			runID, g.Name, g.Covered, g.Total, i,
		); err != nil {
			return 0, fmt.Errorf("insert group %s: %w", g.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// Run is one recorded report with its aggregates.
type Run struct {
	ID         int64
	Label      string
	RecordedAt string
	Groups     []report.Aggregate
}

// Runs returns all recorded runs, oldest first, each with its groups in
// recorded order.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query("SELECT id, label, recorded_at FROM runs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.RecordedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		groups, err := s.runGroups(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Groups = groups
	}
	return runs, nil
}

func (s *Store) runGroups(runID int64) ([]report.Aggregate, error) {
	rows, err := s.db.Query(
		"SELECT group_name, covered, total FROM group_coverage WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []report.Aggregate
	for rows.Next() {
		var g report.Aggregate
		if err := rows.Scan(&g.Name, &g.Covered, &g.Total); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Delta is the change in a group's coverage fraction between the two
// most recent runs sharing a label.
type Delta struct {
	Group    string
	Previous float64
	Current  float64
}

// Deltas compares the last two runs with the given label. A nil slice
// with no error means there is nothing to compare yet.
func (s *Store) Deltas(label string) ([]Delta, error) {
	rows, err := s.db.Query(
		"SELECT id FROM runs WHERE label = ? ORDER BY id DESC LIMIT 2", label,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) < 2 {
		return nil, nil
	}

	current, err := s.runGroups(ids[0])
	if err != nil {
		return nil, err
	}
	previous, err := s.runGroups(ids[1])
	if err != nil {
		return nil, err
	}

	prevFrac := make(map[string]float64, len(previous))
	for _, g := range previous {
		prevFrac[g.Name] = g.Frac()
	}

	var deltas []Delta
	for _, g := range current {
		prev, ok := prevFrac[g.Name]
		if !ok {
			continue
		}
		deltas = append(deltas, Delta{Group: g.Name, Previous: prev, Current: g.Frac()})
	}
	return deltas, nil
}
