package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists collection history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the collector writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trend_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			item_name      TEXT NOT NULL,
			latest_price   REAL,
			latest_date    TEXT,
			percent_change REAL,
			baseline       TEXT,
			point_count    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON trend_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_item ON trend_snapshots(item_name)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			item_name      TEXT NOT NULL,
			percent_change REAL,
			threshold      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alert_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordTrends inserts one row per item in a single transaction.
func (r *SQLiteRecorder) RecordTrends(snaps []TrendSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	now := time.Now().Unix()
	for _, s := range snaps {
		if _, err := tx.Exec(`INSERT INTO trend_snapshots
			(timestamp, item_name, latest_price, latest_date, percent_change, baseline, point_count)
			VALUES (?,?,?,?,?,?,?)`,
			now, s.ItemName, s.LatestPrice, s.LatestDate.Format("2006-01-02"),
			s.PercentChange, s.Baseline, s.PointCount,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot for %s: %w", s.ItemName, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alert_events
		(timestamp, item_name, percent_change, threshold)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.ItemName, evt.PercentChange, evt.Threshold,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
