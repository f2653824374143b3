package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// PostgresRecorder persists collection history to PostgreSQL, for
// deployments where several collectors share one database.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder connects, pings, and runs migrations.
func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &PostgresRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Println("[INFO] postgres recorder connected")
	return r, nil
}

func (r *PostgresRecorder) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS trend_snapshots (
		id             SERIAL PRIMARY KEY,
		timestamp      TIMESTAMP NOT NULL DEFAULT NOW(),
		item_name      TEXT NOT NULL,
		latest_price   NUMERIC(12,2),
		latest_date    DATE,
		percent_change NUMERIC(8,1),
		baseline       VARCHAR(16),
		point_count    INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_ts   ON trend_snapshots (timestamp);
	CREATE INDEX IF NOT EXISTS idx_snapshots_item ON trend_snapshots (item_name);

	CREATE TABLE IF NOT EXISTS alert_events (
		id             SERIAL PRIMARY KEY,
		timestamp      TIMESTAMP NOT NULL DEFAULT NOW(),
		item_name      TEXT NOT NULL,
		percent_change NUMERIC(8,1),
		threshold      NUMERIC(8,1)
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alert_events (timestamp);
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// RecordTrends inserts one row per item in a single transaction.
func (r *PostgresRecorder) RecordTrends(snaps []TrendSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO trend_snapshots
		(item_name, latest_price, latest_date, percent_change, baseline, point_count)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, s := range snaps {
		if _, err := stmt.Exec(s.ItemName, s.LatestPrice, s.LatestDate,
			s.PercentChange, s.Baseline, s.PointCount); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot for %s: %w", s.ItemName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) RecordAlert(evt *AlertEvent) error {
	_, err := r.db.Exec(`INSERT INTO alert_events
		(item_name, percent_change, threshold)
		VALUES ($1, $2, $3)`,
		evt.ItemName, evt.PercentChange, evt.Threshold,
	)
	return err
}

func (r *PostgresRecorder) Close() error {
	log.Println("[INFO] closing postgres recorder")
	return r.db.Close()
}
