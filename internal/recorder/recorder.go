package recorder

import "time"

// TrendSnapshot is one item's aggregated state at collection time.
type TrendSnapshot struct {
	ItemName      string
	LatestPrice   float64
	LatestDate    time.Time
	PercentChange float64
	Baseline      string // "WINDOWED", "EARLIEST", or "NONE"
	PointCount    int
}

// AlertEvent records a watch alert that was sent out.
type AlertEvent struct {
	ItemName      string
	PercentChange float64
	Threshold     float64
}

// Recorder persists collection history for later analysis.
type Recorder interface {
	RecordTrends(snaps []TrendSnapshot) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
