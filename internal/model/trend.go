package model

import "time"

// TrendWindowDays is the nominal trailing window for trend calculation.
// The window is nominal, not guaranteed: short series fall back to the
// earliest point (see TrendBaseline).
const TrendWindowDays = 7

// TrendBaseline tells which anchor a trend was computed against.
type TrendBaseline string

const (
	// BaselineWindowed means a point at least TrendWindowDays old existed.
	BaselineWindowed TrendBaseline = "WINDOWED"
	// BaselineEarliest means the series was shorter than the window and
	// the earliest point served as the anchor instead.
	BaselineEarliest TrendBaseline = "EARLIEST"
)

// TrendResult describes how an item's price moved over the trailing window.
type TrendResult struct {
	LatestPrice   float64
	LatestDate    time.Time
	AnchorPrice   float64
	AnchorDate    time.Time
	PercentChange float64 // signed, rounded to one decimal
	Baseline      TrendBaseline
	WindowDays    int
}

// Comparison is a two-point delta between a user-chosen anchor day and the
// latest observation. Delta is an absolute price difference, not a percent;
// trend and comparison answer different questions and keep different units.
type Comparison struct {
	AnchorDate  time.Time // UTC midnight of the anchor calendar day
	AnchorPrice float64
	LatestDate  time.Time // UTC midnight of the latest observation's day
	LatestPrice float64
	Delta       float64
}
