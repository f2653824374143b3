package model

import "time"

// PricePoint is a validated observation: a positive price on a real
// calendar date. Points are immutable once created.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// ItemSeries holds the chronologically sorted price history of one item.
// Points is ascending by date; observations sharing a date keep their
// original submission order. A series may be empty.
type ItemSeries struct {
	ItemName string
	Points   []PricePoint
}

// Latest returns the most recent point. ok is false for an empty series.
func (s *ItemSeries) Latest() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Earliest returns the oldest point. ok is false for an empty series.
func (s *ItemSeries) Earliest() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[0], true
}
