package calculator

import (
	"math"

	"BazarPulse/internal/model"
)

// Trend computes the trailing-window percentage change for a series.
// ok is false when the series has fewer than two points; callers must not
// read that as "flat at 0%".
//
// The anchor is the most recent point at least TrendWindowDays older than
// the latest point. When no such point exists the earliest point serves
// instead, so that a comparison is always produced; the Baseline field
// tells the caller which case it got.
func Trend(s model.ItemSeries) (model.TrendResult, bool) {
	if len(s.Points) < 2 {
		return model.TrendResult{}, false
	}

	latest := s.Points[len(s.Points)-1]
	cutoff := latest.Date.AddDate(0, 0, -model.TrendWindowDays)

	anchor := s.Points[0]
	baseline := model.BaselineEarliest
	for i := len(s.Points) - 1; i >= 0; i-- {
		if !s.Points[i].Date.After(cutoff) {
			anchor = s.Points[i]
			baseline = model.BaselineWindowed
			break
		}
	}

	result := model.TrendResult{
		LatestPrice: latest.Price,
		LatestDate:  latest.Date,
		AnchorPrice: anchor.Price,
		AnchorDate:  anchor.Date,
		Baseline:    baseline,
		WindowDays:  model.TrendWindowDays,
	}

	// The normalizer guarantees positive prices; checked anyway so a bad
	// anchor yields 0% rather than Inf.
	if anchor.Price <= 0 {
		return result, true
	}

	change := (latest.Price - anchor.Price) / anchor.Price * 100
	result.PercentChange = math.Round(change*10) / 10
	return result, true
}
