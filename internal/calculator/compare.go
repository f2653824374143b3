package calculator

import (
	"time"

	"BazarPulse/internal/calendar"
	"BazarPulse/internal/model"
)

// Compare finds the observation on the same UTC calendar day as anchorDate
// and returns the signed price difference against the latest observation.
// ok is false when no observation falls on that day; there is no
// nearest-date fallback. When several observations share the anchor day
// the earliest-submitted one wins.
//
// Whether anchorDate lies in the past is the caller's concern; a future
// date simply has no matching observation.
func Compare(s model.ItemSeries, anchorDate time.Time) (model.Comparison, bool) {
	latest, ok := s.Latest()
	if !ok {
		return model.Comparison{}, false
	}

	key := calendar.DayOf(anchorDate)
	for _, pt := range s.Points {
		if calendar.DayOf(pt.Date) == key {
			return model.Comparison{
				AnchorDate:  key.Time(),
				AnchorPrice: pt.Price,
				LatestDate:  calendar.DayOf(latest.Date).Time(),
				LatestPrice: latest.Price,
				Delta:       latest.Price - pt.Price,
			}, true
		}
	}
	return model.Comparison{}, false
}
