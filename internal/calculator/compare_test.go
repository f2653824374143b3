package calculator

import (
	"testing"
	"time"

	"BazarPulse/internal/model"
)

func TestCompare_ExactDayMatch(t *testing.T) {
	s := seriesOf("Onion",
		model.PricePoint{Date: day("2024-05-01"), Price: 40},
		model.PricePoint{Date: day("2024-05-10"), Price: 46},
	)
	cmp, ok := Compare(s, day("2024-05-01"))
	if !ok {
		t.Fatal("expected a match")
	}
	if cmp.AnchorPrice != 40 || cmp.LatestPrice != 46 {
		t.Errorf("unexpected comparison: %+v", cmp)
	}
	if cmp.Delta != 6 {
		t.Errorf("expected delta 6, got %v", cmp.Delta)
	}
}

func TestCompare_TimezoneInsensitive(t *testing.T) {
	// Observation recorded at 18:00 UTC; user picks the same calendar day
	// at local midnight with a +06:00 offset.
	obs, _ := time.Parse(time.RFC3339, "2024-05-01T18:00:00Z")
	picked, _ := time.Parse(time.RFC3339, "2024-05-01T00:00:00+06:00")
	s := seriesOf("Rice",
		model.PricePoint{Date: obs, Price: 60},
		model.PricePoint{Date: day("2024-05-08"), Price: 66},
	)
	cmp, ok := Compare(s, picked)
	if !ok {
		t.Fatal("same UTC calendar day should match")
	}
	if cmp.AnchorPrice != 60 {
		t.Errorf("expected anchor price 60, got %v", cmp.AnchorPrice)
	}
}

func TestCompare_OffsetCrossingMidnightDoesNotMatch(t *testing.T) {
	// 23:30 at UTC-5 is May 2 in UTC, so it must not match a May 1 point.
	picked, _ := time.Parse(time.RFC3339, "2024-05-01T23:30:00-05:00")
	s := seriesOf("Rice",
		model.PricePoint{Date: day("2024-05-01"), Price: 60},
		model.PricePoint{Date: day("2024-05-08"), Price: 66},
	)
	if _, ok := Compare(s, picked); ok {
		t.Error("expected no match: picked instant falls on May 2 UTC")
	}
}

func TestCompare_NoMatchNoFallback(t *testing.T) {
	s := seriesOf("Potato",
		model.PricePoint{Date: day("2024-05-01"), Price: 30},
		model.PricePoint{Date: day("2024-05-03"), Price: 32},
	)
	// May 2 has no observation; the nearest dates must not be used.
	if _, ok := Compare(s, day("2024-05-02")); ok {
		t.Error("expected not-found for a day with no observation")
	}
}

func TestCompare_EmptySeries(t *testing.T) {
	if _, ok := Compare(seriesOf("Ghost"), day("2024-05-01")); ok {
		t.Error("expected not-found for empty series")
	}
}

func TestCompare_DuplicateDayTakesFirstSubmitted(t *testing.T) {
	s := seriesOf("Rice",
		model.PricePoint{Date: day("2024-05-01"), Price: 60},
		model.PricePoint{Date: day("2024-05-01"), Price: 62},
		model.PricePoint{Date: day("2024-05-08"), Price: 66},
	)
	cmp, ok := Compare(s, day("2024-05-01"))
	if !ok {
		t.Fatal("expected a match")
	}
	if cmp.AnchorPrice != 60 {
		t.Errorf("expected first-submitted point on the day, got %v", cmp.AnchorPrice)
	}
}

func TestCompare_NegativeDelta(t *testing.T) {
	s := seriesOf("Garlic",
		model.PricePoint{Date: day("2024-05-01"), Price: 100},
		model.PricePoint{Date: day("2024-05-08"), Price: 92},
	)
	cmp, ok := Compare(s, day("2024-05-01"))
	if !ok {
		t.Fatal("expected a match")
	}
	if cmp.Delta != -8 {
		t.Errorf("expected delta -8, got %v", cmp.Delta)
	}
}
