package collector

import (
	"errors"
	"testing"
	"time"

	"BazarPulse/internal/model"
)

func testProduct(name string, status model.Status, entries ...model.PriceEntry) model.Product {
	return model.Product{ItemName: name, Status: status, Prices: entries}
}

func newTestCollector(f Fetcher) *Collector {
	c := NewCollector(f)
	c.Workers = 2
	return c
}

func TestProducts_FiltersUnapproved(t *testing.T) {
	fetcher := &MockFetcher{Products: []model.Product{
		testProduct("Onion", model.StatusApproved, model.PriceEntry{Date: "2024-06-01", Price: "45"}),
		testProduct("Potato", model.StatusPending, model.PriceEntry{Date: "2024-06-01", Price: "30"}),
		testProduct("Beef", model.StatusRejected, model.PriceEntry{Date: "2024-06-01", Price: "780"}),
	}}
	c := newTestCollector(fetcher)

	products, err := c.Products()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ItemName != "Onion" {
		t.Errorf("expected only the approved product, got %+v", products)
	}
}

func TestCollectTrends(t *testing.T) {
	fetcher := &MockFetcher{Products: []model.Product{
		testProduct("Onion", model.StatusApproved,
			model.PriceEntry{Date: "2024-01-01", Price: "20"},
			model.PriceEntry{Date: "2024-01-08", Price: "25"},
		),
		testProduct("Potato", model.StatusApproved,
			model.PriceEntry{Date: "2024-01-05", Price: "30"},
		),
	}}
	c := newTestCollector(fetcher)

	trends, err := c.CollectTrends()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("expected 2 items, got %d", len(trends))
	}

	byName := map[string]ItemTrend{}
	for _, it := range trends {
		byName[it.Series.ItemName] = it
	}

	onion := byName["Onion"]
	if !onion.HasTrend {
		t.Fatal("expected a trend for Onion")
	}
	if onion.Trend.PercentChange != 25.0 {
		t.Errorf("expected +25.0%% for Onion, got %v", onion.Trend.PercentChange)
	}

	potato := byName["Potato"]
	if potato.HasTrend {
		t.Error("single-point Potato series must report no trend")
	}
	if len(potato.Series.Points) != 1 {
		t.Errorf("Potato series should still carry its point, got %d", len(potato.Series.Points))
	}
}

func TestCollectWatchlistTrends_FiltersUnapproved(t *testing.T) {
	fetcher := &MockFetcher{Watchlist: []model.Product{
		testProduct("Onion", model.StatusRejected,
			model.PriceEntry{Date: "2024-01-01", Price: "20"},
			model.PriceEntry{Date: "2024-01-08", Price: "25"},
		),
		testProduct("Potato", model.StatusApproved,
			model.PriceEntry{Date: "2024-01-05", Price: "30"},
		),
	}}
	c := newTestCollector(fetcher)

	trends, err := c.CollectWatchlistTrends()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 1 || trends[0].Series.ItemName != "Potato" {
		t.Fatalf("rejected watched product must not be aggregated, got %+v", trends)
	}
}

func TestCollectTrends_FetchError(t *testing.T) {
	c := newTestCollector(&MockFetcher{Err: errors.New("boom")})
	if _, err := c.CollectTrends(); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestCollectItem(t *testing.T) {
	fetcher := &MockFetcher{Products: []model.Product{
		testProduct("Onion", model.StatusApproved,
			model.PriceEntry{Date: "2024-01-01", Price: "20"},
			model.PriceEntry{Date: "2024-01-08", Price: "25"},
		),
	}}
	c := newTestCollector(fetcher)

	it, err := c.CollectItem("Onion")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !it.HasTrend || it.Trend.PercentChange != 25.0 {
		t.Errorf("unexpected trend: %+v", it.Trend)
	}

	missing, err := c.CollectItem("Tomato")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing.HasTrend || len(missing.Series.Points) != 0 {
		t.Errorf("unknown item should yield an empty series, got %+v", missing)
	}
}

func TestCache_ServesWithinTTL(t *testing.T) {
	calls := 0
	cache := NewCache(time.Minute)
	fetch := func() ([]model.Product, error) {
		calls++
		return []model.Product{{ItemName: "Onion"}}, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := cache.Fetch("products", fetch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}

	cache.Invalidate("products")
	if _, err := cache.Fetch("products", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected refetch after invalidate, got %d calls", calls)
	}
}

func TestCache_ErrorNotCached(t *testing.T) {
	calls := 0
	cache := NewCache(time.Minute)
	fetch := func() ([]model.Product, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return []model.Product{}, nil
	}

	if _, err := cache.Fetch("products", fetch); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	if _, err := cache.Fetch("products", fetch); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
}
