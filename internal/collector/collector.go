package collector

import (
	"fmt"
	"log"
	"sync"
	"time"

	"BazarPulse/internal/calculator"
	"BazarPulse/internal/model"
	"BazarPulse/internal/series"
)

// ItemTrend pairs an item's series with its computed trend. HasTrend is
// false for series with fewer than two points; the zero Trend must not be
// read as "flat".
type ItemTrend struct {
	Series   model.ItemSeries
	Trend    model.TrendResult
	HasTrend bool
}

// Collector orchestrates catalog fetching and per-item trend computation.
type Collector struct {
	Fetcher Fetcher
	Cache   *Cache
	Workers int
}

const (
	cacheKeyProducts  = "products"
	cacheKeyWatchlist = "watchlist"

	defaultCacheTTL = 5 * time.Minute
	defaultWorkers  = 4
)

// NewCollector creates a Collector with a fresh catalog cache.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Cache:   NewCache(defaultCacheTTL),
		Workers: defaultWorkers,
	}
}

// Products returns the approved slice of the catalog, served from cache
// when fresh. Pending and rejected submissions never reach the engine.
func (c *Collector) Products() ([]model.Product, error) {
	all, err := c.Cache.Fetch(cacheKeyProducts, c.Fetcher.FetchProducts)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return approvedOnly(all), nil
}

func approvedOnly(products []model.Product) []model.Product {
	approved := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Approved() {
			approved = append(approved, p)
		}
	}
	return approved
}

// CollectTrends builds one series per approved item and computes its
// trend. Items without enough data are still reported, with HasTrend
// false, so callers can tell "no data" from "flat".
func (c *Collector) CollectTrends() ([]ItemTrend, error) {
	products, err := c.Products()
	if err != nil {
		return nil, err
	}
	return c.trendsFor(products), nil
}

// CollectWatchlistTrends is CollectTrends over the watched items only.
// The approval filter applies here too: a product that was rejected after
// being watched must not feed alerts.
func (c *Collector) CollectWatchlistTrends() ([]ItemTrend, error) {
	watched, err := c.Cache.Fetch(cacheKeyWatchlist, c.Fetcher.FetchWatchlist)
	if err != nil {
		return nil, fmt.Errorf("fetch watchlist: %w", err)
	}
	return c.trendsFor(approvedOnly(watched)), nil
}

// CollectItem builds the series for one item name from the approved
// catalog.
func (c *Collector) CollectItem(itemName string) (ItemTrend, error) {
	products, err := c.Products()
	if err != nil {
		return ItemTrend{}, err
	}
	s := series.BuildFor(products, itemName)
	trend, ok := calculator.Trend(s)
	return ItemTrend{Series: s, Trend: trend, HasTrend: ok}, nil
}

// trendsFor fans trend computation out over a small worker pool. Each
// series is independent, so the only shared state is the results slice,
// indexed per job.
func (c *Collector) trendsFor(products []model.Product) []ItemTrend {
	allSeries := series.Build(products)
	results := make([]ItemTrend, len(allSeries))

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				trend, ok := calculator.Trend(allSeries[i])
				results[i] = ItemTrend{Series: allSeries[i], Trend: trend, HasTrend: ok}
			}
		}()
	}
	for i := range allSeries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	log.Printf("[INFO] computed trends for %d items (%d products)", len(allSeries), len(products))
	return results
}
