package collector

import "BazarPulse/internal/model"

// Fetcher retrieves product records from the market price API. The engine
// itself never fetches; everything downstream works on the in-memory
// records a Fetcher hands back.
type Fetcher interface {
	FetchProducts() ([]model.Product, error)
	FetchWatchlist() ([]model.Product, error)
	Name() string
}
