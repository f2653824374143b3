package collector

import "BazarPulse/internal/model"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Products  []model.Product
	Watchlist []model.Product
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchProducts() ([]model.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Products, nil
}

func (m *MockFetcher) FetchWatchlist() ([]model.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Watchlist, nil
}
