package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"BazarPulse/internal/model"
)

// MarketAPIFetcher implements Fetcher against the market tracker REST API.
type MarketAPIFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewMarketAPIFetcher creates a fetcher with optional proxy support.
func NewMarketAPIFetcher(baseURL, token, proxyURL string) *MarketAPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &MarketAPIFetcher{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *MarketAPIFetcher) Name() string { return "market-api" }

// FetchProducts returns the full catalog of vendor submissions.
func (f *MarketAPIFetcher) FetchProducts() ([]model.Product, error) {
	return f.fetchProductList("catalog", f.BaseURL+"/productsAll")
}

// FetchWatchlist returns the watched items with their price histories.
func (f *MarketAPIFetcher) FetchWatchlist() ([]model.Product, error) {
	return f.fetchProductList("watchlist", f.BaseURL+"/watchlistPrice")
}

func (f *MarketAPIFetcher) fetchProductList(what, endpoint string) ([]model.Product, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", what, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d, body: %s", what, resp.StatusCode, string(body))
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return products, nil
}
