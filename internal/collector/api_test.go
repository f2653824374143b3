package collector

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMarketAPIFetcher_FetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/productsAll" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`[{"itemName":"Onion","status":"approved","prices":[{"date":"2024-06-01","price":"45"}]}]`))
	}))
	defer srv.Close()

	f := NewMarketAPIFetcher(srv.URL, "secret", "")
	products, err := f.FetchProducts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ItemName != "Onion" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestMarketAPIFetcher_ErrorsNameTheEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewMarketAPIFetcher(srv.URL, "", "")

	if _, err := f.FetchWatchlist(); err == nil || !strings.Contains(err.Error(), "watchlist") {
		t.Errorf("watchlist failure should name the watchlist, got %v", err)
	}
	if _, err := f.FetchProducts(); err == nil || !strings.Contains(err.Error(), "catalog") {
		t.Errorf("catalog failure should name the catalog, got %v", err)
	}
}
