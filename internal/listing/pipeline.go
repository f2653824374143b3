package listing

import (
	"sort"
	"time"

	"BazarPulse/internal/calendar"
	"BazarPulse/internal/model"
	"BazarPulse/internal/normalizer"
)

// SortOrder selects how listing entries are ordered by latest price.
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// DefaultPageSize matches the listing view's fixed rows-per-page.
const DefaultPageSize = 6

// Options configure one pass through the pipeline. Nil date bounds mean
// unbounded.
type Options struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Sort         SortOrder
	Page         int // 1-based
	PageSize     int // 0 means DefaultPageSize
	ApprovedOnly bool
}

// Entry is one listing row: the product plus its derived latest price.
type Entry struct {
	Product     model.Product
	LatestPrice float64
	LatestDate  time.Time
}

// Page is one slice of the filtered, sorted listing.
type Page struct {
	Items      []Entry
	Page       int
	TotalPages int
	TotalItems int
}

// Apply filters, sorts, and paginates a product collection. It never
// fails: an out-of-range page yields an empty Items slice, and products
// with no parseable observations simply carry a zero latest price.
func Apply(products []model.Product, opts Options) Page {
	var entries []Entry
	for _, p := range products {
		if opts.ApprovedOnly && !p.Approved() {
			continue
		}
		if !passesDateRange(p, opts.StartDate, opts.EndDate) {
			continue
		}
		price, date := latestObservation(p)
		entries = append(entries, Entry{Product: p, LatestPrice: price, LatestDate: date})
	}

	switch opts.Sort {
	case SortAscending:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].LatestPrice < entries[j].LatestPrice
		})
	case SortDescending:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].LatestPrice > entries[j].LatestPrice
		})
	}

	return paginate(entries, opts.Page, opts.PageSize)
}

// passesDateRange applies the range filter. The two bounds are independent
// existence checks: the product passes when some observation is on or
// after the start AND some observation (not necessarily the same one) is
// on or before the end. This reproduces the observed listing behavior; do
// not "fix" it to require a single observation inside the range.
func passesDateRange(p model.Product, start, end *time.Time) bool {
	if start != nil && !anyObservation(p, func(d time.Time) bool {
		return !calendar.DayOf(d).Before(calendar.DayOf(*start))
	}) {
		return false
	}
	if end != nil && !anyObservation(p, func(d time.Time) bool {
		return !calendar.DayOf(*end).Before(calendar.DayOf(d))
	}) {
		return false
	}
	return true
}

func anyObservation(p model.Product, pred func(time.Time) bool) bool {
	for _, entry := range p.Prices {
		d, err := calendar.ParseDate(entry.Date)
		if err != nil {
			continue // unparseable dates never satisfy a bound
		}
		if pred(d) {
			return true
		}
	}
	return false
}

// latestObservation returns the price of the observation with the maximum
// date. Ties go to the last-submitted observation. A product with no
// valid observations reports a zero price and zero date.
func latestObservation(p model.Product) (float64, time.Time) {
	var bestPrice float64
	var bestDate time.Time
	for _, entry := range p.Prices {
		pt, ok := normalizer.Normalize(entry)
		if !ok {
			continue
		}
		if bestDate.IsZero() || !pt.Date.Before(bestDate) {
			bestPrice = pt.Price
			bestDate = pt.Date
		}
	}
	return bestPrice, bestDate
}

func paginate(entries []Entry, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(entries)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return Page{Items: []Entry{}, Page: page, TotalPages: totalPages, TotalItems: total}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page{Items: entries[start:end], Page: page, TotalPages: totalPages, TotalItems: total}
}
