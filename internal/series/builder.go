package series

import (
	"sort"

	"BazarPulse/internal/model"
	"BazarPulse/internal/normalizer"
)

// Build groups every product's raw observations by item name and returns
// one chronologically sorted series per item. Grouping is case-sensitive
// exact match on the display name; "Onion" and "onion" are distinct items
// (a known limitation, inherited from the submission flow). Series appear
// in the order item names are first seen. Invalid observations are
// dropped; observations from different vendors sharing a date are all
// kept.
func Build(products []model.Product) []model.ItemSeries {
	byName := make(map[string][]model.PricePoint)
	var order []string

	for _, p := range products {
		if _, seen := byName[p.ItemName]; !seen {
			order = append(order, p.ItemName)
			byName[p.ItemName] = nil
		}
		for _, entry := range p.Prices {
			pt, ok := normalizer.Normalize(entry)
			if !ok {
				continue
			}
			byName[p.ItemName] = append(byName[p.ItemName], pt)
		}
	}

	out := make([]model.ItemSeries, 0, len(order))
	for _, name := range order {
		out = append(out, newSeries(name, byName[name]))
	}
	return out
}

// BuildFor returns the series for a single item name. Products whose name
// does not match exactly contribute nothing. A name with no valid
// observations still yields a series with an empty Points slice; callers
// handle the empty case, it is not an error.
func BuildFor(products []model.Product, itemName string) model.ItemSeries {
	var points []model.PricePoint
	for _, p := range products {
		if p.ItemName != itemName {
			continue
		}
		for _, entry := range p.Prices {
			if pt, ok := normalizer.Normalize(entry); ok {
				points = append(points, pt)
			}
		}
	}
	return newSeries(itemName, points)
}

// newSeries sorts the surviving points ascending by date. The sort must be
// stable: points sharing a date keep their original submission order.
func newSeries(name string, points []model.PricePoint) model.ItemSeries {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return model.ItemSeries{ItemName: name, Points: points}
}
