package notifier

import (
	"fmt"
	"strings"
	"time"

	"BazarPulse/internal/collector"
	"BazarPulse/internal/listing"
	"BazarPulse/internal/model"
)

// FormatPercent renders a signed percent change with an explicit leading
// plus for non-negative values.
func FormatPercent(change float64) string {
	return fmt.Sprintf("%+.1f%%", change)
}

func baselineLabel(t model.TrendResult) string {
	if t.Baseline == model.BaselineWindowed {
		return fmt.Sprintf("last %d days", t.WindowDays)
	}
	return fmt.Sprintf("since %s", t.AnchorDate.Format("2006-01-02"))
}

// FormatTrendDigest formats the per-item trend overview into a Telegram message.
func FormatTrendDigest(items []collector.ItemTrend) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Market price digest</b> | %s\n\n", time.Now().Format("2006-01-02")))

	if len(items) == 0 {
		b.WriteString("No tracked items found.\n")
		return b.String()
	}

	for _, it := range items {
		latest, ok := it.Series.Latest()
		if !ok {
			b.WriteString(fmt.Sprintf("• %s: no valid price data\n", it.Series.ItemName))
			continue
		}
		if !it.HasTrend {
			b.WriteString(fmt.Sprintf("• %s: ৳%.2f/kg (%s) — not enough history for a trend\n",
				it.Series.ItemName, latest.Price, latest.Date.Format("2006-01-02")))
			continue
		}
		b.WriteString(fmt.Sprintf("• %s: ৳%.2f/kg, %s %s\n",
			it.Series.ItemName, it.Trend.LatestPrice,
			FormatPercent(it.Trend.PercentChange), baselineLabel(it.Trend)))
	}
	return b.String()
}

// FormatItemDetail formats one item's recent history and trend.
func FormatItemDetail(it collector.ItemTrend) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🥬 <b>%s</b>\n\n", it.Series.ItemName))

	if len(it.Series.Points) == 0 {
		b.WriteString("No valid price data for this item.\n")
		return b.String()
	}

	// Most recent observations first, capped to keep the message short.
	const maxRows = 10
	points := it.Series.Points
	shown := len(points)
	if shown > maxRows {
		shown = maxRows
	}
	b.WriteString("📋 Recent prices:\n")
	for i := len(points) - 1; i >= len(points)-shown; i-- {
		b.WriteString(fmt.Sprintf("  %s — ৳%.2f/kg\n",
			points[i].Date.Format("2006-01-02"), points[i].Price))
	}

	if it.HasTrend {
		b.WriteString(fmt.Sprintf("\nTrend: %s %s\n",
			FormatPercent(it.Trend.PercentChange), baselineLabel(it.Trend)))
	} else {
		b.WriteString("\nNot enough history for a trend.\n")
	}
	return b.String()
}

// FormatComparison formats a two-point comparison.
func FormatComparison(itemName string, cmp model.Comparison) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧾 <b>%s</b> price difference\n\n", itemName))
	b.WriteString(fmt.Sprintf("%s: ৳%.2f/kg\n", cmp.AnchorDate.Format("2006-01-02"), cmp.AnchorPrice))
	b.WriteString(fmt.Sprintf("%s: ৳%.2f/kg\n", cmp.LatestDate.Format("2006-01-02"), cmp.LatestPrice))
	b.WriteString(fmt.Sprintf("Difference: %+.2f৳\n", cmp.Delta))
	return b.String()
}

// FormatListingPage formats one page of the product listing.
func FormatListingPage(page listing.Page) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🛒 <b>Products</b> — page %d/%d (%d total)\n\n",
		page.Page, page.TotalPages, page.TotalItems))

	if len(page.Items) == 0 {
		b.WriteString("No products on this page.\n")
		return b.String()
	}

	for _, e := range page.Items {
		when := "no valid prices"
		if !e.LatestDate.IsZero() {
			when = e.LatestDate.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("• %s @ %s: ৳%.2f/kg (%s)\n",
			e.Product.ItemName, e.Product.MarketName, e.LatestPrice, when))
	}
	return b.String()
}

// FormatAlert formats a watch alert for an item whose trend magnitude
// crossed the configured threshold.
func FormatAlert(it collector.ItemTrend, threshold float64) string {
	direction := "🔺 rising"
	if it.Trend.PercentChange < 0 {
		direction = "🔻 falling"
	}
	return fmt.Sprintf("⚠️ <b>Price alert: %s</b>\n\n%s %s (%s)\nLatest: ৳%.2f/kg on %s\nThreshold: %.1f%%",
		it.Series.ItemName, direction,
		FormatPercent(it.Trend.PercentChange), baselineLabel(it.Trend),
		it.Trend.LatestPrice, it.Trend.LatestDate.Format("2006-01-02"),
		threshold)
}
