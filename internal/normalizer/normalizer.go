package normalizer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"BazarPulse/internal/calendar"
	"BazarPulse/internal/model"
)

var nonPrice = regexp.MustCompile(`[^\d.]`)

// CleanPrice extracts a positive price from a vendor-supplied value, which
// may be a JSON number or a string carrying currency symbols and units
// ("৳ 35.50/kg"). Everything that is not a digit or decimal point is
// stripped before parsing. Zero, negative, and non-finite values are
// rejected. A minus sign ahead of the first digit marks the value negative
// even though stripping would otherwise flip it positive.
func CleanPrice(raw interface{}) (float64, bool) {
	var s string
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)

	first := strings.IndexAny(s, "0123456789")
	if first < 0 {
		return 0, false
	}
	if strings.Contains(s[:first], "-") {
		return 0, false
	}

	cleaned := nonPrice.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v <= 0 {
		return 0, false
	}
	return v, true
}

// Normalize validates one raw observation. ok is false when either field
// fails validation; the caller drops such observations silently and never
// treats them as fatal.
func Normalize(entry model.PriceEntry) (model.PricePoint, bool) {
	price, ok := CleanPrice(entry.Price)
	if !ok {
		return model.PricePoint{}, false
	}
	date, err := calendar.ParseDate(entry.Date)
	if err != nil {
		return model.PricePoint{}, false
	}
	return model.PricePoint{Date: date, Price: price}, true
}
