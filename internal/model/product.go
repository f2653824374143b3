package model

// Status is the moderation state of a vendor submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// PriceEntry is one vendor-submitted price observation exactly as the
// market API delivers it. The date format is not guaranteed and the price
// may be a number or a string with currency symbols and units attached;
// neither field may be used before passing through the normalizer.
type PriceEntry struct {
	Date  string      `json:"date"`
	Price interface{} `json:"price"`
}

// Product is a vendor-submitted market item with its raw price history.
// The engine only ever reads products; status transitions and new price
// submissions happen upstream.
type Product struct {
	ID          string       `json:"_id"`
	ItemName    string       `json:"itemName"`
	MarketName  string       `json:"marketName"`
	VendorName  string       `json:"vendorName"`
	Status      Status       `json:"status"`
	ImageURL    string       `json:"imageUrl"`
	Description string       `json:"description"`
	Prices      []PriceEntry `json:"prices"`
}

// Approved reports whether the product passed admin review.
func (p *Product) Approved() bool { return p.Status == StatusApproved }
