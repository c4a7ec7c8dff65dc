package models

import "encoding/json"

// CartItem is one pending, unbooked selection in a user's cart.
type CartItem struct {
	ID            int64           `json:"id"`
	PackageID     int64           `json:"package_id"`
	PackageName   string          `json:"package_name"`
	EventDate     string          `json:"event_date"` // YYYY-MM-DD
	Location      string          `json:"location"`
	Guests        int             `json:"guests"`
	BasePrice     int64           `json:"base_price"`
	PerGuestPrice int64           `json:"per_guest_price"`
	Customization json.RawMessage `json:"customization,omitempty"`
}

// ItemTotal is the full price of the selection before any advance split.
func (i CartItem) ItemTotal() int64 {
	return i.BasePrice + i.PerGuestPrice*int64(i.Guests)
}

// Cart is the ordered set of pending selections for one signed-in user.
type Cart struct {
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

func (c Cart) TotalAmount() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.ItemTotal()
	}
	return total
}

func (c Cart) ItemCount() int { return len(c.Items) }

// CartItemInput is the payload for adding a selection to the cart.
type CartItemInput struct {
	PackageID     int64           `json:"package_id"`
	EventDate     string          `json:"event_date"`
	Location      string          `json:"location"`
	Guests        int             `json:"guests"`
	Customization json.RawMessage `json:"customization,omitempty"`
}

// CartTotals is the arithmetic view of the cart used by the order review screen.
type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}
