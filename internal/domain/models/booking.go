package models

import "encoding/json"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingPartiallyPaid  BookingStatus = "PARTIALLY_PAID"
	BookingFullyPaid      BookingStatus = "FULLY_PAID"
	BookingCancelled      BookingStatus = "CANCELLED"
)

// Booking is created from a CartItem at checkout time by the booking backend.
// Invariant: 0 <= AmountPaid <= TotalAmount; the backend owns persistence.
type Booking struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	PackageID     int64           `json:"package_id"`
	PackageName   string          `json:"package_name"`
	EventDate     string          `json:"event_date"`
	Location      string          `json:"location"`
	Guests        int             `json:"guests"`
	Customization json.RawMessage `json:"customization,omitempty"`
	TotalAmount   int64           `json:"total_amount"`
	PartialAmount int64           `json:"partial_amount"` // amount due now, fixed at creation
	AmountPaid    int64           `json:"amount_paid"`
	Status        BookingStatus   `json:"status"`
}

// CreateBookingInput is the request payload for the booking backend. The
// backend computes TotalAmount from package pricing and derives PartialAmount
// from the payment percentage.
type CreateBookingInput struct {
	UserID            int64           `json:"user_id"`
	PackageID         int64           `json:"package_id"`
	EventDate         string          `json:"event_date"`
	Location          string          `json:"location"`
	Guests            int             `json:"guests"`
	Customization     json.RawMessage `json:"customization,omitempty"`
	PaymentPercentage float64         `json:"payment_percentage"`
}
