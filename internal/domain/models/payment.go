package models

import "time"

type PaymentStatus string

const (
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentPending  PaymentStatus = "PENDING"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Payment is an immutable record of one attempted or settled transaction
// against a booking. A SUCCESS payment never changes afterwards.
type Payment struct {
	ID        int64         `json:"id"`
	BookingID int64         `json:"booking_id"`
	Amount    int64         `json:"amount"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	OrderID   string        `json:"order_id"`
	PaymentID string        `json:"payment_id"`
	Signature string        `json:"signature,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// PaymentOrder is the ephemeral gateway-side order bridging a booking and one
// checkout session. It is never stored by this service.
type PaymentOrder struct {
	OrderID   string `json:"order_id"`
	BookingID int64  `json:"booking_id"`
	Amount    int64  `json:"amount"` // whole currency units
	Currency  string `json:"currency"`
}

// PaymentSummary is derived on every fetch and never persisted.
type PaymentSummary struct {
	BookingID       int64         `json:"booking_id"`
	TotalAmount     int64         `json:"total_amount"`
	AmountPaid      int64         `json:"amount_paid"`
	RemainingAmount int64         `json:"remaining_amount"`
	PaymentStatus   BookingStatus `json:"payment_status"`
	PercentagePaid  float64       `json:"percentage_paid"`
	// Overpaid flags the transient backend race where settled payments exceed
	// the booking total. RemainingAmount is clamped at zero instead of going
	// negative; this surfaces the condition for operators.
	Overpaid bool `json:"overpaid,omitempty"`
}
