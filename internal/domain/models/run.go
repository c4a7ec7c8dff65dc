package models

import "time"

const (
	RunKindFull      = "FULL"
	RunKindRemainder = "REMAINDER"
)

const (
	RunRunning   = "RUNNING"
	RunCompleted = "COMPLETED"
	RunFailed    = "FAILED"
	RunCancelled = "CANCELLED"
)

// Item states follow the checkout sequence. ORPHANED marks a booking that was
// created during a run but never verified because the sequence aborted.
const (
	ItemPending         = "PENDING"
	ItemBookingCreated  = "BOOKING_CREATED"
	ItemOrderCreated    = "ORDER_CREATED"
	ItemGatewayResolved = "GATEWAY_RESOLVED"
	ItemVerified        = "VERIFIED"
	ItemOrphaned        = "ORPHANED"
	ItemFailed          = "FAILED"
)

// CheckoutRun is the journal row for one orchestration attempt. The journal is
// the only local persistence this service owns; it exists so that bookings
// orphaned by a mid-sequence abort stay inspectable.
type CheckoutRun struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	Kind       string     `json:"kind"`
	Percentage float64    `json:"percentage"`
	Status     string     `json:"status"`
	FailedStep string     `json:"failed_step,omitempty"`
	FailedItem int        `json:"failed_item,omitempty"` // 1-based
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type CheckoutRunItem struct {
	RunID      string `json:"run_id"`
	ItemIndex  int    `json:"item_index"` // 1-based, cart order
	PackageID  int64  `json:"package_id"`
	BookingID  int64  `json:"booking_id,omitempty"`
	AmountDue  int64  `json:"amount_due"`
	AmountPaid int64  `json:"amount_paid"`
	State      string `json:"state"`
	LastError  string `json:"last_error,omitempty"`
}
