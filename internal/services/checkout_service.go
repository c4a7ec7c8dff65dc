package services

import (
	"context"
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/gateway"
	"backend/internal/utils"

	"github.com/google/uuid"
)

// BookingBackend creates and reads bookings; it owns totals and the partial
// amount derivation.
type BookingBackend interface {
	CreateBooking(ctx context.Context, in models.CreateBookingInput) (models.Booking, error)
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
}

// PaymentBackend owns payment orders and signature verification.
type PaymentBackend interface {
	CreatePartialOrder(ctx context.Context, bookingID, amount int64) (models.PaymentOrder, error)
	CreateFullOrder(ctx context.Context, bookingID int64) (models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, bookingID int64, paymentID, orderID, signature string) (models.Booking, error)
	ListPayments(ctx context.Context, bookingID int64) ([]models.Payment, error)
}

// GatewayAdapter opens one external checkout session and suspends until it
// resolves.
type GatewayAdapter interface {
	OpenCheckout(ctx context.Context, req gateway.CheckoutRequest) (gateway.CheckoutResult, error)
}

// RunJournal records checkout runs and their per-item progress.
type RunJournal interface {
	CreateRun(run models.CheckoutRun) error
	FinishRun(runID, status, failedStep string, failedItem int) error
	AddItem(item models.CheckoutRunItem) error
	UpdateItemState(runID string, itemIndex int, state string, bookingID, amountDue, amountPaid int64, lastError string) error
}

// Locker is the explicit checkout-in-progress guard.
type Locker interface {
	Acquire(ctx context.Context, userID int64, token string) error
	Release(ctx context.Context, userID int64, token string) error
}

// CheckoutService converts the current cart into one advance payment per item
// and drives the single-booking pay-remaining variant. Items are processed
// strictly in cart order, one gateway session at a time, so partial-failure
// attribution stays stable.
type CheckoutService struct {
	Bookings  BookingBackend
	Payments  PaymentBackend
	Gateway   GatewayAdapter
	CartSvc   CartService
	Runs      RunJournal
	Lock      Locker
	RequestID string
}

// Execute runs the full multi-item checkout with one caller-chosen advance
// percentage applied uniformly. Any failure aborts the whole run; bookings
// already created for earlier items are not rolled back, they stay journaled
// as orphaned/pending-payment. The cart is cleared only on full success.
func (s CheckoutService) Execute(ctx context.Context, userID int64, percentage float64, payer gateway.PayerInfo) ([]models.Booking, error) {
	if !domain.ValidPercentage(percentage) {
		return nil, domain.ValidationError{
			Field: "payment_percentage",
			Msg:   fmt.Sprintf("must be between %d and %d", domain.MinPaymentPercentage, domain.MaxPaymentPercentage),
		}
	}

	runID := uuid.NewString()
	if err := s.Lock.Acquire(ctx, userID, runID); err != nil {
		return nil, err
	}
	// Release with a fresh context so a cancelled checkout still frees the lock.
	defer func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Lock.Release(relCtx, userID, runID); err != nil {
			utils.LogEvent(s.RequestID, "checkout", "unlock", "release failed: "+err.Error())
		}
	}()

	cart, err := s.CartSvc.Refresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.ItemCount() == 0 {
		return nil, domain.EmptyCartError{}
	}

	s.journalRunStart(models.CheckoutRun{
		ID:         runID,
		UserID:     userID,
		Kind:       models.RunKindFull,
		Percentage: percentage,
		Status:     models.RunRunning,
		CreatedAt:  utils.NowUTC(),
	})

	count := cart.ItemCount()
	confirmed := make([]models.Booking, 0, count)
	created, paid := 0, 0

	for i, item := range cart.Items {
		idx := i + 1
		s.journalItem(models.CheckoutRunItem{
			RunID:     runID,
			ItemIndex: idx,
			PackageID: item.PackageID,
			AmountDue: 0,
			State:     models.ItemPending,
		})

		booking, err := s.Bookings.CreateBooking(ctx, models.CreateBookingInput{
			UserID:            userID,
			PackageID:         item.PackageID,
			EventDate:         item.EventDate,
			Location:          item.Location,
			Guests:            item.Guests,
			Customization:     item.Customization,
			PaymentPercentage: percentage,
		})
		if err != nil {
			return nil, s.abort(runID, idx, count, domain.StepCreateBooking, err, created, paid, 0)
		}
		created++
		s.journalItemState(runID, idx, models.ItemBookingCreated, booking.ID, booking.PartialAmount, 0, "")

		order, err := s.Payments.CreatePartialOrder(ctx, booking.ID, booking.PartialAmount)
		if err != nil {
			return nil, s.abort(runID, idx, count, domain.StepCreateOrder, err, created, paid, booking.ID)
		}
		s.journalItemState(runID, idx, models.ItemOrderCreated, booking.ID, 0, 0, "")

		res, err := s.Gateway.OpenCheckout(ctx, gateway.CheckoutRequest{
			UserID:      userID,
			OrderID:     order.OrderID,
			Amount:      order.Amount,
			Currency:    order.Currency,
			Description: fmt.Sprintf("Advance for %s on %s (item %d of %d)", item.PackageName, item.EventDate, idx, count),
			Payer:       payer,
		})
		if err != nil {
			return nil, s.abort(runID, idx, count, domain.StepGateway, err, created, paid, booking.ID)
		}
		s.journalItemState(runID, idx, models.ItemGatewayResolved, booking.ID, 0, 0, "")

		verified, err := s.Payments.VerifyPayment(ctx, booking.ID, res.PaymentID, res.OrderID, res.Signature)
		if err != nil {
			return nil, s.abort(runID, idx, count, domain.StepVerify, err, created, paid, booking.ID)
		}
		paid++
		s.journalItemState(runID, idx, models.ItemVerified, verified.ID, 0, verified.AmountPaid, "")
		confirmed = append(confirmed, verified)
	}

	if err := s.CartSvc.Clear(ctx, userID); err != nil {
		// Payments are settled; a stale cart is an inconvenience, not a failure.
		utils.LogEvent(s.RequestID, "checkout", "clear_cart", "failed after successful run: "+err.Error())
	}
	s.journalRunFinish(runID, models.RunCompleted, "", 0)
	utils.LogEvent(s.RequestID, "checkout", "execute", fmt.Sprintf("run=%s user_id=%d items=%d completed", runID, userID, count))
	return confirmed, nil
}

// PayRemaining settles the outstanding balance of one pre-existing booking:
// order for the remaining amount, one gateway session, backend verification.
func (s CheckoutService) PayRemaining(ctx context.Context, userID, bookingID int64, payer gateway.PayerInfo) (models.Booking, error) {
	runID := uuid.NewString()
	if err := s.Lock.Acquire(ctx, userID, runID); err != nil {
		return models.Booking{}, err
	}
	defer func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Lock.Release(relCtx, userID, runID); err != nil {
			utils.LogEvent(s.RequestID, "checkout", "unlock", "release failed: "+err.Error())
		}
	}()

	booking, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if err := ensureBookingOwner(booking, userID); err != nil {
		return models.Booking{}, err
	}

	payments, err := s.Payments.ListPayments(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	summary := domain.Summarize(booking, payments)
	if summary.RemainingAmount == 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking", Msg: "booking is already fully paid"}
	}

	s.journalRunStart(models.CheckoutRun{
		ID:        runID,
		UserID:    userID,
		Kind:      models.RunKindRemainder,
		Status:    models.RunRunning,
		CreatedAt: utils.NowUTC(),
	})
	s.journalItem(models.CheckoutRunItem{
		RunID:     runID,
		ItemIndex: 1,
		PackageID: booking.PackageID,
		BookingID: bookingID,
		AmountDue: summary.RemainingAmount,
		State:     models.ItemBookingCreated,
	})

	order, err := s.Payments.CreateFullOrder(ctx, bookingID)
	if err != nil {
		return models.Booking{}, s.abortRemainder(runID, domain.StepCreateOrder, err, bookingID)
	}
	s.journalItemState(runID, 1, models.ItemOrderCreated, bookingID, 0, 0, "")

	res, err := s.Gateway.OpenCheckout(ctx, gateway.CheckoutRequest{
		UserID:      userID,
		OrderID:     order.OrderID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Description: fmt.Sprintf("Balance payment for booking #%d", bookingID),
		Payer:       payer,
	})
	if err != nil {
		return models.Booking{}, s.abortRemainder(runID, domain.StepGateway, err, bookingID)
	}
	s.journalItemState(runID, 1, models.ItemGatewayResolved, bookingID, 0, 0, "")

	verified, err := s.Payments.VerifyPayment(ctx, bookingID, res.PaymentID, res.OrderID, res.Signature)
	if err != nil {
		return models.Booking{}, s.abortRemainder(runID, domain.StepVerify, err, bookingID)
	}
	s.journalItemState(runID, 1, models.ItemVerified, bookingID, 0, verified.AmountPaid, "")
	s.journalRunFinish(runID, models.RunCompleted, "", 0)
	utils.LogEvent(s.RequestID, "checkout", "pay_remaining", fmt.Sprintf("run=%s booking_id=%d settled", runID, bookingID))
	return verified, nil
}

// BookingSummary is the read-only payment state of one booking, recomputed on
// every call. Scoped to the requesting user like every booking read.
func (s CheckoutService) BookingSummary(ctx context.Context, userID, bookingID int64) (models.PaymentSummary, error) {
	booking, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return models.PaymentSummary{}, err
	}
	if err := ensureBookingOwner(booking, userID); err != nil {
		return models.PaymentSummary{}, err
	}
	payments, err := s.Payments.ListPayments(ctx, bookingID)
	if err != nil {
		return models.PaymentSummary{}, err
	}
	return domain.Summarize(booking, payments), nil
}

// ensureBookingOwner hides other users' bookings behind NotFoundError rather
// than leaking their existence with a 403. A zero UserID means the backend
// did not echo the owner; those responses are trusted as-is.
func ensureBookingOwner(b models.Booking, userID int64) error {
	if b.UserID != 0 && b.UserID != userID {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// abort finalizes a failed multi-item run. A booking that exists but was never
// verified is journaled as ORPHANED so the no-rollback gap stays inspectable.
func (s CheckoutService) abort(runID string, idx, count int, step domain.CheckoutStep, cause error, created, paid int, bookingID int64) error {
	state := models.ItemFailed
	if bookingID != 0 {
		state = models.ItemOrphaned
	}
	s.journalItemState(runID, idx, state, bookingID, 0, 0, cause.Error())

	status := models.RunFailed
	if domain.IsCheckoutCancelled(cause) {
		status = models.RunCancelled
	}
	s.journalRunFinish(runID, status, string(step), idx)

	utils.LogEvent(s.RequestID, "checkout", "abort",
		fmt.Sprintf("run=%s item=%d/%d step=%s created=%d paid=%d cause=%v", runID, idx, count, step, created, paid, cause))

	return domain.CheckoutError{
		ItemIndex:       idx,
		ItemCount:       count,
		Step:            step,
		BookingsCreated: created,
		BookingsPaid:    paid,
		Err:             cause,
	}
}

func (s CheckoutService) abortRemainder(runID string, step domain.CheckoutStep, cause error, bookingID int64) error {
	// The booking pre-exists, so a failed remainder run orphans nothing.
	s.journalItemState(runID, 1, models.ItemFailed, bookingID, 0, 0, cause.Error())
	status := models.RunFailed
	if domain.IsCheckoutCancelled(cause) {
		status = models.RunCancelled
	}
	s.journalRunFinish(runID, status, string(step), 1)
	utils.LogEvent(s.RequestID, "checkout", "abort",
		fmt.Sprintf("run=%s booking_id=%d step=%s cause=%v", runID, bookingID, step, cause))
	return cause
}

// Journal writes must never fail a run that is otherwise progressing; they
// log and move on.
func (s CheckoutService) journalRunStart(run models.CheckoutRun) {
	if s.Runs == nil {
		return
	}
	if err := s.Runs.CreateRun(run); err != nil {
		utils.LogEvent(s.RequestID, "checkout", "journal", "create run failed: "+err.Error())
	}
}

func (s CheckoutService) journalRunFinish(runID, status, failedStep string, failedItem int) {
	if s.Runs == nil {
		return
	}
	if err := s.Runs.FinishRun(runID, status, failedStep, failedItem); err != nil {
		utils.LogEvent(s.RequestID, "checkout", "journal", "finish run failed: "+err.Error())
	}
}

func (s CheckoutService) journalItem(item models.CheckoutRunItem) {
	if s.Runs == nil {
		return
	}
	if err := s.Runs.AddItem(item); err != nil {
		utils.LogEvent(s.RequestID, "checkout", "journal", "add item failed: "+err.Error())
	}
}

func (s CheckoutService) journalItemState(runID string, idx int, state string, bookingID, amountDue, amountPaid int64, lastError string) {
	if s.Runs == nil {
		return
	}
	if err := s.Runs.UpdateItemState(runID, idx, state, bookingID, amountDue, amountPaid, lastError); err != nil {
		utils.LogEvent(s.RequestID, "checkout", "journal", "update item failed: "+err.Error())
	}
}
