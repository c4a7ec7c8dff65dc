package domain

import (
	"errors"
	"fmt"
)

// CheckoutStep identifies which stage of the checkout sequence an error belongs to.
type CheckoutStep string

const (
	StepCreateBooking CheckoutStep = "create_booking"
	StepCreateOrder   CheckoutStep = "create_order"
	StepGateway       CheckoutStep = "gateway_checkout"
	StepVerify        CheckoutStep = "verify_payment"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// EmptyCartError rejects a checkout attempt against a cart with no items.
type EmptyCartError struct{}

func (e EmptyCartError) Error() string { return "cart is empty" }

// NetworkError wraps transport-level failures talking to a collaborator.
// Safe to retry the failed call.
type NetworkError struct {
	Op  string
	Err error
}

func (e NetworkError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error { return e.Err }

// OrderCreationError marks a failed payment-order step. The booking it was
// meant to pay for already exists, so the caller may retry against it.
type OrderCreationError struct {
	BookingID int64
	Err       error
}

func (e OrderCreationError) Error() string {
	return fmt.Sprintf("failed to create payment order for booking %d: %v", e.BookingID, e.Err)
}

func (e OrderCreationError) Unwrap() error { return e.Err }

// CheckoutCancelledError reports a user-dismissed or expired gateway session.
// Not an error condition from the user's point of view; terminal for the item.
type CheckoutCancelledError struct {
	OrderID string
	Reason  string
}

func (e CheckoutCancelledError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("checkout cancelled (%s)", e.Reason)
	}
	return "checkout cancelled"
}

// VerificationError means the gateway reported success but the backend
// rejected the signature. Paid state must never advance on this path.
type VerificationError struct {
	BookingID int64
	Err       error
}

func (e VerificationError) Error() string {
	return fmt.Sprintf("payment verification failed for booking %d", e.BookingID)
}

func (e VerificationError) Unwrap() error { return e.Err }

// CheckoutError is the aggregate failure of a multi-item checkout run. It
// names the failing item, the step, and the cause, plus how far the run got.
// Bookings created for earlier items are not rolled back.
type CheckoutError struct {
	ItemIndex       int // 1-based
	ItemCount       int
	Step            CheckoutStep
	BookingsCreated int
	BookingsPaid    int
	Err             error
}

func (e CheckoutError) Error() string {
	return fmt.Sprintf("checkout failed at item %d of %d during %s: %v",
		e.ItemIndex, e.ItemCount, e.Step, e.Err)
}

func (e CheckoutError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsEmptyCart(err error) bool {
	var target EmptyCartError
	return errors.As(err, &target)
}

func IsNetwork(err error) bool {
	var target NetworkError
	return errors.As(err, &target)
}

func IsOrderCreation(err error) bool {
	var target OrderCreationError
	return errors.As(err, &target)
}

func IsCheckoutCancelled(err error) bool {
	var target CheckoutCancelledError
	return errors.As(err, &target)
}

func IsVerification(err error) bool {
	var target VerificationError
	return errors.As(err, &target)
}

func AsCheckoutError(err error) (CheckoutError, bool) {
	var target CheckoutError
	ok := errors.As(err, &target)
	return target, ok
}
