package gateway

import (
	"context"
	"time"

	"backend/internal/domain"
)

type PayerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutRequest opens one gateway session for one payment order. Amount is
// in whole currency units; conversion happens inside the adapter.
type CheckoutRequest struct {
	UserID      int64
	OrderID     string
	Amount      int64
	Currency    string
	Description string
	Payer       PayerInfo
}

// CheckoutDescriptor is what the storefront needs to open the gateway's
// checkout surface: the SDK constructor arguments, amount already in minor
// units.
type CheckoutDescriptor struct {
	KeyID       string    `json:"key"`
	OrderID     string    `json:"order_id"`
	Amount      int64     `json:"amount"` // minor units
	Currency    string    `json:"currency"`
	Merchant    string    `json:"name"`
	Description string    `json:"description"`
	Payer       PayerInfo `json:"prefill"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CheckoutResult is the normalized success callback of the gateway.
type CheckoutResult struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Signature string `json:"signature"`
}

type outcome struct {
	res CheckoutResult
	err error
}

type session struct {
	userID     int64
	descriptor CheckoutDescriptor
	done       chan outcome
}

// OpenCheckout registers a pending session and suspends until the gateway
// surface resolves it (Resolve), the user dismisses it (Dismiss), the caller's
// context ends, or the session expires. Expiry is treated as a dismissal since
// gateway checkout sessions time out on their own.
func (a *Adapter) OpenCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	if err := a.load(); err != nil {
		return CheckoutResult{}, domain.InternalError{Msg: "payment gateway unavailable", Err: err}
	}
	if req.OrderID == "" {
		return CheckoutResult{}, domain.ValidationError{Field: "order_id", Msg: "missing gateway order id"}
	}
	if req.Amount <= 0 {
		return CheckoutResult{}, domain.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}

	currency := req.Currency
	if currency == "" {
		currency = a.cfg.Currency
	}

	s := &session{
		userID: req.UserID,
		descriptor: CheckoutDescriptor{
			KeyID:       a.cfg.KeyID,
			OrderID:     req.OrderID,
			Amount:      toMinorUnits(req.Amount),
			Currency:    currency,
			Merchant:    a.cfg.MerchantName,
			Description: req.Description,
			Payer:       req.Payer,
			ExpiresAt:   time.Now().Add(a.cfg.SessionTTL),
		},
		done: make(chan outcome, 1),
	}

	a.mu.Lock()
	a.sessions[req.OrderID] = s
	a.byUser[req.UserID] = req.OrderID
	a.mu.Unlock()
	defer a.remove(req.OrderID)

	timer := time.NewTimer(a.cfg.SessionTTL)
	defer timer.Stop()

	select {
	case o := <-s.done:
		return o.res, o.err
	case <-ctx.Done():
		return CheckoutResult{}, domain.CheckoutCancelledError{OrderID: req.OrderID, Reason: "request cancelled"}
	case <-timer.C:
		return CheckoutResult{}, domain.CheckoutCancelledError{OrderID: req.OrderID, Reason: "session expired"}
	}
}

// Resolve delivers the gateway success callback into the waiting session.
// Only the user the session was opened for may resolve it.
func (a *Adapter) Resolve(userID int64, orderID string, res CheckoutResult) error {
	s, ok := a.take(userID, orderID)
	if !ok {
		return domain.NotFoundError{Resource: "checkout session"}
	}
	s.done <- outcome{res: res}
	return nil
}

// Dismiss reports that the user closed the checkout surface without paying.
// Only the session owner may dismiss; anyone else gets NotFoundError and the
// session keeps waiting.
func (a *Adapter) Dismiss(userID int64, orderID string) error {
	s, ok := a.take(userID, orderID)
	if !ok {
		return domain.NotFoundError{Resource: "checkout session"}
	}
	s.done <- outcome{err: domain.CheckoutCancelledError{OrderID: orderID, Reason: "dismissed by user"}}
	return nil
}

// Current returns the pending descriptor for a user, if any. The storefront
// polls this to open the modal for the session the orchestrator is waiting on.
func (a *Adapter) Current(userID int64) (CheckoutDescriptor, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	orderID, ok := a.byUser[userID]
	if !ok {
		return CheckoutDescriptor{}, false
	}
	s, ok := a.sessions[orderID]
	if !ok {
		return CheckoutDescriptor{}, false
	}
	return s.descriptor, true
}

// take removes the session so each one resolves at most once. A late Resolve
// or Dismiss after expiry gets NotFoundError, as does a caller who does not
// own the session; an unowned session stays registered.
func (a *Adapter) take(userID int64, orderID string) (*session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[orderID]
	if !ok || s.userID != userID {
		return nil, false
	}
	delete(a.sessions, orderID)
	if cur, ok := a.byUser[s.userID]; ok && cur == orderID {
		delete(a.byUser, s.userID)
	}
	return s, true
}

func (a *Adapter) remove(orderID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[orderID]
	if !ok {
		return
	}
	delete(a.sessions, orderID)
	if cur, ok := a.byUser[s.userID]; ok && cur == orderID {
		delete(a.byUser, s.userID)
	}
}
