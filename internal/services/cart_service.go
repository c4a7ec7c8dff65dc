package services

import (
	"context"
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"
)

// Sales tax applied on the cart subtotal at review time. Booking totals are
// computed by the booking backend; this rate only feeds the cart view.
const taxRatePercent = 18

// CartBackend is the cart backend surface this service depends on.
type CartBackend interface {
	Get(ctx context.Context, userID int64) (models.Cart, error)
	AddItem(ctx context.Context, userID int64, in models.CartItemInput) (models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

// CartService is the authoritative client view of pending selections. It holds
// no business rules beyond arithmetic aggregation; every mutation is persisted
// through the cart backend.
type CartService struct {
	Cart      CartBackend
	RequestID string
}

func (s CartService) Get(ctx context.Context, userID int64) (models.Cart, error) {
	return s.Cart.Get(ctx, userID)
}

// Refresh re-fetches from the backend. The server is the source of truth; no
// optimistic state survives this call.
func (s CartService) Refresh(ctx context.Context, userID int64) (models.Cart, error) {
	return s.Cart.Get(ctx, userID)
}

func (s CartService) AddItem(ctx context.Context, userID int64, in models.CartItemInput) (models.CartItem, error) {
	if in.PackageID <= 0 {
		return models.CartItem{}, domain.ValidationError{Field: "package_id", Msg: "package id is required"}
	}
	if in.Guests <= 0 {
		return models.CartItem{}, domain.ValidationError{Field: "guests", Msg: "guest count must be positive"}
	}
	if _, err := utils.ParseDate(in.EventDate); err != nil {
		return models.CartItem{}, domain.ValidationError{Field: "event_date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	item, err := s.Cart.AddItem(ctx, userID, in)
	if err != nil {
		return models.CartItem{}, err
	}
	utils.LogEvent(s.RequestID, "cart", "add_item", fmt.Sprintf("user_id=%d package_id=%d", userID, in.PackageID))
	return item, nil
}

func (s CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if err := s.Cart.RemoveItem(ctx, userID, itemID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cart", "remove_item", fmt.Sprintf("user_id=%d item_id=%d", userID, itemID))
	return nil
}

// Totals computes subtotal, tax and total for the current cart. One rounding
// rule, applied once to the tax amount.
func (s CartService) Totals(ctx context.Context, userID int64) (models.CartTotals, error) {
	cart, err := s.Cart.Get(ctx, userID)
	if err != nil {
		return models.CartTotals{}, err
	}
	return computeTotals(cart), nil
}

func computeTotals(cart models.Cart) models.CartTotals {
	subtotal := cart.TotalAmount()
	tax := domain.PartialAmount(subtotal, taxRatePercent)
	return models.CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Clear empties the cart. Only called after a fully successful checkout or an
// explicit user request.
func (s CartService) Clear(ctx context.Context, userID int64) error {
	if err := s.Cart.Clear(ctx, userID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cart", "clear", fmt.Sprintf("user_id=%d", userID))
	return nil
}
