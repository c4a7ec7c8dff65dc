package clients

import (
	"context"
	"fmt"
	"net/http"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// PaymentClient talks to the payment backend, which owns order creation and
// signature verification. A gateway "success" callback is never trusted until
// VerifyPayment confirms it here.
type PaymentClient struct {
	api apiClient
}

func NewPaymentClient(baseURL, serviceKey string) *PaymentClient {
	return &PaymentClient{api: newAPIClient(baseURL, serviceKey)}
}

type createOrderRequest struct {
	BookingID int64 `json:"booking_id"`
	Amount    int64 `json:"amount,omitempty"`
}

func (c *PaymentClient) CreatePartialOrder(ctx context.Context, bookingID, amount int64) (models.PaymentOrder, error) {
	var out models.PaymentOrder
	err := c.api.doJSON(ctx, http.MethodPost, "/orders/partial", createOrderRequest{BookingID: bookingID, Amount: amount}, &out)
	if err != nil {
		if domain.IsValidation(err) || domain.IsNotFound(err) {
			return models.PaymentOrder{}, err
		}
		return models.PaymentOrder{}, domain.OrderCreationError{BookingID: bookingID, Err: err}
	}
	return out, nil
}

// CreateFullOrder creates an order for whatever balance remains on the
// booking. The backend computes the amount as totalAmount - amountPaid, with
// no second rounding pass.
func (c *PaymentClient) CreateFullOrder(ctx context.Context, bookingID int64) (models.PaymentOrder, error) {
	var out models.PaymentOrder
	err := c.api.doJSON(ctx, http.MethodPost, "/orders/full", createOrderRequest{BookingID: bookingID}, &out)
	if err != nil {
		if domain.IsValidation(err) || domain.IsNotFound(err) {
			return models.PaymentOrder{}, err
		}
		return models.PaymentOrder{}, domain.OrderCreationError{BookingID: bookingID, Err: err}
	}
	return out, nil
}

type verifyRequest struct {
	BookingID int64  `json:"booking_id"`
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Signature string `json:"signature"`
}

type verifyResponse struct {
	Success bool           `json:"success"`
	Booking models.Booking `json:"booking"`
}

// VerifyPayment asks the backend to validate the gateway signature. Any
// rejection surfaces as VerificationError; the caller must not advance paid
// state on that path.
func (c *PaymentClient) VerifyPayment(ctx context.Context, bookingID int64, paymentID, orderID, signature string) (models.Booking, error) {
	req := verifyRequest{
		BookingID: bookingID,
		PaymentID: paymentID,
		OrderID:   orderID,
		Signature: signature,
	}
	var out verifyResponse
	err := c.api.doJSON(ctx, http.MethodPost, "/payments/verify", req, &out)
	if err != nil {
		if domain.IsValidation(err) || domain.IsConflict(err) {
			return models.Booking{}, domain.VerificationError{BookingID: bookingID, Err: err}
		}
		return models.Booking{}, err
	}
	if !out.Success {
		return models.Booking{}, domain.VerificationError{
			BookingID: bookingID,
			Err:       fmt.Errorf("backend rejected signature for order %s", orderID),
		}
	}
	return out.Booking, nil
}

func (c *PaymentClient) ListPayments(ctx context.Context, bookingID int64) ([]models.Payment, error) {
	var out struct {
		Payments []models.Payment `json:"payments"`
	}
	if err := c.api.getJSON(ctx, fmt.Sprintf("/bookings/%d/payments", bookingID), &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}
