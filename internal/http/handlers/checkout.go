package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/gateway"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	PaymentPercentage float64           `json:"payment_percentage"`
	Payer             gateway.PayerInfo `json:"payer"`
}

// Checkout runs the full sequential cart checkout. The call blocks until every
// item's gateway session resolves, or the first failure.
func Checkout(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	var req checkoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	bookings, err := checkoutService(c).Execute(c.Request.Context(), userID, req.PaymentPercentage, req.Payer)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "checkout completed",
		"bookings": bookings,
	})
}

type payRemainingRequest struct {
	Payer gateway.PayerInfo `json:"payer"`
}

// PayRemaining settles the outstanding balance of one booking.
func PayRemaining(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", err)
		return
	}
	var req payRemainingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := checkoutService(c).PayRemaining(c.Request.Context(), userID, bookingID, req.Payer)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "payment completed",
		"booking": booking,
	})
}

// respondCheckoutError distinguishes a user-dismissed session (a quiet 200,
// nothing to alarm anyone about) from real failures, and annotates multi-item
// aborts with how far the run got.
func respondCheckoutError(c *gin.Context, err error) {
	if ce, ok := domain.AsCheckoutError(err); ok {
		if domain.IsCheckoutCancelled(ce.Err) {
			c.JSON(http.StatusOK, gin.H{
				"cancelled":        true,
				"message":          "checkout cancelled",
				"item":             ce.ItemIndex,
				"of":               ce.ItemCount,
				"bookings_created": ce.BookingsCreated,
				"bookings_paid":    ce.BookingsPaid,
			})
			return
		}
		status, code := checkoutFailureStatus(ce.Err)
		c.JSON(status, gin.H{
			"error":            ce.Error(),
			"code":             code,
			"step":             string(ce.Step),
			"item":             ce.ItemIndex,
			"of":               ce.ItemCount,
			"bookings_created": ce.BookingsCreated,
			"bookings_paid":    ce.BookingsPaid,
			"retryable":        true,
			"request_id":       middleware.GetRequestID(c),
		})
		return
	}
	if domain.IsCheckoutCancelled(err) {
		c.JSON(http.StatusOK, gin.H{"cancelled": true, "message": "checkout cancelled"})
		return
	}
	RespondDomainError(c, err)
}

func checkoutFailureStatus(cause error) (int, string) {
	switch {
	case domain.IsVerification(cause):
		return http.StatusUnprocessableEntity, "verification_failed"
	case domain.IsOrderCreation(cause):
		return http.StatusBadGateway, "order_creation_failed"
	case domain.IsNetwork(cause):
		return http.StatusBadGateway, "network_error"
	case domain.IsValidation(cause):
		return http.StatusBadRequest, "validation_error"
	default:
		return http.StatusBadGateway, "checkout_failed"
	}
}
