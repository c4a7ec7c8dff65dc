package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/gateway"

	"github.com/gin-gonic/gin"
)

// CurrentSession lets the storefront poll for the checkout session awaiting
// payment for this user, if any.
func CurrentSession(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	desc, ok := deps.Gateway.Current(userID)
	if !ok {
		RespondError(c, http.StatusNotFound, "no checkout session in progress", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": desc})
}

type completeSessionRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// CompleteSession is the gateway success callback relayed by the storefront.
// It unblocks the checkout run waiting on this order. Only the session owner
// can complete it; a non-owner gets 404 as if the session did not exist.
func CompleteSession(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	var req completeSessionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		RespondError(c, http.StatusBadRequest, "order_id, payment_id and signature are required", nil)
		return
	}
	err := deps.Gateway.Resolve(userID, req.OrderID, gateway.CheckoutResult{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session completed"})
}

type dismissSessionRequest struct {
	OrderID string `json:"order_id"`
}

// DismissSession records that the user closed the payment window without
// paying; the waiting checkout run aborts as cancelled. Owner only.
func DismissSession(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	var req dismissSessionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.OrderID == "" {
		RespondError(c, http.StatusBadRequest, "order_id is required", nil)
		return
	}
	if err := deps.Gateway.Dismiss(userID, req.OrderID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session dismissed"})
}

// PaymentSummary returns the recomputed payment state of one booking.
func PaymentSummary(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", err)
		return
	}
	summary, err := checkoutService(c).BookingSummary(c.Request.Context(), userID, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// DownloadReceipt streams the PDF payment receipt for a booking.
func DownloadReceipt(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", err)
		return
	}
	pdf, filename, err := receiptService(c).GenerateReceipt(c.Request.Context(), userID, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
