package handlers

import (
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondDomain(c *gin.Context, status int, code, message string, retryable bool) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"retryable":  retryable,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Cancellation never
// reaches this function; the checkout handlers treat it as a non-error.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsEmptyCart(err):
		respondDomain(c, http.StatusBadRequest, "empty_cart", err.Error(), false)
	case domain.IsValidation(err):
		respondDomain(c, http.StatusBadRequest, "validation_error", err.Error(), false)
	case domain.IsNotFound(err):
		respondDomain(c, http.StatusNotFound, "not_found", err.Error(), false)
	case domain.IsConflict(err):
		respondDomain(c, http.StatusConflict, "conflict", err.Error(), false)
	case domain.IsVerification(err):
		// The gateway said yes, the backend said no. Never paid.
		respondDomain(c, http.StatusUnprocessableEntity, "verification_failed", err.Error(), false)
	case domain.IsOrderCreation(err):
		respondDomain(c, http.StatusBadGateway, "order_creation_failed", err.Error(), true)
	case domain.IsNetwork(err):
		respondDomain(c, http.StatusBadGateway, "network_error", err.Error(), true)
	default:
		respondDomain(c, http.StatusInternalServerError, "internal_error", "something went wrong", false)
	}
}
