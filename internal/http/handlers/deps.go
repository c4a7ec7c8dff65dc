package handlers

import (
	intconfig "backend/internal/config"
	"backend/internal/gateway"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps holds the long-lived collaborators handlers build services from.
// Configured once at boot, before the server starts accepting requests.
type Deps struct {
	Env      intconfig.Env
	Bookings services.BookingBackend
	Payments services.PaymentBackend
	Carts    services.CartBackend
	Gateway  *gateway.Adapter
	Lock     services.Locker
	Runs     repositories.CheckoutRunRepository
}

var deps Deps

func Configure(d Deps) {
	deps = d
}

func cartService(c *gin.Context) services.CartService {
	return services.CartService{
		Cart:      deps.Carts,
		RequestID: middleware.GetRequestID(c),
	}
}

func checkoutService(c *gin.Context) services.CheckoutService {
	return services.CheckoutService{
		Bookings:  deps.Bookings,
		Payments:  deps.Payments,
		Gateway:   deps.Gateway,
		CartSvc:   cartService(c),
		Runs:      deps.Runs,
		Lock:      deps.Lock,
		RequestID: middleware.GetRequestID(c),
	}
}

func receiptService(c *gin.Context) services.ReceiptService {
	return services.ReceiptService{
		Bookings:     deps.Bookings,
		Payments:     deps.Payments,
		MerchantName: deps.Env.GatewayMerchant,
		Currency:     deps.Env.Currency,
		RequestID:    middleware.GetRequestID(c),
	}
}
