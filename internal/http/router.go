package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		authed := api.Group("")
		authed.Use(middleware.Auth(env.JWTSecret))
		{
			// Cart
			cart := authed.Group("/cart")
			cart.GET("", h.GetCart)
			cart.GET("/totals", h.CartTotals)
			cart.POST("/items", h.AddCartItem)
			cart.DELETE("/items/:itemId", h.RemoveCartItem)
			cart.DELETE("", h.ClearCart)

			// Checkout
			authed.POST("/checkout", h.Checkout)

			// Gateway session relay. The storefront polls the current session,
			// then posts the gateway's outcome back here.
			session := authed.Group("/payments/session")
			session.GET("", h.CurrentSession)
			session.POST("/complete", h.CompleteSession)
			session.POST("/dismiss", h.DismissSession)

			// Bookings (payment views)
			bookings := authed.Group("/bookings")
			bookings.GET("/:id/payment-summary", h.PaymentSummary)
			bookings.POST("/:id/pay-remaining", h.PayRemaining)
			bookings.GET("/:id/receipt", h.DownloadReceipt)
		}

		// Operator surface
		ops := api.Group("/checkout")
		ops.Use(middleware.OperatorKey(env.OperatorKeyHash))
		{
			ops.GET("/runs", h.ListRuns)
			ops.GET("/runs/:id", h.GetRun)
			ops.GET("/orphans", h.ListOrphans)
		}
	}

	h.SetRouter(r)
	return r
}
