package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend/internal/clients"
	intconfig "backend/internal/config"
	"backend/internal/gateway"
	router "backend/internal/http"
	"backend/internal/http/handlers"
	"backend/internal/lock"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	runs := repositories.CheckoutRunRepository{}
	if err := runs.EnsureSchema(); err != nil {
		log.Fatalf("failed to prepare checkout journal: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatalf("failed to connect to redis at %s: %v", env.RedisAddr, err)
	}
	cancelPing()
	defer rdb.Close()

	handlers.Configure(handlers.Deps{
		Env:      env,
		Bookings: clients.NewBookingClient(env.BookingAPIURL, env.ServiceKey),
		Payments: clients.NewPaymentClient(env.PaymentAPIURL, env.ServiceKey),
		Carts:    clients.NewCartClient(env.CartAPIURL, env.ServiceKey),
		Gateway: gateway.New(gateway.Config{
			KeyID:        env.GatewayKeyID,
			MerchantName: env.GatewayMerchant,
			Currency:     env.Currency,
			SessionTTL:   env.SessionTTL,
		}),
		Lock: lock.NewCheckoutLock(rdb, env.LockTTL),
		Runs: runs,
	})

	r := router.NewRouter(env)

	// WriteTimeout stays off: a checkout request legitimately blocks for as
	// long as its gateway sessions take to resolve.
	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
