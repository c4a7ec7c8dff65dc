package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr string

	BookingAPIURL string
	PaymentAPIURL string
	CartAPIURL    string
	ServiceKey    string

	GatewayKeyID    string
	GatewayMerchant string
	Currency        string
	SessionTTL      time.Duration

	JWTSecret       string
	OperatorKeyHash string

	CORSOrigins []string

	LockTTL time.Duration
}

func LoadEnv() Env {
	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "checkout_service"),

		RedisAddr: getenv("REDIS_ADDR", "127.0.0.1:6379"),

		BookingAPIURL: getenv("BOOKING_API_URL", "http://localhost:9001/api"),
		PaymentAPIURL: getenv("PAYMENT_API_URL", "http://localhost:9002/api"),
		CartAPIURL:    getenv("CART_API_URL", "http://localhost:9003/api"),
		ServiceKey:    strings.TrimSpace(os.Getenv("SERVICE_KEY")),

		GatewayKeyID:    strings.TrimSpace(os.Getenv("GATEWAY_KEY_ID")),
		GatewayMerchant: getenv("GATEWAY_MERCHANT_NAME", "Evento"),
		Currency:        getenv("CURRENCY", "INR"),
		SessionTTL:      getenvDuration("GATEWAY_SESSION_TTL", 10*time.Minute),

		JWTSecret:       getenv("JWT_SECRET", "super-secret-key-change-me"),
		OperatorKeyHash: strings.TrimSpace(os.Getenv("OPERATOR_KEY_HASH")),

		CORSOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		LockTTL: getenvDuration("CHECKOUT_LOCK_TTL", 15*time.Minute),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getenvList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
