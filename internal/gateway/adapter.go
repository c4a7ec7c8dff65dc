package gateway

import (
	"fmt"
	"sync"
	"time"

	"backend/internal/utils"
)

// Config carries the checkout credentials handed to the gateway SDK.
type Config struct {
	KeyID        string
	MerchantName string
	Currency     string
	SessionTTL   time.Duration
}

// Adapter presents one external checkout session per payment order and
// normalizes its outcome. The checkout itself happens in the gateway's own
// surface; the adapter suspends the caller until that surface reports back.
type Adapter struct {
	cfg Config

	loadOnce sync.Once
	loadErr  error

	mu       sync.Mutex
	sessions map[string]*session // keyed by gateway order id
	byUser   map[int64]string
}

func New(cfg Config) *Adapter {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 10 * time.Minute
	}
	return &Adapter{
		cfg:      cfg,
		sessions: map[string]*session{},
		byUser:   map[int64]string{},
	}
}

// load validates the gateway credentials exactly once per process lifetime,
// before the first session. Re-checking per call would be wasteful and can
// race; a missing key fails every session the same way.
func (a *Adapter) load() error {
	a.loadOnce.Do(func() {
		if a.cfg.KeyID == "" {
			a.loadErr = fmt.Errorf("gateway key id is not configured")
			return
		}
		if a.cfg.Currency == "" {
			a.cfg.Currency = "INR"
		}
		utils.LogEvent("", "gateway", "load", "checkout config loaded for key "+a.cfg.KeyID)
	})
	return a.loadErr
}
