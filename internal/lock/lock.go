package lock

import (
	"context"
	"fmt"
	"time"

	"backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// CheckoutLock is the explicit checkout-in-progress guard: one active run per
// user, enforced in redis so it holds across instances. Re-invoking execute
// while a run is in flight is a conflict, not undefined behavior.
type CheckoutLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutLock(client *redis.Client, ttl time.Duration) *CheckoutLock {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CheckoutLock{client: client, ttl: ttl}
}

func lockKey(userID int64) string {
	return fmt.Sprintf("checkout:lock:%d", userID)
}

// Acquire takes the per-user lock with the run id as token. The TTL bounds
// how long a crashed run can block its user.
func (l *CheckoutLock) Acquire(ctx context.Context, userID int64, token string) error {
	ok, err := l.client.SetNX(ctx, lockKey(userID), token, l.ttl).Result()
	if err != nil {
		return domain.InternalError{Msg: "failed to acquire checkout lock", Err: err}
	}
	if !ok {
		return domain.ConflictError{Resource: "checkout", Msg: "a checkout is already in progress for this user"}
	}
	return nil
}

// Release deletes the lock only when it still belongs to this run. After a
// TTL expiry another run may hold the key; that one is left alone.
func (l *CheckoutLock) Release(ctx context.Context, userID int64, token string) error {
	key := lockKey(userID)
	cur, err := l.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return domain.InternalError{Msg: "failed to read checkout lock", Err: err}
	}
	if cur != token {
		return nil
	}
	return l.client.Del(ctx, key).Err()
}
