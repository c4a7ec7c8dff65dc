package lock

import (
	"context"
	"testing"
	"time"

	"backend/internal/domain"

	"github.com/go-redis/redismock/v9"
)

func TestAcquireAndRelease(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewCheckoutLock(client, 15*time.Minute)

	mock.ExpectSetNX("checkout:lock:42", "run-1", 15*time.Minute).SetVal(true)
	if err := l.Acquire(context.Background(), 42, "run-1"); err != nil {
		t.Fatalf("Acquire error: %v", err)
	}

	mock.ExpectGet("checkout:lock:42").SetVal("run-1")
	mock.ExpectDel("checkout:lock:42").SetVal(1)
	if err := l.Release(context.Background(), 42, "run-1"); err != nil {
		t.Fatalf("Release error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAcquireConflictWhileHeld(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewCheckoutLock(client, 15*time.Minute)

	mock.ExpectSetNX("checkout:lock:42", "run-2", 15*time.Minute).SetVal(false)
	err := l.Acquire(context.Background(), 42, "run-2")
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict error", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseLeavesForeignLockAlone(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewCheckoutLock(client, 15*time.Minute)

	// Lock expired and another run re-acquired it; no Del expected.
	mock.ExpectGet("checkout:lock:42").SetVal("run-other")
	if err := l.Release(context.Background(), 42, "run-1"); err != nil {
		t.Fatalf("Release error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseMissingLockIsNoop(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewCheckoutLock(client, 15*time.Minute)

	mock.ExpectGet("checkout:lock:42").RedisNil()
	if err := l.Release(context.Background(), 42, "run-1"); err != nil {
		t.Fatalf("Release error: %v", err)
	}
}
