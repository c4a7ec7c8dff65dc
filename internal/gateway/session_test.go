package gateway

import (
	"context"
	"testing"
	"time"

	"backend/internal/domain"
)

func testAdapter(ttl time.Duration) *Adapter {
	return New(Config{
		KeyID:        "key_test",
		MerchantName: "Evento",
		Currency:     "INR",
		SessionTTL:   ttl,
	})
}

func TestOpenCheckoutResolves(t *testing.T) {
	a := testAdapter(time.Minute)

	go func() {
		// Wait for the session to appear, then resolve it like the storefront.
		for i := 0; i < 100; i++ {
			if _, ok := a.Current(42); ok {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		if err := a.Resolve(42, "order_1", CheckoutResult{PaymentID: "pay_1", OrderID: "order_1", Signature: "sig"}); err != nil {
			t.Errorf("Resolve error: %v", err)
		}
	}()

	res, err := a.OpenCheckout(context.Background(), CheckoutRequest{
		UserID:  42,
		OrderID: "order_1",
		Amount:  15000,
	})
	if err != nil {
		t.Fatalf("OpenCheckout error: %v", err)
	}
	if res.PaymentID != "pay_1" || res.Signature != "sig" {
		t.Errorf("unexpected result: %+v", res)
	}

	// Resolved sessions are gone; a second callback must not find it.
	if err := a.Resolve(42, "order_1", CheckoutResult{}); !domain.IsNotFound(err) {
		t.Errorf("second Resolve err = %v, want not found", err)
	}
	if _, ok := a.Current(42); ok {
		t.Error("Current still reports a session after resolution")
	}
}

func TestOpenCheckoutDismissal(t *testing.T) {
	a := testAdapter(time.Minute)

	go func() {
		for i := 0; i < 100; i++ {
			if _, ok := a.Current(42); ok {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		if err := a.Dismiss(42, "order_2"); err != nil {
			t.Errorf("Dismiss error: %v", err)
		}
	}()

	_, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 42, OrderID: "order_2", Amount: 100})
	if !domain.IsCheckoutCancelled(err) {
		t.Fatalf("err = %v, want cancellation", err)
	}
}

func TestOpenCheckoutExpiryIsDismissal(t *testing.T) {
	a := testAdapter(30 * time.Millisecond)

	start := time.Now()
	_, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 42, OrderID: "order_3", Amount: 100})
	if !domain.IsCheckoutCancelled(err) {
		t.Fatalf("err = %v, want cancellation", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("expiry took far longer than the session TTL")
	}
	if _, ok := a.Current(42); ok {
		t.Error("expired session still visible")
	}
}

func TestOpenCheckoutContextCancel(t *testing.T) {
	a := testAdapter(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := a.OpenCheckout(ctx, CheckoutRequest{UserID: 42, OrderID: "order_4", Amount: 100})
		errc <- err
	}()

	for i := 0; i < 100; i++ {
		if _, ok := a.Current(42); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errc:
		if !domain.IsCheckoutCancelled(err) {
			t.Fatalf("err = %v, want cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OpenCheckout did not return after context cancel")
	}
}

func TestDescriptorUsesMinorUnits(t *testing.T) {
	a := testAdapter(time.Minute)

	go func() {
		for i := 0; i < 100; i++ {
			if desc, ok := a.Current(7); ok {
				if desc.Amount != 1500000 { // 15000 rupees in paise
					t.Errorf("descriptor amount = %d, want 1500000", desc.Amount)
				}
				if desc.KeyID != "key_test" || desc.Merchant != "Evento" || desc.Currency != "INR" {
					t.Errorf("unexpected descriptor: %+v", desc)
				}
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		a.Dismiss(7, "order_5")
	}()

	a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 7, OrderID: "order_5", Amount: 15000})
}

func TestResolveAndDismissRequireSessionOwner(t *testing.T) {
	a := testAdapter(time.Minute)

	go func() {
		for i := 0; i < 100; i++ {
			if _, ok := a.Current(42); ok {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}

		// Another signed-in user who learned the order id must get 404, and
		// the session must keep waiting for its owner.
		if err := a.Dismiss(7, "order_6"); !domain.IsNotFound(err) {
			t.Errorf("foreign Dismiss err = %v, want not found", err)
		}
		if err := a.Resolve(7, "order_6", CheckoutResult{PaymentID: "pay_x", OrderID: "order_6", Signature: "forged"}); !domain.IsNotFound(err) {
			t.Errorf("foreign Resolve err = %v, want not found", err)
		}
		if _, ok := a.Current(42); !ok {
			t.Error("session vanished after foreign callbacks")
		}

		if err := a.Dismiss(42, "order_6"); err != nil {
			t.Errorf("owner Dismiss error: %v", err)
		}
	}()

	_, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 42, OrderID: "order_6", Amount: 100})
	if !domain.IsCheckoutCancelled(err) {
		t.Fatalf("err = %v, want owner-initiated cancellation", err)
	}
}

func TestOpenCheckoutValidation(t *testing.T) {
	a := testAdapter(time.Minute)

	if _, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 1, Amount: 100}); !domain.IsValidation(err) {
		t.Errorf("missing order id: err = %v, want validation error", err)
	}
	if _, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 1, OrderID: "o", Amount: 0}); !domain.IsValidation(err) {
		t.Errorf("zero amount: err = %v, want validation error", err)
	}
}

func TestMissingKeyFailsEverySession(t *testing.T) {
	a := New(Config{})
	if _, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 1, OrderID: "o", Amount: 100}); !domain.IsInternal(err) {
		t.Errorf("err = %v, want internal error for unconfigured gateway", err)
	}
	// Config loading is once-only; the failure repeats.
	if _, err := a.OpenCheckout(context.Background(), CheckoutRequest{UserID: 1, OrderID: "o", Amount: 100}); !domain.IsInternal(err) {
		t.Errorf("second call err = %v, want same internal error", err)
	}
}
