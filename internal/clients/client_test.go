package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

func TestDoJSONMapsBackendStatuses(t *testing.T) {
	cases := []struct {
		status int
		body   string
		check  func(error) bool
		name   string
	}{
		{http.StatusNotFound, `{"error":"booking"}`, domain.IsNotFound, "not found"},
		{http.StatusConflict, `{"error":"duplicate order"}`, domain.IsConflict, "conflict"},
		{http.StatusBadRequest, `{"error":"percentage out of range"}`, domain.IsValidation, "validation"},
		{http.StatusInternalServerError, `{"error":"boom"}`, domain.IsInternal, "internal"},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))
		c := newAPIClient(srv.URL, "")
		err := c.doJSON(context.Background(), http.MethodPost, "/x", nil, nil)
		if !tc.check(err) {
			t.Errorf("%s: err = %v, wrong mapping for status %d", tc.name, err, tc.status)
		}
		srv.Close()
	}
}

func TestDoJSONSendsServiceKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Service-Key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newAPIClient(srv.URL, "secret-key")
	if err := c.doJSON(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("doJSON error: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("X-Service-Key = %q, want secret-key", gotKey)
	}
}

func TestGetJSONRetriesTransportFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			// Drop the connection to force a transport error.
			hj, _ := w.(http.Hijacker)
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		w.Write([]byte(`{"payments":[]}`))
	}))
	defer srv.Close()

	c := &PaymentClient{api: newAPIClient(srv.URL, "")}
	payments, err := c.ListPayments(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListPayments error after retries: %v", err)
	}
	if payments == nil {
		t.Error("payments = nil, want empty slice")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("backend calls = %d, want 3", got)
	}
}

func TestCreatePartialOrderWrapsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"gateway unavailable"}`))
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, "")
	_, err := c.CreatePartialOrder(context.Background(), 7, 15000)
	if !domain.IsOrderCreation(err) {
		t.Fatalf("err = %v, want order creation error", err)
	}
}

func TestVerifyPaymentRejectionIsVerificationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid signature"}`))
	}))
	defer srv.Close()

	c := NewPaymentClient(srv.URL, "")
	_, err := c.VerifyPayment(context.Background(), 7, "pay_1", "order_1", "bad-sig")
	if !domain.IsVerification(err) {
		t.Fatalf("err = %v, want verification error", err)
	}
}

func TestCreateBookingRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":101,"user_id":42,"total_amount":50000,"partial_amount":15000,"status":"PENDING_PAYMENT"}`))
	}))
	defer srv.Close()

	c := NewBookingClient(srv.URL, "")
	b, err := c.CreateBooking(context.Background(), models.CreateBookingInput{
		UserID: 42, PackageID: 10, EventDate: "2026-10-01", Guests: 100, PaymentPercentage: 30,
	})
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	if b.ID != 101 || b.PartialAmount != 15000 {
		t.Errorf("unexpected booking: %+v", b)
	}
}
