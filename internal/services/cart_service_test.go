package services

import (
	"context"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

func TestCartTotalsAppliesTaxOnce(t *testing.T) {
	cart := &fakeCart{items: []models.CartItem{
		{ID: 1, PackageID: 10, Guests: 10, BasePrice: 800, PerGuestPrice: 20}, // 1000
		{ID: 2, PackageID: 20, Guests: 5, BasePrice: 500, PerGuestPrice: 100}, // 1000
	}}
	svc := CartService{Cart: cart}

	totals, err := svc.Totals(context.Background(), 42)
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if totals.Subtotal != 2000 {
		t.Errorf("Subtotal = %d, want 2000", totals.Subtotal)
	}
	if totals.Tax != 360 { // 18% of 2000
		t.Errorf("Tax = %d, want 360", totals.Tax)
	}
	if totals.Total != 2360 {
		t.Errorf("Total = %d, want 2360", totals.Total)
	}
}

func TestCartTotalsEmptyCart(t *testing.T) {
	svc := CartService{Cart: &fakeCart{}}
	totals, err := svc.Totals(context.Background(), 42)
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if totals.Subtotal != 0 || totals.Tax != 0 || totals.Total != 0 {
		t.Errorf("totals = %+v, want all zero", totals)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := CartService{Cart: &fakeCart{}}

	cases := []struct {
		name string
		in   models.CartItemInput
	}{
		{"missing package", models.CartItemInput{Guests: 5, EventDate: "2026-10-01"}},
		{"zero guests", models.CartItemInput{PackageID: 10, EventDate: "2026-10-01"}},
		{"bad date", models.CartItemInput{PackageID: 10, Guests: 5, EventDate: "01-10-2026"}},
		{"empty date", models.CartItemInput{PackageID: 10, Guests: 5}},
	}
	for _, tc := range cases {
		_, err := svc.AddItem(context.Background(), 42, tc.in)
		if !domain.IsValidation(err) {
			t.Errorf("%s: err = %v, want validation error", tc.name, err)
		}
	}
}

func TestAddItemPassesThroughValidInput(t *testing.T) {
	svc := CartService{Cart: &fakeCart{}}
	_, err := svc.AddItem(context.Background(), 42, models.CartItemInput{
		PackageID: 10,
		Guests:    25,
		EventDate: "2026-10-01",
		Location:  "Jaipur",
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
}
