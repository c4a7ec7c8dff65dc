package domain

import "testing"

func TestPartialAmountRoundsHalfUp(t *testing.T) {
	cases := []struct {
		total      int64
		percentage float64
		want       int64
	}{
		{50000, 30, 15000},
		{50000, 100, 50000},
		{999, 20, 200},   // 199.8 rounds up
		{1001, 20, 200},  // 200.2 rounds down
		{12345, 33, 4074}, // 4073.85
		{1, 20, 0},       // 0.2 rounds down
		{0, 50, 0},
	}
	for _, tc := range cases {
		got := PartialAmount(tc.total, tc.percentage)
		if got != tc.want {
			t.Errorf("PartialAmount(%d, %.0f) = %d, want %d", tc.total, tc.percentage, got, tc.want)
		}
	}
}

// Rounding happens exactly once: remaining is always total minus the rounded
// advance, so the two always sum back to the total, at any percentage.
func TestPartialPlusRemainingEqualsTotal(t *testing.T) {
	totals := []int64{1, 99, 1000, 4999, 50000, 123457, 999999999}
	for _, total := range totals {
		for p := MinPaymentPercentage; p <= MaxPaymentPercentage; p++ {
			partial := PartialAmount(total, float64(p))
			remaining := total - partial
			if partial+remaining != total {
				t.Fatalf("total=%d p=%d: partial %d + remaining %d != total", total, p, partial, remaining)
			}
			if partial < 0 || remaining < 0 {
				t.Fatalf("total=%d p=%d: negative split partial=%d remaining=%d", total, p, partial, remaining)
			}
		}
	}
}

func TestValidPercentage(t *testing.T) {
	for _, p := range []float64{20, 50, 99.5, 100} {
		if !ValidPercentage(p) {
			t.Errorf("ValidPercentage(%v) = false, want true", p)
		}
	}
	for _, p := range []float64{0, 19.99, 100.01, -5, 150} {
		if ValidPercentage(p) {
			t.Errorf("ValidPercentage(%v) = true, want false", p)
		}
	}
}
