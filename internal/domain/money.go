package domain

import "math"

// Amounts are whole currency units (int64) everywhere at this service's
// boundary. Conversion to the gateway's minor units happens only inside the
// gateway adapter.

const (
	MinPaymentPercentage = 20
	MaxPaymentPercentage = 100
)

// PartialAmount applies the advance percentage to a booking total. This is the
// single rounding point for advance amounts: the later remaining settlement is
// always total - partial, never a second rounded percentage.
func PartialAmount(total int64, percentage float64) int64 {
	return int64(math.Round(float64(total) * percentage / 100))
}

// ValidPercentage reports whether a caller-chosen advance percentage is in the
// supported range.
func ValidPercentage(p float64) bool {
	return p >= MinPaymentPercentage && p <= MaxPaymentPercentage
}
