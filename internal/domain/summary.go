package domain

import "backend/internal/domain/models"

// Summarize derives the payment state of a booking from its payment records.
// Pure; no I/O. Only SUCCESS payments count toward the paid total. When the
// backend has no payment records for the booking (legacy rows), the booking's
// own AmountPaid is used as the paid total.
func Summarize(b models.Booking, payments []models.Payment) models.PaymentSummary {
	var paid int64
	for _, p := range payments {
		if p.Status == models.PaymentSuccess {
			paid += p.Amount
		}
	}
	if len(payments) == 0 {
		paid = b.AmountPaid
	}

	remaining := b.TotalAmount - paid
	overpaid := remaining < 0
	if remaining < 0 {
		remaining = 0
	}

	status := models.BookingPendingPayment
	switch {
	case b.Status == models.BookingCancelled:
		status = models.BookingCancelled
	case b.TotalAmount > 0 && paid >= b.TotalAmount:
		status = models.BookingFullyPaid
	case paid > 0:
		status = models.BookingPartiallyPaid
	}

	var pct float64
	if b.TotalAmount > 0 {
		pct = float64(paid) / float64(b.TotalAmount) * 100
		if pct > 100 {
			pct = 100
		}
	}

	return models.PaymentSummary{
		BookingID:       b.ID,
		TotalAmount:     b.TotalAmount,
		AmountPaid:      paid,
		RemainingAmount: remaining,
		PaymentStatus:   status,
		PercentagePaid:  pct,
		Overpaid:        overpaid,
	}
}
