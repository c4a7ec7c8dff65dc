package services

import (
	"bytes"
	"context"
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a payment receipt PDF for a booking with at least
// one settled payment.
type ReceiptService struct {
	Bookings     BookingBackend
	Payments     PaymentBackend
	MerchantName string
	Currency     string
	RequestID    string
}

func (s ReceiptService) GenerateReceipt(ctx context.Context, userID, bookingID int64) ([]byte, string, error) {
	booking, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if err := ensureBookingOwner(booking, userID); err != nil {
		return nil, "", err
	}
	payments, err := s.Payments.ListPayments(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	summary := domain.Summarize(booking, payments)
	if summary.AmountPaid <= 0 {
		return nil, "", domain.ValidationError{Field: "booking", Msg: "no settled payment to issue a receipt for"}
	}

	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("booking_id=%d", bookingID))

	pdf, err := s.buildReceiptPDF(booking, payments, summary)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("receipt_booking_%d.pdf", bookingID)
	return pdf, filename, nil
}

func (s ReceiptService) buildReceiptPDF(booking models.Booking, payments []models.Payment, summary models.PaymentSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	merchant := s.MerchantName
	if merchant == "" {
		merchant = "Evento"
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, merchant)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(190, 8, "Payment Receipt")
	pdf.Ln(12)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(55, 7, label)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(135, 7, value)
		pdf.Ln(7)
	}

	line("Booking", fmt.Sprintf("#%d", booking.ID))
	line("Package", booking.PackageName)
	line("Event date", booking.EventDate)
	line("Location", booking.Location)
	line("Guests", fmt.Sprintf("%d", booking.Guests))
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(190, 8, "Payments")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(50, 7, "Date")
	pdf.Cell(35, 7, "Method")
	pdf.Cell(60, 7, "Reference")
	pdf.CellFormat(40, 7, "Amount", "", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for _, p := range payments {
		if p.Status != models.PaymentSuccess {
			continue
		}
		pdf.Cell(50, 6, utils.FormatDateTime(p.CreatedAt))
		pdf.Cell(35, 6, p.Method)
		pdf.Cell(60, 6, p.PaymentID)
		pdf.CellFormat(40, 6, utils.FormatAmount(s.Currency, p.Amount), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(6)

	total := func(label string, amount int64) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(145, 7, label)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(40, 7, utils.FormatAmount(s.Currency, amount), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	total("Booking total", summary.TotalAmount)
	total("Amount paid", summary.AmountPaid)
	total("Remaining balance", summary.RemainingAmount)

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(190, 6, fmt.Sprintf("Payment status: %s", summary.PaymentStatus))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, domain.InternalError{Msg: "failed to render receipt", Err: err}
	}
	return buf.Bytes(), nil
}
