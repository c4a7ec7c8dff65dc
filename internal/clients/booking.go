package clients

import (
	"context"
	"fmt"
	"net/http"

	"backend/internal/domain/models"
)

// BookingClient talks to the booking backend. Booking creation and persistence
// live there; this service only orchestrates.
type BookingClient struct {
	api apiClient
}

func NewBookingClient(baseURL, serviceKey string) *BookingClient {
	return &BookingClient{api: newAPIClient(baseURL, serviceKey)}
}

func (c *BookingClient) CreateBooking(ctx context.Context, in models.CreateBookingInput) (models.Booking, error) {
	var out models.Booking
	if err := c.api.doJSON(ctx, http.MethodPost, "/bookings", in, &out); err != nil {
		return models.Booking{}, err
	}
	return out, nil
}

func (c *BookingClient) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	var out models.Booking
	if err := c.api.getJSON(ctx, fmt.Sprintf("/bookings/%d", id), &out); err != nil {
		return models.Booking{}, err
	}
	return out, nil
}
