package bookingRepo

import (
	"context"

	"ninjaservices/models"
)

// BookingRepository persists booking records. Bookings are written once at
// checkout; only cancellation mutates them afterward.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUser(ctx context.Context, userID string) ([]models.Booking, error)
	SetCancelled(ctx context.Context, id string) error
	// CountOverlapping returns how many non-cancelled bookings a provider
	// already has for the given (date, slot). Backs the capacity lookup.
	CountOverlapping(ctx context.Context, providerID, date, timeSlot string) (int, error)
}
