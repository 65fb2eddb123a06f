package capacityRepo

import (
	"context"
	"fmt"

	bookingRepo "ninjaservices/database/repository/booking"
	providerRepo "ninjaservices/database/repository/provider"
	"ninjaservices/models"
)

// providerDailyCapacity is how many bookings a provider can take per
// (date, slot) window.
const providerDailyCapacity = 1

// BookingBackedCapacity answers capacity checks from the booking records:
// a provider is free for a (date, slot) while its overlap count is below
// capacity. It is a thin adapter, not a capacity engine.
type BookingBackedCapacity struct {
	Providers providerRepo.ProviderRepository
	Bookings  bookingRepo.BookingRepository
}

func NewBookingBackedCapacity(providers providerRepo.ProviderRepository, bookings bookingRepo.BookingRepository) *BookingBackedCapacity {
	return &BookingBackedCapacity{Providers: providers, Bookings: bookings}
}

// CheckProviderAvailability implements scheduling.CapacityLookup.
func (c *BookingBackedCapacity) CheckProviderAvailability(ctx context.Context, providerID, date, timeSlot string, svc models.ServiceContext) (bool, error) {
	provider, err := c.Providers.GetByID(ctx, providerID)
	if err != nil {
		return false, fmt.Errorf("capacity check: %w", err)
	}
	if !provider.Active {
		return false, nil
	}

	used, err := c.Bookings.CountOverlapping(ctx, providerID, date, timeSlot)
	if err != nil {
		return false, fmt.Errorf("capacity check: %w", err)
	}
	return used < providerDailyCapacity, nil
}

// ListProvidersForService implements scheduling.ProviderDirectory.
func (c *BookingBackedCapacity) ListProvidersForService(ctx context.Context, serviceIDs []string, categoryID string, limit int) ([]models.Provider, error) {
	return c.Providers.ListForService(ctx, serviceIDs, categoryID, limit)
}
