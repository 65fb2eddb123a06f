package booking

import (
	"context"

	bookingRepo "ninjaservices/database/repository/booking"
	"ninjaservices/models"
	"ninjaservices/services/notification"
	"ninjaservices/services/scheduling"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BookingSessionService defines the interface for managing a stateful
// booking session: match providers, probe availability, confirm.
type BookingSessionService interface {
	InitiateSession(ctx context.Context, userID string, plan models.ServicePlan) (*models.BookingSession, error)
	UpdateSession(ctx context.Context, sessionID, selectedProviderID string, start models.SelectedSlot) (*models.BookingSession, error)
	ConfirmBooking(ctx context.Context, sessionID string, req models.BookingRequest) (*models.PublicBookingData, error)
	CancelSession(ctx context.Context, sessionID string) error
	CancelBooking(ctx context.Context, bookingID, userID string) error
	UserBookings(ctx context.Context, userID string) ([]models.PublicBookingData, error)
}

// ReminderScheduler enqueues the pre-arrival reminder for a booking.
// Implemented by the cron package's asynq-backed scheduler.
type ReminderScheduler interface {
	ScheduleArrivalReminder(booking models.Booking) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Matching  MatchingService
	Scheduler scheduling.SchedulingService
	Bookings  bookingRepo.BookingRepository
	Payments  PaymentHandler
	Notifier  notification.NotificationService
	Reminders ReminderScheduler
	Cache     *redis.Client
	Logger    *zap.Logger
}
