package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ninjaservices/models"
	"ninjaservices/services/scheduling"
	"ninjaservices/services/tracking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionTTL is how long a booking session survives between phases.
const sessionTTL = 10 * time.Minute

// unitRates are the flat per-unit prices per booking type.
var unitRates = map[string]float64{
	"electrician": 349,
	"plumber":     299,
	"cleaning":    199,
	"health":      499,
	"dailywages":  599,
	"carwash":     249,
}

// InitiateSession matches candidate providers for the plan and caches a
// new session.
func (s *DefaultBookingSessionService) InitiateSession(ctx context.Context, userID string, plan models.ServicePlan) (*models.BookingSession, error) {
	if plan.Units < 1 {
		plan.Units = 1
	}
	matched, err := s.Matching.MatchProviders(ctx, plan)
	if err != nil {
		return nil, err
	}

	session := &models.BookingSession{
		SessionID:        uuid.New().String(),
		UserID:           userID,
		ServicePlan:      plan,
		MatchedProviders: matched,
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSession records the provider selection and probes availability
// around the chosen start slot. A provider or date change starts a fresh
// probing session; stale in-flight probes are discarded.
func (s *DefaultBookingSessionService) UpdateSession(ctx context.Context, sessionID, selectedProviderID string, start models.SelectedSlot) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.SelectedProvider = selectedProviderID

	s.Scheduler.ResetAvailability()
	_, availability, err := s.Scheduler.AllocateBlock(ctx, s.probeProvider(session), session.ServicePlan, start)
	if err != nil {
		return nil, err
	}
	session.AvailabilityView = models.AvailabilityToView(availability)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmBooking allocates the block (and expands the package series if
// recurring), charges payment, persists the booking, and fires the
// confirmation push and pre-arrival reminder.
func (s *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, sessionID string, req models.BookingRequest) (*models.PublicBookingData, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if req.ProviderID == "" {
		req.ProviderID = session.SelectedProvider
	}
	if req.ProviderID == "" {
		return nil, fmt.Errorf("no provider selected for booking")
	}
	plan := session.ServicePlan

	s.Scheduler.ResetAvailability()
	result, _, err := s.Scheduler.AllocateBlock(ctx, s.probeProvider(session), plan, req.Start)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, &InfeasibleError{Result: result}
	}

	booking := models.Booking{
		ID:          uuid.New().String(),
		UserID:      session.UserID,
		ProviderID:  req.ProviderID,
		BookingType: plan.BookingType,
		Date:        req.Start.Date,
		TimeSlot:    req.Start.Time,
		Slots:       result.Slots,
		Units:       len(result.Slots),
		FCMToken:    req.FCMToken,
		CreatedAt:   time.Now(),
	}

	occurrenceCount := 1
	if req.Recurring != nil {
		schedule, err := scheduling.NewRecurringSchedule(req.Recurring.Unit, req.Recurring.AnchorDate, req.Recurring.TimeSlot)
		if err != nil {
			return nil, err
		}
		sel := scheduling.Prefill(schedule.AnchorDate)
		if len(req.ConfirmedDates) > 0 {
			sel = scheduling.Confirmed(req.ConfirmedDates)
		}
		svc := models.ServiceContext{ServiceIDs: plan.ServiceIDs, CategoryID: plan.CategoryID, Units: plan.Units}
		occurrences, seriesResult, err := s.Scheduler.ExpandPackage(ctx, req.ProviderID, *schedule, sel, svc)
		if err != nil {
			return nil, err
		}
		if !seriesResult.OK {
			return nil, &SeriesConflictError{
				ConflictingDates: seriesResult.ConflictingDates,
				Advisory:         seriesResult.Advisory,
			}
		}
		booking.Recurring = schedule
		booking.Occurrences = occurrences
		occurrenceCount = len(occurrences)
	}

	booking.TotalPrice = s.price(plan.BookingType, booking.Units, occurrenceCount)

	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		UserID:   session.UserID,
		Amount:   booking.TotalPrice,
		Currency: req.Payment.Currency,
		Method:   req.Payment.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}
	booking.Invoice = *invoice

	if err := s.Bookings.Create(ctx, &booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleArrivalReminder(booking); err != nil {
			s.Logger.Warn("failed to schedule arrival reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	if booking.FCMToken != "" {
		if err := s.Notifier.NotifyBookingConfirmed(ctx, booking); err != nil {
			s.Logger.Warn("failed to send confirmation push",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	_ = s.CancelSession(ctx, sessionID)

	state, err := tracking.DeriveBookingState(booking, time.Now())
	if err != nil {
		state = models.TrackingState{Status: models.StatusConfirmed}
	}
	public := models.ToPublicBookingData(booking, state.Status)
	return &public, nil
}

// CancelSession drops a cached session.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Cache.Del(ctx, sessionKey(sessionID)).Err()
}

// CancelBooking marks a booking cancelled if its timing profile allows it
// and it has not already completed.
func (s *DefaultBookingSessionService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return fmt.Errorf("booking %s does not belong to user", bookingID)
	}
	cfg := tracking.ConfigurationFor(booking.BookingType)
	if !cfg.AllowCancellation {
		return fmt.Errorf("bookings of type %s cannot be cancelled", booking.BookingType)
	}
	state, err := tracking.DeriveBookingState(*booking, time.Now())
	if err == nil && state.Status == models.StatusCompleted {
		return fmt.Errorf("completed bookings cannot be cancelled")
	}
	return s.Bookings.SetCancelled(ctx, bookingID)
}

// UserBookings lists a user's bookings with live derived statuses.
func (s *DefaultBookingSessionService) UserBookings(ctx context.Context, userID string) ([]models.PublicBookingData, error) {
	bookings, err := s.Bookings.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]models.PublicBookingData, 0, len(bookings))
	for _, b := range bookings {
		state, err := tracking.DeriveBookingState(b, now)
		if err != nil {
			state = models.TrackingState{Status: models.StatusConfirmed}
		}
		out = append(out, models.ToPublicBookingData(b, state.Status))
	}
	return out, nil
}

// probeProvider returns the provider scope for availability probing:
// packages probe the pre-chosen provider, service flows probe any
// qualifying provider.
func (s *DefaultBookingSessionService) probeProvider(session *models.BookingSession) string {
	if session.ServicePlan.Package {
		return session.SelectedProvider
	}
	return ""
}

func (s *DefaultBookingSessionService) price(bookingType string, units, occurrences int) float64 {
	rate, ok := unitRates[bookingType]
	if !ok {
		rate = 299
	}
	if occurrences < 1 {
		occurrences = 1
	}
	return rate * float64(units) * float64(occurrences)
}

func sessionKey(sessionID string) string {
	return "booking:session:" + sessionID
}

func (s *DefaultBookingSessionService) saveSession(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(session.SessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingSessionService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}
