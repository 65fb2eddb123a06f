package tracking

import (
	"time"

	"ninjaservices/models"
	"ninjaservices/utils"
)

// DeriveStatus computes a booking's live lifecycle state purely from now
// versus the scheduled window and the booking type's timing profile. It is
// stateless and idempotent: the same inputs always yield the same state,
// and callers recompute it on every tick.
//
// scheduledDate accepts "Today"/"Tomorrow" aliases as well as ISO dates;
// timeSlot is a window label such as "2:00 PM - 4:00 PM".
func DeriveStatus(scheduledDate, timeSlot, bookingType string, now time.Time) (models.TrackingState, error) {
	cfg := ConfigurationFor(bookingType)
	return DeriveStatusWithConfig(scheduledDate, timeSlot, cfg, now)
}

// DeriveStatusWithConfig is DeriveStatus with an explicit profile, for
// preset overrides.
func DeriveStatusWithConfig(scheduledDate, timeSlot string, cfg models.TrackingConfiguration, now time.Time) (models.TrackingState, error) {
	date, err := utils.ResolveDateAlias(scheduledDate, now)
	if err != nil {
		return models.TrackingState{}, err
	}
	startMin, endMin, err := utils.ParseSlotWindow(timeSlot)
	if err != nil {
		return models.TrackingState{}, err
	}

	daysDiff, err := utils.DaysBetween(utils.FormatISODate(now), date)
	if err != nil {
		return models.TrackingState{}, err
	}

	var status models.BookingStatus
	switch {
	case daysDiff > 0:
		status = models.StatusConfirmed
	case daysDiff < 0:
		status = models.StatusCompleted
	default:
		status = sameDayStatus(date, startMin, endMin, cfg, now)
	}

	state := models.TrackingState{
		Status:             status,
		ProgressPercentage: cfg.ProgressMapping[status],
		DaysDifference:     daysDiff,
	}
	if status == models.StatusOnTheWay && cfg.ShowETA {
		state.EstimatedArrival = utils.FormatClockTime(startMin)
	}
	return state, nil
}

// sameDayStatus walks the configured lead-time thresholds in order:
// assignment, departure, arrival, start, end.
func sameDayStatus(date string, startMin, endMin int, cfg models.TrackingConfiguration, now time.Time) models.BookingStatus {
	day, err := utils.ParseISODate(date)
	if err != nil {
		return models.StatusConfirmed
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.Add(time.Duration(startMin) * time.Minute)
	end := midnight.Add(time.Duration(endMin) * time.Minute)

	switch {
	case now.Before(start.Add(-cfg.AssignmentOffset)):
		return models.StatusConfirmed
	case now.Before(start.Add(-cfg.DepartureOffset)):
		return models.StatusAssigned
	case now.Before(start.Add(-cfg.ArrivalOffset)):
		return models.StatusOnTheWay
	case now.Before(start):
		return models.StatusArrived
	case now.Before(end):
		return models.StatusInProgress
	default:
		return models.StatusCompleted
	}
}

// DeriveBookingState derives the state for a persisted booking record,
// honouring the orthogonal cancelled flag.
func DeriveBookingState(b models.Booking, now time.Time) (models.TrackingState, error) {
	if b.Cancelled {
		cfg := ConfigurationFor(b.BookingType)
		daysDiff, err := utils.DaysBetween(utils.FormatISODate(now), b.Date)
		if err != nil {
			daysDiff = 0
		}
		return models.TrackingState{
			Status:             models.StatusCancelled,
			ProgressPercentage: cfg.ProgressMapping[models.StatusCancelled],
			DaysDifference:     daysDiff,
		}, nil
	}
	return DeriveStatus(b.Date, b.TimeSlot, b.BookingType, now)
}
