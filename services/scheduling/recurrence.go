package scheduling

import (
	"fmt"
	"sort"

	"ninjaservices/models"
	"ninjaservices/utils"
)

// RecurringSelection is the explicit choice between expanding a package
// from its anchor date and using a user-confirmed date set. The zero value
// is not valid; construct via Prefill or Confirmed.
type RecurringSelection struct {
	anchor    string
	confirmed []string
}

// Prefill selects consecutive-day expansion from the anchor date. Used as
// the default before the user has confirmed specific dates.
func Prefill(anchorDate string) RecurringSelection {
	return RecurringSelection{anchor: anchorDate}
}

// Confirmed selects a user-picked date set verbatim (order-normalized
// ascending), superseding any prefill.
func Confirmed(dates []string) RecurringSelection {
	return RecurringSelection{confirmed: dates}
}

// IsConfirmed reports whether the selection carries a hand-picked date set.
func (s RecurringSelection) IsConfirmed() bool {
	return len(s.confirmed) > 0
}

// NewRecurringSchedule validates the cadence inputs and derives the
// weekday from the anchor date.
func NewRecurringSchedule(unit models.RecurrenceUnit, anchorDate, timeSlot string) (*models.RecurringSchedule, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("unknown recurrence unit %q", unit)
	}
	weekday, err := utils.DayOfWeek(anchorDate)
	if err != nil {
		return nil, err
	}
	return &models.RecurringSchedule{
		Unit:       unit,
		AnchorDate: anchorDate,
		Weekday:    weekday,
		TimeSlot:   timeSlot,
	}, nil
}

// GenerateOccurrences expands one subscription cycle into its concrete
// (date, time) occurrences. Daily packages always produce 28 consecutive
// dates from the anchor; weekly and monthly produce 7 and 30 respectively,
// either by consecutive-day prefill or from a confirmed date set of
// exactly that cardinality. No availability filtering happens here.
func GenerateOccurrences(unit models.RecurrenceUnit, sel RecurringSelection, timeSlot string) ([]models.Occurrence, error) {
	count := unit.OccurrenceCount()
	if count == 0 {
		return nil, fmt.Errorf("unknown recurrence unit %q", unit)
	}

	if sel.IsConfirmed() {
		if unit == models.RecurDaily {
			return nil, fmt.Errorf("daily packages do not take a confirmed date set")
		}
		return confirmedOccurrences(sel.confirmed, count, timeSlot)
	}

	dates, err := utils.DateRange(sel.anchor, count)
	if err != nil {
		return nil, err
	}
	return withTime(dates, timeSlot), nil
}

func confirmedOccurrences(dates []string, count int, timeSlot string) ([]models.Occurrence, error) {
	if len(dates) != count {
		return nil, fmt.Errorf("confirmed selection needs exactly %d dates, got %d", count, len(dates))
	}
	normalized := make([]string, len(dates))
	copy(normalized, dates)
	for _, d := range normalized {
		if _, err := utils.ParseISODate(d); err != nil {
			return nil, err
		}
	}
	sort.Strings(normalized)
	for i := 1; i < len(normalized); i++ {
		if normalized[i] == normalized[i-1] {
			return nil, fmt.Errorf("confirmed selection contains duplicate date %s", normalized[i])
		}
	}
	return withTime(normalized, timeSlot), nil
}

func withTime(dates []string, timeSlot string) []models.Occurrence {
	occurrences := make([]models.Occurrence, len(dates))
	for i, d := range dates {
		occurrences[i] = models.Occurrence{Date: d, Time: timeSlot}
	}
	return occurrences
}

// DropConflictingDates removes series-conflict dates from a hand-picked
// selection, forcing the user to choose replacements.
func DropConflictingDates(dates, conflicts []string) []string {
	if len(conflicts) == 0 {
		return dates
	}
	blocked := make(map[string]struct{}, len(conflicts))
	for _, c := range conflicts {
		blocked[c] = struct{}{}
	}
	kept := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, bad := blocked[d]; !bad {
			kept = append(kept, d)
		}
	}
	return kept
}
