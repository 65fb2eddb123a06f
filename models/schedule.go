package models

// RecurrenceUnit is the cadence of a recurring package booking.
type RecurrenceUnit string

const (
	RecurDaily   RecurrenceUnit = "day"
	RecurWeekly  RecurrenceUnit = "week"
	RecurMonthly RecurrenceUnit = "month"
)

// OccurrenceCount returns the fixed number of occurrences one subscription
// cycle of this unit produces.
func (u RecurrenceUnit) OccurrenceCount() int {
	switch u {
	case RecurDaily:
		return 28
	case RecurWeekly:
		return 7
	case RecurMonthly:
		return 30
	}
	return 0
}

// Valid reports whether the unit is one of the known cadences.
func (u RecurrenceUnit) Valid() bool {
	return u.OccurrenceCount() > 0
}

// RecurringSchedule describes the cadence of a package booking. Created
// once at checkout from the user's anchor-date and slot choice; immutable
// afterward (a cadence change requires a new booking).
type RecurringSchedule struct {
	Unit       RecurrenceUnit `bson:"unit" json:"unit"`
	AnchorDate string         `bson:"anchorDate" json:"anchorDate"`
	Weekday    int            `bson:"weekday" json:"weekday"` // Sunday = 0, derived from AnchorDate
	TimeSlot   string         `bson:"timeSlot" json:"timeSlot"`
}

// Occurrence is one concrete (date, time) instance within a recurring
// package's schedule.
type Occurrence struct {
	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`
}
