package models

import "time"

// BookingStatus is a booking's lifecycle state. All states except cancelled
// are derived from wall-clock time versus the scheduled window; cancelled
// is reachable only through explicit user or operator action.
type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "confirmed"
	StatusAssigned   BookingStatus = "assigned"
	StatusOnTheWay   BookingStatus = "on_the_way"
	StatusArrived    BookingStatus = "arrived"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// TrackingConfiguration is the per-booking-type timing profile driving
// status derivation. Read-only at runtime.
type TrackingConfiguration struct {
	BookingType           string                `json:"bookingType"`
	AssignmentOffset      time.Duration         `json:"assignmentOffset"` // before scheduled start
	DepartureOffset       time.Duration         `json:"departureOffset"`
	ArrivalOffset         time.Duration         `json:"arrivalOffset"`
	ProgressMapping       map[BookingStatus]int `json:"progressMapping"`
	ShowETA               bool                  `json:"showEta"`
	AllowCancellation     bool                  `json:"allowCancellation"`
	TechnicianCallEnabled bool                  `json:"technicianCallEnabled"`
	UpdateInterval        time.Duration         `json:"updateInterval"`
}

// TrackingState is a derived snapshot of a booking's live status.
type TrackingState struct {
	Status             BookingStatus `json:"status"`
	ProgressPercentage int           `json:"progressPercentage"`
	EstimatedArrival   string        `json:"estimatedArrival,omitempty"` // formatted scheduled start, on_the_way only
	DaysDifference     int           `json:"daysDifference"`
}
