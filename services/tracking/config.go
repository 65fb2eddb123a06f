package tracking

import (
	"fmt"
	"time"

	"ninjaservices/models"
)

// defaultProgress is the status → percentage table shared by all booking
// types. Values are displayed, never computed.
var defaultProgress = map[models.BookingStatus]int{
	models.StatusConfirmed:  10,
	models.StatusAssigned:   25,
	models.StatusOnTheWay:   50,
	models.StatusArrived:    70,
	models.StatusInProgress: 85,
	models.StatusCompleted:  100,
	models.StatusCancelled:  0,
}

// profiles are the per-booking-type timing profiles. Offsets are lead
// times before the scheduled start.
var profiles = map[string]models.TrackingConfiguration{
	"electrician": {
		BookingType:           "electrician",
		AssignmentOffset:      120 * time.Minute,
		DepartureOffset:       30 * time.Minute,
		ArrivalOffset:         5 * time.Minute,
		ProgressMapping:       defaultProgress,
		ShowETA:               true,
		AllowCancellation:     true,
		TechnicianCallEnabled: true,
		UpdateInterval:        30 * time.Second,
	},
	"plumber": {
		BookingType:           "plumber",
		AssignmentOffset:      180 * time.Minute,
		DepartureOffset:       45 * time.Minute,
		ArrivalOffset:         10 * time.Minute,
		ProgressMapping:       defaultProgress,
		ShowETA:               true,
		AllowCancellation:     true,
		TechnicianCallEnabled: true,
		UpdateInterval:        30 * time.Second,
	},
	"cleaning": {
		BookingType:           "cleaning",
		AssignmentOffset:      240 * time.Minute,
		DepartureOffset:       60 * time.Minute,
		ArrivalOffset:         15 * time.Minute,
		ProgressMapping:       defaultProgress,
		ShowETA:               false,
		AllowCancellation:     true,
		TechnicianCallEnabled: true,
		UpdateInterval:        60 * time.Second,
	},
	"health": {
		BookingType:           "health",
		AssignmentOffset:      60 * time.Minute,
		DepartureOffset:       20 * time.Minute,
		ArrivalOffset:         5 * time.Minute,
		ProgressMapping:       defaultProgress,
		ShowETA:               true,
		AllowCancellation:     false,
		TechnicianCallEnabled: true,
		UpdateInterval:        15 * time.Second,
	},
	"dailywages": {
		BookingType:           "dailywages",
		AssignmentOffset:      12 * time.Hour,
		DepartureOffset:       60 * time.Minute,
		ArrivalOffset:         15 * time.Minute,
		ProgressMapping:       defaultProgress,
		ShowETA:               false,
		AllowCancellation:     true,
		TechnicianCallEnabled: false,
		UpdateInterval:        5 * time.Minute,
	},
	"carwash": {
		BookingType:           "carwash",
		AssignmentOffset:      90 * time.Minute,
		DepartureOffset:       30 * time.Minute,
		ArrivalOffset:         10 * time.Minute,
		ProgressMapping:       defaultProgress,
		ShowETA:               true,
		AllowCancellation:     true,
		TechnicianCallEnabled: true,
		UpdateInterval:        60 * time.Second,
	},
}

// preset overrides replace only the timing fields of a base profile.
type preset struct {
	AssignmentOffset time.Duration
	DepartureOffset  time.Duration
	ArrivalOffset    time.Duration
	UpdateInterval   time.Duration
}

var presets = map[string]preset{
	"DEMO_FAST": {
		AssignmentOffset: 2 * time.Minute,
		DepartureOffset:  1 * time.Minute,
		ArrivalOffset:    30 * time.Second,
		UpdateInterval:   5 * time.Second,
	},
	"EMERGENCY": {
		AssignmentOffset: 15 * time.Minute,
		DepartureOffset:  10 * time.Minute,
		ArrivalOffset:    2 * time.Minute,
		UpdateInterval:   10 * time.Second,
	},
	"MAINTENANCE": {
		AssignmentOffset: 24 * time.Hour,
		DepartureOffset:  2 * time.Hour,
		ArrivalOffset:    30 * time.Minute,
		UpdateInterval:   10 * time.Minute,
	},
}

// ConfigurationFor returns the timing profile for a booking type. Unknown
// types fall back to the electrician profile rather than failing a
// tracking screen.
func ConfigurationFor(bookingType string) models.TrackingConfiguration {
	cfg, ok := profiles[bookingType]
	if !ok {
		cfg = profiles["electrician"]
		cfg.BookingType = bookingType
	}
	return cfg
}

// ApplyPreset overlays a named preset's timing onto a profile.
func ApplyPreset(cfg models.TrackingConfiguration, name string) (models.TrackingConfiguration, error) {
	p, ok := presets[name]
	if !ok {
		return cfg, fmt.Errorf("unknown tracking preset %q", name)
	}
	cfg.AssignmentOffset = p.AssignmentOffset
	cfg.DepartureOffset = p.DepartureOffset
	cfg.ArrivalOffset = p.ArrivalOffset
	cfg.UpdateInterval = p.UpdateInterval
	return cfg, nil
}
