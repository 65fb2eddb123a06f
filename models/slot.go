package models

// Slot is one fixed clock-time window offered for booking. Start and End
// are minutes from midnight (e.g., 540 for 9:00 AM); Label is the display
// form shown to users and used as the slot's identity within a catalog.
type Slot struct {
	Label string `bson:"label" json:"label"` // e.g., "9:00 AM - 11:00 AM"
	Start int    `bson:"start" json:"start"`
	End   int    `bson:"end" json:"end"`
}

// SlotCatalog is the ordered list of slots a service offers each day.
// Ordering is the declared order, not sorted by time, and the same catalog
// repeats identically every day.
type SlotCatalog []Slot

// IndexOf returns the catalog position of the slot with the given label,
// or -1 when absent.
func (c SlotCatalog) IndexOf(label string) int {
	for i, s := range c {
		if s.Label == label {
			return i
		}
	}
	return -1
}

// Labels returns the catalog's slot labels in declared order.
func (c SlotCatalog) Labels() []string {
	labels := make([]string, len(c))
	for i, s := range c {
		labels[i] = s.Label
	}
	return labels
}

// SelectedSlot is one reserved (date, slot) unit.
type SelectedSlot struct {
	Date string `bson:"date" json:"date"` // "2006-01-02"
	Time string `bson:"time" json:"time"` // slot label
}

// Key returns the slot's composite identity for availability lookups.
func (s SelectedSlot) Key() SlotKey {
	return SlotKey{Date: s.Date, SlotLabel: s.Time}
}

// SlotKey identifies one (date, slot) pair. At most one availability
// verdict exists per key within a probing session.
type SlotKey struct {
	Date      string `json:"date"`
	SlotLabel string `json:"slotLabel"`
}

// Verdict is the tri-state availability outcome for a slot or series.
// Unknown means the capacity lookup failed or has not run; callers may
// warn but must not block on it.
type Verdict uint8

const (
	VerdictUnknown Verdict = iota
	VerdictAvailable
	VerdictUnavailable
)

func (v Verdict) String() string {
	switch v {
	case VerdictAvailable:
		return "available"
	case VerdictUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// AvailabilityMap records per-key verdicts gathered during a probing
// session. Missing keys are treated as unknown.
type AvailabilityMap map[SlotKey]Verdict
