package models

// ServicePlan describes what the user is booking before any provider or
// slot has been chosen.
type ServicePlan struct {
	BookingType string   `json:"bookingType"`
	ServiceIDs  []string `json:"serviceIds"`
	CategoryID  string   `json:"categoryId"`
	Units       int      `json:"units"` // sum of per-item quantities in the cart
	// Package is true for recurring subscriptions; availability is then
	// scoped to the single pre-chosen provider instead of any-provider.
	Package bool `json:"package"`
}

// BookingSession holds context between matching and final booking.
type BookingSession struct {
	SessionID        string          `json:"sessionId"`
	UserID           string          `json:"userId"`
	ServicePlan      ServicePlan     `json:"servicePlan"`
	MatchedProviders []Provider      `json:"matchedProviders"`
	SelectedProvider string          `json:"selectedProviderId,omitempty"`
	Availability     AvailabilityMap `json:"-"`
	// AvailabilityView is the JSON-friendly projection of Availability.
	AvailabilityView []SlotVerdict `json:"availability,omitempty"`
}

// SlotVerdict is one availability verdict in wire form.
type SlotVerdict struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Verdict string `json:"verdict"` // "available" | "unavailable" | "unknown"
}

// AvailabilityToView flattens an AvailabilityMap for session serialization.
func AvailabilityToView(m AvailabilityMap) []SlotVerdict {
	out := make([]SlotVerdict, 0, len(m))
	for k, v := range m {
		out = append(out, SlotVerdict{Date: k.Date, Time: k.SlotLabel, Verdict: v.String()})
	}
	return out
}

// ViewToAvailability rebuilds an AvailabilityMap from its wire form.
func ViewToAvailability(view []SlotVerdict) AvailabilityMap {
	m := make(AvailabilityMap, len(view))
	for _, sv := range view {
		key := SlotKey{Date: sv.Date, SlotLabel: sv.Time}
		switch sv.Verdict {
		case "available":
			m[key] = VerdictAvailable
		case "unavailable":
			m[key] = VerdictUnavailable
		default:
			m[key] = VerdictUnknown
		}
	}
	return m
}
