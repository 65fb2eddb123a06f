package models

import "time"

// Booking represents a confirmed booking record. Written once at checkout;
// only the Cancelled flag changes afterward.
type Booking struct {
	ID          string             `bson:"id" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	ProviderID  string             `bson:"provider_id" json:"provider_id"`
	BookingType string             `bson:"booking_type" json:"booking_type"` // e.g., "electrician", "cleaning"
	Date        string             `bson:"date" json:"date"`                 // scheduled date, "2006-01-02"
	TimeSlot    string             `bson:"time_slot" json:"time_slot"`       // slot label of the first unit
	Slots       []SelectedSlot     `bson:"slots" json:"slots"`               // allocated contiguous block
	Units       int                `bson:"units" json:"units"`
	Recurring   *RecurringSchedule `bson:"recurring,omitempty" json:"recurring,omitempty"`
	Occurrences []Occurrence       `bson:"occurrences,omitempty" json:"occurrences,omitempty"`
	TotalPrice  float64            `bson:"total_price" json:"total_price"`
	Invoice     Invoice            `bson:"invoice,omitempty" json:"invoice,omitempty"`
	Cancelled   bool               `bson:"cancelled" json:"cancelled"`
	FCMToken    string             `bson:"fcm_token,omitempty" json:"-"` // push target captured at checkout
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// BookingRequest is the checkout payload for the confirm phase.
type BookingRequest struct {
	UserID      string             `json:"userId"`
	ProviderID  string             `json:"providerId"`
	BookingType string             `json:"bookingType"`
	Start       SelectedSlot       `json:"start"`
	Units       int                `json:"units"`
	Recurring   *RecurringSchedule `json:"recurring,omitempty"`
	// ConfirmedDates is the user's hand-picked date set for week/month
	// packages; empty means prefill expansion from the anchor date.
	ConfirmedDates []string       `json:"confirmedDates,omitempty"`
	Payment        PaymentDetails `json:"payment"`
	FCMToken       string         `json:"fcmToken,omitempty"`
}

// PublicBookingData is the client-facing projection of a booking.
type PublicBookingData struct {
	ID          string         `json:"id"`
	ProviderID  string         `json:"providerId"`
	BookingType string         `json:"bookingType"`
	Date        string         `json:"date"`
	TimeSlot    string         `json:"timeSlot"`
	Slots       []SelectedSlot `json:"slots"`
	Units       int            `json:"units"`
	Occurrences []Occurrence   `json:"occurrences,omitempty"`
	TotalPrice  float64        `json:"totalPrice"`
	Status      BookingStatus  `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ToPublicBookingData strips internal fields from a booking record.
func ToPublicBookingData(b Booking, status BookingStatus) PublicBookingData {
	return PublicBookingData{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		BookingType: b.BookingType,
		Date:        b.Date,
		TimeSlot:    b.TimeSlot,
		Slots:       b.Slots,
		Units:       b.Units,
		Occurrences: b.Occurrences,
		TotalPrice:  b.TotalPrice,
		Status:      status,
		CreatedAt:   b.CreatedAt,
	}
}
