package models

// ReminderPayload is the asynq task payload for a pre-arrival reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	BookingType string `json:"bookingType"`
	FCMToken    string `json:"fcmToken"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"` // RFC3339
}
