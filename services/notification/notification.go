package notification

import (
	"context"
	"fmt"

	"ninjaservices/models"
	"ninjaservices/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
	NotifyStatusAdvanced(ctx context.Context, booking models.Booking, state models.TrackingState) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Logger *zap.Logger
}

// SendPush sends an FCM message to a device token.
func (s *DefaultNotificationService) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return fmt.Errorf("SendPush: empty FCM token")
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	s.Logger.Debug("push sent", zap.String("response", response))
	return nil
}

func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error {
	body := fmt.Sprintf("Your %s booking for %s at %s is confirmed.",
		booking.BookingType, booking.Date, booking.TimeSlot)
	return s.SendPush(ctx, booking.FCMToken, "Booking confirmed", body, map[string]string{
		"bookingId": booking.ID,
		"type":      "booking_confirmed",
	})
}

func (s *DefaultNotificationService) NotifyStatusAdvanced(ctx context.Context, booking models.Booking, state models.TrackingState) error {
	var body string
	switch state.Status {
	case models.StatusOnTheWay:
		body = "Your service provider is on the way."
		if state.EstimatedArrival != "" {
			body = fmt.Sprintf("Your service provider is on the way. Expected by %s.", state.EstimatedArrival)
		}
	case models.StatusArrived:
		body = "Your service provider has arrived."
	case models.StatusInProgress:
		body = "Your service is in progress."
	case models.StatusCompleted:
		body = "Your service is complete. Thank you!"
	default:
		body = fmt.Sprintf("Booking update: %s", state.Status)
	}
	return s.SendPush(ctx, booking.FCMToken, "Booking update", body, map[string]string{
		"bookingId": booking.ID,
		"status":    string(state.Status),
		"type":      "status_update",
	})
}
