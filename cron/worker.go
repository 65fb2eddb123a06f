package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ninjaservices/config"
	"ninjaservices/models"
	"ninjaservices/services/notification"
	"ninjaservices/services/tracking"
	"ninjaservices/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// AsynqReminderScheduler enqueues pre-arrival reminders on the asynq queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewReminderScheduler(logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(redisOpts()),
		logger: logger,
	}
}

// ScheduleArrivalReminder enqueues a push for the booking's departure
// window (scheduled start minus the profile's departure offset). Bookings
// already inside the window are skipped.
func (s *AsynqReminderScheduler) ScheduleArrivalReminder(b models.Booking) error {
	if b.FCMToken == "" {
		return nil
	}
	cfg := tracking.ConfigurationFor(b.BookingType)

	startMin, _, err := utils.ParseSlotWindow(b.TimeSlot)
	if err != nil {
		return fmt.Errorf("cannot schedule reminder: %w", err)
	}
	day, err := utils.ParseISODate(b.Date)
	if err != nil {
		return fmt.Errorf("cannot schedule reminder: %w", err)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local).
		Add(time.Duration(startMin) * time.Minute)
	fireAt := start.Add(-cfg.DepartureOffset)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		BookingID:   b.ID,
		BookingType: b.BookingType,
		FCMToken:    b.FCMToken,
		Title:       "Your provider is heading out soon",
		Body:        fmt.Sprintf("Your %s service starts at %s.", b.BookingType, utils.FormatClockTime(startMin)),
		FireDate:    fireAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	info, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt))
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.logger.Debug("arrival reminder scheduled",
		zap.String("bookingId", b.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
			"type":      "arrival_reminder",
		}
		if err := notifSvc.SendPush(ctx, p.FCMToken, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] Push failed for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}
