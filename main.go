package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ninjaservices/config"
	"ninjaservices/cron"
	"ninjaservices/database"
	bookingRepoPkg "ninjaservices/database/repository/booking"
	capacityRepoPkg "ninjaservices/database/repository/capacity"
	providerRepoPkg "ninjaservices/database/repository/provider"
	"ninjaservices/handlers"
	"ninjaservices/middleware"
	"ninjaservices/routes"
	"ninjaservices/services/booking"
	"ninjaservices/services/notification"
	"ninjaservices/services/scheduling"
	"ninjaservices/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	capacity := capacityRepoPkg.NewBookingBackedCapacity(provRepo, bookingRepo)

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		Prober: scheduling.NewProber(capacity, capacity, logger),
		Logger: logger,
	}

	matchingService := &booking.DefaultMatchingService{
		ProviderRepo: provRepo,
		Logger:       logger,
	}

	notificationService := &notification.DefaultNotificationService{
		Logger: logger,
	}

	reminderScheduler := cron.NewReminderScheduler(logger)

	bookingService := &booking.DefaultBookingSessionService{
		Matching:  matchingService,
		Scheduler: schedulingService,
		Bookings:  bookingRepo,
		Payments:  booking.NewPaymentHandler(logger),
		Notifier:  notificationService,
		Reminders: reminderScheduler,
		Cache:     utils.GetSessionCacheClient(),
		Logger:    logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:    handlers.NewBookingHandler(bookingService),
		Scheduling: handlers.NewSchedulingHandler(schedulingService),
		Tracking:   handlers.NewTrackingHandler(bookingRepo),
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":   utils.GetCacheClient(),
		"session": utils.GetSessionCacheClient(),
	}, database.MongoClient)

	// Background reminder worker (asynq).
	go cron.InitReminderWorker(notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
