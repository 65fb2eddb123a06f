package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ninjaservices/config"
	"ninjaservices/handlers"
	"ninjaservices/middleware"
	"ninjaservices/utils"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("/session", hb.Booking.StartBookingSessionHandler)
		bookingGroup.PUT("/session/:sessionID", hb.Booking.UpdateBookingSessionHandler)
		bookingGroup.POST("/confirm", hb.Booking.ConfirmBookingHandler)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.CancelBookingSessionHandler)
		bookingGroup.DELETE("/:bookingID", hb.Booking.CancelBookingHandler)
		bookingGroup.GET("/history", hb.Booking.GetUserBookingsHandler)
	}
}

// RegisterSchedulingRoutes registers slot and recurrence endpoints. The
// catalog and month-grid lookups are public; probing requires auth.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.GET("/catalog/:bookingType", hb.Scheduling.GetSlotCatalogHandler)
		api.GET("/month/:monthKey", hb.Scheduling.GetMonthGridHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/allocate", hb.Scheduling.AllocateBlockHandler)
		protected.POST("/package", hb.Scheduling.ExpandPackageHandler)
	}
}

// RegisterTrackingRoutes registers live booking status endpoints.
func RegisterTrackingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tracking")
	{
		api.GET("/config/:bookingType", hb.Tracking.GetTrackingConfigHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/booking/:bookingID", hb.Tracking.GetBookingStatusHandler)
		protected.POST("/preview", hb.Tracking.PreviewStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.CheckedAt.IsZero() && !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
}

// RegisterDevRoutes registers development-only helpers. Never mounted in
// production.
func RegisterDevRoutes(r *gin.Engine) {
	if config.IsProduction() {
		return
	}
	r.POST("/dev/token", func(c *gin.Context) {
		var input struct {
			UserID string `json:"userId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
			return
		}
		token, err := utils.GenerateToken(input.UserID, 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterDevRoutes(r)
	RegisterBookingRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
	RegisterTrackingRoutes(r, hb)
}
