package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "ninjaservices/database/repository/booking"
	"ninjaservices/services/tracking"
	"ninjaservices/utils"
)

// TrackingHandler exposes live booking status derivation.
type TrackingHandler struct {
	Bookings bookingRepo.BookingRepository
}

func NewTrackingHandler(repo bookingRepo.BookingRepository) *TrackingHandler {
	return &TrackingHandler{Bookings: repo}
}

// GetBookingStatusHandler derives the live status of a persisted booking.
// Clients poll this on the configured update interval.
func (h *TrackingHandler) GetBookingStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	bookingID := c.Param("bookingID")
	bk, err := h.Bookings.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if bk.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "booking does not belong to caller"})
		return
	}

	state, err := tracking.DeriveBookingState(*bk, time.Now())
	if err != nil {
		logger.Error("Failed to derive booking state", zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to derive booking status", "details": err.Error()})
		return
	}

	cfg := tracking.ConfigurationFor(bk.BookingType)
	c.JSON(http.StatusOK, gin.H{
		"bookingID":         bk.ID,
		"status":            state.Status,
		"progress":          state.ProgressPercentage,
		"estimatedArrival":  state.EstimatedArrival,
		"daysDifference":    state.DaysDifference,
		"updateInterval":    cfg.UpdateInterval.Seconds(),
		"showETA":           cfg.ShowETA,
		"allowCancellation": cfg.AllowCancellation,
		"technicianCall":    cfg.TechnicianCallEnabled,
	})
}

// PreviewStatusHandler derives a status from raw scheduling inputs without
// a persisted booking. Used by the demo and support tooling.
func (h *TrackingHandler) PreviewStatusHandler(c *gin.Context) {
	var input struct {
		Date        string `json:"date"`
		TimeSlot    string `json:"timeSlot"`
		BookingType string `json:"bookingType"`
		Preset      string `json:"preset,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cfg := tracking.ConfigurationFor(input.BookingType)
	if input.Preset != "" {
		overlaid, err := tracking.ApplyPreset(cfg, input.Preset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tracking preset", "details": err.Error()})
			return
		}
		cfg = overlaid
	}

	state, err := tracking.DeriveStatusWithConfig(input.Date, input.TimeSlot, cfg, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to derive status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           state.Status,
		"progress":         state.ProgressPercentage,
		"estimatedArrival": state.EstimatedArrival,
		"daysDifference":   state.DaysDifference,
	})
}

// GetTrackingConfigHandler returns the timing profile for a booking type.
func (h *TrackingHandler) GetTrackingConfigHandler(c *gin.Context) {
	bookingType := c.Param("bookingType")
	cfg := tracking.ConfigurationFor(bookingType)
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}
