package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ninjaservices/models"
	"ninjaservices/services/booking"
	"ninjaservices/utils"
)

// BookingHandler exposes the session-based booking flow.
type BookingHandler struct {
	Service booking.BookingSessionService
}

func NewBookingHandler(svc booking.BookingSessionService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// StartBookingSessionHandler creates a new booking session from a service plan.
func (h *BookingHandler) StartBookingSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var input struct {
		ServicePlan models.ServicePlan `json:"servicePlan"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.InitiateSession(c.Request.Context(), userID, input.ServicePlan)
	if err != nil {
		logger.Error("Failed to initiate booking session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start booking session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": session.SessionID,
		"providers": session.MatchedProviders,
	})
}

// UpdateBookingSessionHandler records a provider selection and recomputes
// availability for the requested start slot.
func (h *BookingHandler) UpdateBookingSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	sessionID := c.Param("sessionID")
	var input struct {
		ProviderID string              `json:"providerId"`
		Start      models.SelectedSlot `json:"start"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.UpdateSession(c.Request.Context(), sessionID, input.ProviderID, input.Start)
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
			return
		}
		logger.Error("Failed to update booking session", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID":    session.SessionID,
		"availability": session.AvailabilityView,
		"providers":    session.MatchedProviders,
	})
}

// ConfirmBookingHandler finalizes the booking: allocates the slot block,
// expands any recurring package, takes payment and persists the record.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var input struct {
		SessionID      string                `json:"sessionID"`
		BookingRequest models.BookingRequest `json:"bookingRequest"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.BookingRequest.UserID = userID

	confirmed, err := h.Service.ConfirmBooking(c.Request.Context(), input.SessionID, input.BookingRequest)
	if err != nil {
		var infeasible *booking.InfeasibleError
		var seriesConflict *booking.SeriesConflictError
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		case errors.As(err, &infeasible):
			c.JSON(http.StatusConflict, gin.H{
				"error":        "requested slot block is not available",
				"reason":       infeasible.Result.Reason,
				"partialSlots": infeasible.Result.Slots,
			})
		case errors.As(err, &seriesConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":            "recurring series has conflicting dates",
				"conflictingDates": seriesConflict.ConflictingDates,
				"advisory":         seriesConflict.Advisory,
			})
		default:
			logger.Error("Booking confirmation failed", zap.String("sessionID", input.SessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking confirmation failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": confirmed})
}

// CancelBookingSessionHandler discards an in-flight session.
func (h *BookingHandler) CancelBookingSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.CancelSession(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking session cancelled"})
}

// CancelBookingHandler cancels a confirmed booking, subject to the booking
// type's cancellation policy.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	bookingID := c.Param("bookingID")
	if err := h.Service.CancelBooking(c.Request.Context(), bookingID, userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to cancel booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// GetUserBookingsHandler lists the caller's bookings with live statuses.
func (h *BookingHandler) GetUserBookingsHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	bookings, err := h.Service.UserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// authedUserID pulls the user ID set by JWTAuthMiddleware, writing the
// error response itself when missing.
func authedUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user ID in context"})
		return "", false
	}
	return userID, true
}
