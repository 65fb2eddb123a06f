package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ninjaservices/models"
	"ninjaservices/services/scheduling"
	"ninjaservices/utils"
)

// SchedulingHandler exposes the slot and recurrence surfaces used by the
// booking screens before checkout.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
}

func NewSchedulingHandler(svc scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: svc}
}

// GetSlotCatalogHandler returns the slot labels for a booking type.
func (h *SchedulingHandler) GetSlotCatalogHandler(c *gin.Context) {
	bookingType := c.Param("bookingType")
	catalog, err := scheduling.CatalogFor(bookingType)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking type", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingType": bookingType,
		"slots":       catalog.Labels(),
	})
}

// AllocateBlockHandler probes availability and builds the contiguous slot
// block for the requested plan and start slot.
func (h *SchedulingHandler) AllocateBlockHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		ProviderID  string              `json:"providerId"`
		ServicePlan models.ServicePlan  `json:"servicePlan"`
		Start       models.SelectedSlot `json:"start"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, availability, err := h.Service.AllocateBlock(c.Request.Context(), input.ProviderID, input.ServicePlan, input.Start)
	if err != nil {
		logger.Error("Slot block allocation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to allocate slot block", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           result.OK,
		"slots":        result.Slots,
		"reason":       result.Reason,
		"availability": models.AvailabilityToView(availability),
	})
}

// ExpandPackageHandler generates the occurrence series for a recurring
// package and validates it against the chosen provider.
func (h *SchedulingHandler) ExpandPackageHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		ProviderID     string                `json:"providerId"`
		Unit           models.RecurrenceUnit `json:"unit"`
		AnchorDate     string                `json:"anchorDate"`
		TimeSlot       string                `json:"timeSlot"`
		ConfirmedDates []string              `json:"confirmedDates,omitempty"`
		Service        models.ServiceContext `json:"service"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	schedule, err := scheduling.NewRecurringSchedule(input.Unit, input.AnchorDate, input.TimeSlot)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recurring schedule", "details": err.Error()})
		return
	}

	sel := scheduling.Prefill(input.AnchorDate)
	if len(input.ConfirmedDates) > 0 {
		sel = scheduling.Confirmed(input.ConfirmedDates)
	}

	occurrences, result, err := h.Service.ExpandPackage(c.Request.Context(), input.ProviderID, *schedule, sel, input.Service)
	if err != nil {
		logger.Error("Package expansion failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to expand package", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"occurrences":      occurrences,
		"ok":               result.OK,
		"conflictingDates": result.ConflictingDates,
		"advisory":         result.Advisory,
	})
}

// GetMonthGridHandler returns the calendar grid cells for a month, padded
// to whole weeks for the picker UI.
func (h *SchedulingHandler) GetMonthGridHandler(c *gin.Context) {
	monthKey := c.Param("monthKey")
	cells, err := utils.BuildMonthGrid(monthKey)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid month key", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month": monthKey,
		"cells": cells,
	})
}
