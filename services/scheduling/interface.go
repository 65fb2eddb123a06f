package scheduling

import (
	"context"

	"ninjaservices/models"
	"ninjaservices/utils"

	"go.uber.org/zap"
)

// SchedulingService is the composite surface the booking flow and the API
// handlers consume: probing plus allocation, and package expansion plus
// series validation.
type SchedulingService interface {
	// AllocateBlock probes the allocator's 7-day horizon for the plan's
	// catalog and builds the contiguous block. An empty providerID selects
	// any-provider probing (service flow).
	AllocateBlock(ctx context.Context, providerID string, plan models.ServicePlan, start models.SelectedSlot) (BlockResult, models.AvailabilityMap, error)
	// ExpandPackage expands a recurring schedule into occurrences and
	// validates the series against the chosen provider. Conflicting dates
	// in a confirmed selection are dropped from the returned occurrences;
	// the SeriesResult names them so the UI can force replacements.
	ExpandPackage(ctx context.Context, providerID string, schedule models.RecurringSchedule, sel RecurringSelection, svc models.ServiceContext) ([]models.Occurrence, models.SeriesResult, error)
	// ResetAvailability clears the probing session (service or provider
	// change). Must complete before new probing begins.
	ResetAvailability()
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Prober *Prober
	Logger *zap.Logger
}

func (s *DefaultSchedulingService) AllocateBlock(ctx context.Context, providerID string, plan models.ServicePlan, start models.SelectedSlot) (BlockResult, models.AvailabilityMap, error) {
	catalog, err := CatalogFor(plan.BookingType)
	if err != nil {
		return BlockResult{}, nil, err
	}

	keys, err := horizonKeys(start.Date, catalog)
	if err != nil {
		// Malformed start date is infeasibility, not an internal error.
		return BlockResult{OK: false, Slots: []models.SelectedSlot{}, Reason: err.Error()}, nil, nil
	}

	svc := models.ServiceContext{
		ServiceIDs: plan.ServiceIDs,
		CategoryID: plan.CategoryID,
		Units:      plan.Units,
	}
	availability := s.Prober.ProbeSlots(ctx, providerID, keys, svc)

	result := BuildSlotBlock(plan.Units, start, catalog, availability)
	if !result.OK {
		s.Logger.Info("slot block infeasible",
			zap.String("bookingType", plan.BookingType),
			zap.String("startDate", start.Date),
			zap.String("reason", result.Reason))
	}
	return result, availability, nil
}

func (s *DefaultSchedulingService) ExpandPackage(ctx context.Context, providerID string, schedule models.RecurringSchedule, sel RecurringSelection, svc models.ServiceContext) ([]models.Occurrence, models.SeriesResult, error) {
	occurrences, err := GenerateOccurrences(schedule.Unit, sel, schedule.TimeSlot)
	if err != nil {
		return nil, models.SeriesResult{}, err
	}

	result := s.Prober.CheckSeriesAvailability(ctx, providerID, occurrences, svc)
	if !result.OK && sel.IsConfirmed() {
		kept := make([]models.Occurrence, 0, len(occurrences))
		blocked := make(map[string]struct{}, len(result.ConflictingDates))
		for _, d := range result.ConflictingDates {
			blocked[d] = struct{}{}
		}
		for _, occ := range occurrences {
			if _, bad := blocked[occ.Date]; !bad {
				kept = append(kept, occ)
			}
		}
		occurrences = kept
	}
	return occurrences, result, nil
}

func (s *DefaultSchedulingService) ResetAvailability() {
	s.Prober.Reset()
}

// horizonKeys enumerates every (date, slot) pair inside the allocator's
// visible horizon, in walk order.
func horizonKeys(startDate string, catalog models.SlotCatalog) ([]models.SlotKey, error) {
	dates, err := utils.DateRange(startDate, allocationHorizonDays)
	if err != nil {
		return nil, err
	}
	keys := make([]models.SlotKey, 0, len(dates)*len(catalog))
	for _, date := range dates {
		for _, slot := range catalog {
			keys = append(keys, models.SlotKey{Date: date, SlotLabel: slot.Label})
		}
	}
	return keys, nil
}
