package scheduling

import (
	"fmt"

	"ninjaservices/models"
	"ninjaservices/utils"
)

// allocationHorizonDays caps how far the allocator searches past the
// requested start date. It never searches indefinitely.
const allocationHorizonDays = 7

// BlockResult is the outcome of a slot-block allocation. When OK is false,
// Slots holds the partial block actually collected and Reason says why the
// request could not be satisfied.
type BlockResult struct {
	OK     bool                  `json:"ok"`
	Slots  []models.SelectedSlot `json:"slots"`
	Reason string                `json:"reason,omitempty"`
}

// BuildSlotBlock turns "N contiguous units starting at slot S on date D"
// into a concrete list of (date, slot) reservations. It walks the catalog
// forward from the start slot, spilling into subsequent days when a day's
// catalog is exhausted, and skips slots the availability map explicitly
// marks unavailable. Unknown and unprobed slots are consumed as usual.
//
// The walk order (day ascending, then catalog index ascending) is a
// correctness property: it defines which block is chosen when several are
// possible. Single pass, no side effects.
func BuildSlotBlock(requiredUnits int, start models.SelectedSlot, catalog models.SlotCatalog, availability models.AvailabilityMap) BlockResult {
	if requiredUnits < 1 {
		requiredUnits = 1
	}

	startIdx := catalog.IndexOf(start.Time)
	if startIdx < 0 {
		return BlockResult{
			OK:     false,
			Slots:  []models.SelectedSlot{},
			Reason: fmt.Sprintf("start slot %q not found in catalog", start.Time),
		}
	}

	dates, err := utils.DateRange(start.Date, allocationHorizonDays)
	if err != nil {
		return BlockResult{
			OK:     false,
			Slots:  []models.SelectedSlot{},
			Reason: fmt.Sprintf("invalid start date: %v", err),
		}
	}

	remaining := requiredUnits
	slots := make([]models.SelectedSlot, 0, requiredUnits)

	for dayIdx, date := range dates {
		idx := 0
		if dayIdx == 0 {
			idx = startIdx
		}
		for ; idx < len(catalog); idx++ {
			key := models.SlotKey{Date: date, SlotLabel: catalog[idx].Label}
			if availability[key] == models.VerdictUnavailable {
				continue
			}
			slots = append(slots, models.SelectedSlot{Date: date, Time: catalog[idx].Label})
			remaining--
			if remaining == 0 {
				return BlockResult{OK: true, Slots: slots}
			}
		}
	}

	return BlockResult{
		OK:    false,
		Slots: slots,
		Reason: fmt.Sprintf("only %d of %d units available within %d days of %s",
			len(slots), requiredUnits, allocationHorizonDays, start.Date),
	}
}
