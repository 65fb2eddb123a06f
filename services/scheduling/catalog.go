package scheduling

import (
	"fmt"

	"ninjaservices/models"
	"ninjaservices/utils"
)

// defaultSlotLabels are the fixed windows offered when a booking type has
// no catalog of its own. Order here is the booking order, not clock order.
var defaultSlotLabels = []string{
	"9:00 AM - 11:00 AM",
	"11:00 AM - 1:00 PM",
	"1:00 PM - 3:00 PM",
	"3:00 PM - 5:00 PM",
	"5:00 PM - 7:00 PM",
}

// perTypeSlotLabels overrides the default windows for booking types with
// their own operating hours.
var perTypeSlotLabels = map[string][]string{
	"carwash": {
		"8:00 AM - 9:00 AM",
		"9:00 AM - 10:00 AM",
		"10:00 AM - 11:00 AM",
		"11:00 AM - 12:00 PM",
		"2:00 PM - 3:00 PM",
		"3:00 PM - 4:00 PM",
		"4:00 PM - 5:00 PM",
	},
	"health": {
		"8:00 AM - 10:00 AM",
		"10:00 AM - 12:00 PM",
		"2:00 PM - 4:00 PM",
		"4:00 PM - 6:00 PM",
	},
}

// NewCatalog builds a slot catalog from display labels, parsing each label
// into its clock window. Label order is preserved as the catalog order.
func NewCatalog(labels []string) (models.SlotCatalog, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("slot catalog cannot be empty")
	}
	catalog := make(models.SlotCatalog, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("duplicate slot label %q", label)
		}
		seen[label] = struct{}{}
		start, end, err := utils.ParseSlotWindow(label)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, models.Slot{Label: label, Start: start, End: end})
	}
	return catalog, nil
}

// CatalogFor returns the slot catalog for a booking type.
func CatalogFor(bookingType string) (models.SlotCatalog, error) {
	labels, ok := perTypeSlotLabels[bookingType]
	if !ok {
		labels = defaultSlotLabels
	}
	return NewCatalog(labels)
}
