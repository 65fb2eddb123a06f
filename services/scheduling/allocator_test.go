package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninjaservices/models"
)

func testCatalog(t *testing.T) models.SlotCatalog {
	t.Helper()
	catalog, err := NewCatalog([]string{
		"9:00 AM - 11:00 AM",
		"11:00 AM - 1:00 PM",
		"1:00 PM - 3:00 PM",
	})
	require.NoError(t, err)
	return catalog
}

func TestBuildSlotBlockSameDay(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}

	result := BuildSlotBlock(2, start, catalog, nil)
	require.True(t, result.OK)
	assert.Equal(t, []models.SelectedSlot{
		{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"},
		{Date: "2024-03-01", Time: "11:00 AM - 1:00 PM"},
	}, result.Slots)
}

func TestBuildSlotBlockSpillsIntoNextDay(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}

	result := BuildSlotBlock(4, start, catalog, nil)
	require.True(t, result.OK)
	require.Len(t, result.Slots, 4)
	assert.Equal(t, models.SelectedSlot{Date: "2024-03-01", Time: "1:00 PM - 3:00 PM"}, result.Slots[2])
	assert.Equal(t, models.SelectedSlot{Date: "2024-03-02", Time: "9:00 AM - 11:00 AM"}, result.Slots[3])
}

func TestBuildSlotBlockSkipsUnavailableSlots(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}
	availability := models.AvailabilityMap{
		{Date: "2024-03-01", SlotLabel: "11:00 AM - 1:00 PM"}: models.VerdictUnavailable,
	}

	result := BuildSlotBlock(2, start, catalog, availability)
	require.True(t, result.OK)
	assert.Equal(t, []models.SelectedSlot{
		{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"},
		{Date: "2024-03-01", Time: "1:00 PM - 3:00 PM"},
	}, result.Slots)
}

func TestBuildSlotBlockConsumesUnknownSlots(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}
	availability := models.AvailabilityMap{
		{Date: "2024-03-01", SlotLabel: "11:00 AM - 1:00 PM"}: models.VerdictUnknown,
	}

	result := BuildSlotBlock(2, start, catalog, availability)
	require.True(t, result.OK)
	assert.Equal(t, "11:00 AM - 1:00 PM", result.Slots[1].Time)
}

func TestBuildSlotBlockStartSlotMayBeSkipped(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}
	availability := models.AvailabilityMap{
		start.Key(): models.VerdictUnavailable,
	}

	result := BuildSlotBlock(1, start, catalog, availability)
	require.True(t, result.OK)
	assert.Equal(t, "11:00 AM - 1:00 PM", result.Slots[0].Time)
}

func TestBuildSlotBlockFloorsUnitsAtOne(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}

	for _, units := range []int{0, -3} {
		result := BuildSlotBlock(units, start, catalog, nil)
		require.True(t, result.OK)
		assert.Len(t, result.Slots, 1)
	}
}

func TestBuildSlotBlockUnknownStartSlotFailsClosed(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "7:00 AM - 9:00 AM"}

	result := BuildSlotBlock(1, start, catalog, nil)
	assert.False(t, result.OK)
	assert.NotNil(t, result.Slots)
	assert.Empty(t, result.Slots)
	assert.Contains(t, result.Reason, "not found in catalog")
}

func TestBuildSlotBlockMalformedStartDate(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "bad-date", Time: "9:00 AM - 11:00 AM"}

	result := BuildSlotBlock(1, start, catalog, nil)
	assert.False(t, result.OK)
	assert.Empty(t, result.Slots)
}

func TestBuildSlotBlockHorizonBound(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}

	// Mark everything inside the 7-day horizon unavailable except two slots.
	availability := make(models.AvailabilityMap)
	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07"}
	for _, d := range dates {
		for _, s := range catalog {
			availability[models.SlotKey{Date: d, SlotLabel: s.Label}] = models.VerdictUnavailable
		}
	}
	delete(availability, models.SlotKey{Date: "2024-03-02", SlotLabel: "1:00 PM - 3:00 PM"})
	delete(availability, models.SlotKey{Date: "2024-03-06", SlotLabel: "9:00 AM - 11:00 AM"})

	result := BuildSlotBlock(3, start, catalog, availability)
	require.False(t, result.OK)
	// Partial block reports what was actually collectible.
	assert.Equal(t, []models.SelectedSlot{
		{Date: "2024-03-02", Time: "1:00 PM - 3:00 PM"},
		{Date: "2024-03-06", Time: "9:00 AM - 11:00 AM"},
	}, result.Slots)
	assert.Contains(t, result.Reason, "only 2 of 3 units")
}

func TestBuildSlotBlockDeterministicWalkOrder(t *testing.T) {
	catalog := testCatalog(t)
	start := models.SelectedSlot{Date: "2024-03-01", Time: "11:00 AM - 1:00 PM"}

	first := BuildSlotBlock(3, start, catalog, nil)
	second := BuildSlotBlock(3, start, catalog, nil)
	require.True(t, first.OK)
	assert.Equal(t, first.Slots, second.Slots)
	// Walk starts at the requested slot, never earlier in the day.
	assert.Equal(t, "11:00 AM - 1:00 PM", first.Slots[0].Time)
	assert.Equal(t, "2024-03-02", first.Slots[2].Date)
}
