package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninjaservices/models"
	"ninjaservices/utils"
)

const slot9to11 = "9:00 AM - 11:00 AM"

func TestNewRecurringScheduleDerivesWeekday(t *testing.T) {
	sched, err := NewRecurringSchedule(models.RecurWeekly, "2024-03-04", slot9to11) // Monday
	require.NoError(t, err)
	assert.Equal(t, 1, sched.Weekday)
	assert.Equal(t, "2024-03-04", sched.AnchorDate)

	_, err = NewRecurringSchedule(models.RecurrenceUnit("fortnight"), "2024-03-04", slot9to11)
	assert.Error(t, err)

	_, err = NewRecurringSchedule(models.RecurWeekly, "not-a-date", slot9to11)
	assert.Error(t, err)
}

func TestGenerateOccurrencesDailyPrefill(t *testing.T) {
	occs, err := GenerateOccurrences(models.RecurDaily, Prefill("2024-02-27"), slot9to11)
	require.NoError(t, err)
	require.Len(t, occs, 28)
	assert.Equal(t, "2024-02-27", occs[0].Date)
	assert.Equal(t, "2024-02-29", occs[2].Date) // leap day
	assert.Equal(t, "2024-03-25", occs[27].Date)
	for _, occ := range occs {
		assert.Equal(t, slot9to11, occ.Time)
	}
}

func TestGenerateOccurrencesWeeklyAndMonthlyPrefillCounts(t *testing.T) {
	weekly, err := GenerateOccurrences(models.RecurWeekly, Prefill("2024-03-01"), slot9to11)
	require.NoError(t, err)
	assert.Len(t, weekly, 7)

	monthly, err := GenerateOccurrences(models.RecurMonthly, Prefill("2024-03-01"), slot9to11)
	require.NoError(t, err)
	assert.Len(t, monthly, 30)
}

func TestGenerateOccurrencesConfirmedSelection(t *testing.T) {
	dates := []string{
		"2024-03-09", "2024-03-02", "2024-03-16", "2024-03-23",
		"2024-03-30", "2024-04-06", "2024-04-13",
	}
	occs, err := GenerateOccurrences(models.RecurWeekly, Confirmed(dates), slot9to11)
	require.NoError(t, err)
	require.Len(t, occs, 7)
	// Order-normalized ascending regardless of input order.
	assert.Equal(t, "2024-03-02", occs[0].Date)
	assert.Equal(t, "2024-04-13", occs[6].Date)
}

func TestGenerateOccurrencesConfirmedCardinality(t *testing.T) {
	_, err := GenerateOccurrences(models.RecurWeekly, Confirmed([]string{"2024-03-02"}), slot9to11)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 7")
}

func TestGenerateOccurrencesConfirmedRejectsDuplicates(t *testing.T) {
	dates := []string{
		"2024-03-02", "2024-03-02", "2024-03-16", "2024-03-23",
		"2024-03-30", "2024-04-06", "2024-04-13",
	}
	_, err := GenerateOccurrences(models.RecurWeekly, Confirmed(dates), slot9to11)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestGenerateOccurrencesDailyRejectsConfirmed(t *testing.T) {
	dates, err := utils.DateRange("2024-03-01", 28)
	require.NoError(t, err)
	_, err = GenerateOccurrences(models.RecurDaily, Confirmed(dates), slot9to11)
	assert.Error(t, err)
}

func TestDropConflictingDates(t *testing.T) {
	dates := []string{"2024-03-02", "2024-03-09", "2024-03-16"}
	kept := DropConflictingDates(dates, []string{"2024-03-09"})
	assert.Equal(t, []string{"2024-03-02", "2024-03-16"}, kept)

	kept = DropConflictingDates(dates, nil)
	assert.Equal(t, dates, kept)
}
