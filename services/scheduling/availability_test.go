package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ninjaservices/models"
)

// fakeCapacity scripts per-(provider, date, slot) answers and counts calls.
type fakeCapacity struct {
	mu        sync.Mutex
	available map[string]bool  // "providerID|date|slot" -> free
	failing   map[string]error // keys that error instead
	calls     int
}

func capKey(providerID, date, slot string) string {
	return providerID + "|" + date + "|" + slot
}

func (f *fakeCapacity) CheckProviderAvailability(_ context.Context, providerID, date, timeSlot string, _ models.ServiceContext) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := capKey(providerID, date, timeSlot)
	if err, ok := f.failing[key]; ok {
		return false, err
	}
	return f.available[key], nil
}

func (f *fakeCapacity) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeDirectory serves a fixed provider list.
type fakeDirectory struct {
	providers []models.Provider
	err       error
}

func (f *fakeDirectory) ListProvidersForService(_ context.Context, _ []string, _ string, limit int) ([]models.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.providers) > limit {
		return f.providers[:limit], nil
	}
	return f.providers, nil
}

func newTestProber(cap *fakeCapacity, dir *fakeDirectory) *Prober {
	return NewProber(cap, dir, zap.NewNop())
}

func TestCheckSlotAvailabilityAnyProviderShortCircuits(t *testing.T) {
	cap := &fakeCapacity{available: map[string]bool{
		capKey("p2", "2024-03-01", "9:00 AM - 11:00 AM"): true,
	}}
	dir := &fakeDirectory{providers: []models.Provider{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}}
	p := newTestProber(cap, dir)

	v := p.CheckSlotAvailability(context.Background(), "2024-03-01", "9:00 AM - 11:00 AM", models.ServiceContext{})
	assert.Equal(t, models.VerdictAvailable, v)
	// p3 never probed once p2 answered yes.
	assert.Equal(t, 2, cap.callCount())
}

func TestCheckSlotAvailabilityNoProviders(t *testing.T) {
	p := newTestProber(&fakeCapacity{}, &fakeDirectory{})
	v := p.CheckSlotAvailability(context.Background(), "2024-03-01", "9:00 AM - 11:00 AM", models.ServiceContext{})
	assert.Equal(t, models.VerdictUnavailable, v)
}

func TestCheckSlotAvailabilityErrorsDegradeToUnknown(t *testing.T) {
	cap := &fakeCapacity{failing: map[string]error{
		capKey("p1", "2024-03-01", "9:00 AM - 11:00 AM"): errors.New("timeout"),
	}}
	dir := &fakeDirectory{providers: []models.Provider{{ID: "p1"}, {ID: "p2"}}}
	p := newTestProber(cap, dir)

	// p1 errors, p2 says busy: cannot prove unavailable.
	v := p.CheckSlotAvailability(context.Background(), "2024-03-01", "9:00 AM - 11:00 AM", models.ServiceContext{})
	assert.Equal(t, models.VerdictUnknown, v)
}

func TestCheckSlotAvailabilityDirectoryFailure(t *testing.T) {
	p := newTestProber(&fakeCapacity{}, &fakeDirectory{err: errors.New("down")})
	v := p.CheckSlotAvailability(context.Background(), "2024-03-01", "9:00 AM - 11:00 AM", models.ServiceContext{})
	assert.Equal(t, models.VerdictUnknown, v)
}

func TestCheckProviderSlot(t *testing.T) {
	cap := &fakeCapacity{available: map[string]bool{
		capKey("p1", "2024-03-01", "9:00 AM - 11:00 AM"): true,
	}}
	p := newTestProber(cap, &fakeDirectory{})

	assert.Equal(t, models.VerdictAvailable,
		p.CheckProviderSlot(context.Background(), "p1", "2024-03-01", "9:00 AM - 11:00 AM", models.ServiceContext{}))
	assert.Equal(t, models.VerdictUnavailable,
		p.CheckProviderSlot(context.Background(), "p1", "2024-03-02", "9:00 AM - 11:00 AM", models.ServiceContext{}))
}

func TestProbeSlotsCachesVerdicts(t *testing.T) {
	cap := &fakeCapacity{available: map[string]bool{
		capKey("p1", "2024-03-01", "9:00 AM - 11:00 AM"): true,
	}}
	p := newTestProber(cap, &fakeDirectory{})

	keys := []models.SlotKey{
		{Date: "2024-03-01", SlotLabel: "9:00 AM - 11:00 AM"},
		{Date: "2024-03-01", SlotLabel: "11:00 AM - 1:00 PM"},
	}
	got := p.ProbeSlots(context.Background(), "p1", keys, models.ServiceContext{})
	assert.Equal(t, models.VerdictAvailable, got[keys[0]])
	assert.Equal(t, models.VerdictUnavailable, got[keys[1]])
	first := cap.callCount()

	// Second probe over the same keys hits the cache only.
	p.ProbeSlots(context.Background(), "p1", keys, models.ServiceContext{})
	assert.Equal(t, first, cap.callCount())
}

func TestProbeSlotsResetClearsCache(t *testing.T) {
	cap := &fakeCapacity{}
	p := newTestProber(cap, &fakeDirectory{})

	keys := []models.SlotKey{{Date: "2024-03-01", SlotLabel: "9:00 AM - 11:00 AM"}}
	p.ProbeSlots(context.Background(), "p1", keys, models.ServiceContext{})
	require.Equal(t, 1, cap.callCount())

	p.Reset()
	assert.Empty(t, p.Snapshot())

	p.ProbeSlots(context.Background(), "p1", keys, models.ServiceContext{})
	assert.Equal(t, 2, cap.callCount())
}

func TestMergeDropsStaleGeneration(t *testing.T) {
	p := newTestProber(&fakeCapacity{}, &fakeDirectory{})
	gen := p.generation.Load()
	key := models.SlotKey{Date: "2024-03-01", SlotLabel: "9:00 AM - 11:00 AM"}

	p.Reset()
	p.merge(gen, key, models.VerdictAvailable)
	assert.Empty(t, p.Snapshot())

	p.merge(p.generation.Load(), key, models.VerdictAvailable)
	assert.Equal(t, models.VerdictAvailable, p.Snapshot()[key])
}

func TestMergeIsAppendOnlyWithinGeneration(t *testing.T) {
	p := newTestProber(&fakeCapacity{}, &fakeDirectory{})
	gen := p.generation.Load()
	key := models.SlotKey{Date: "2024-03-01", SlotLabel: "9:00 AM - 11:00 AM"}

	p.merge(gen, key, models.VerdictUnavailable)
	p.merge(gen, key, models.VerdictAvailable)
	assert.Equal(t, models.VerdictUnavailable, p.Snapshot()[key])
}

func TestCheckSeriesAvailabilityConflictsAndAdvisory(t *testing.T) {
	cap := &fakeCapacity{
		available: map[string]bool{
			capKey("p1", "2024-03-02", "9:00 AM - 11:00 AM"): true,
			capKey("p1", "2024-03-16", "9:00 AM - 11:00 AM"): true,
		},
		failing: map[string]error{
			capKey("p1", "2024-03-23", "9:00 AM - 11:00 AM"): errors.New("timeout"),
		},
	}
	p := newTestProber(cap, &fakeDirectory{})

	occs := []models.Occurrence{
		{Date: "2024-03-02", Time: "9:00 AM - 11:00 AM"},
		{Date: "2024-03-09", Time: "9:00 AM - 11:00 AM"}, // busy -> conflict
		{Date: "2024-03-16", Time: "9:00 AM - 11:00 AM"},
		{Date: "2024-03-23", Time: "9:00 AM - 11:00 AM"}, // errors -> advisory only
	}
	result := p.CheckSeriesAvailability(context.Background(), "p1", occs, models.ServiceContext{})
	assert.False(t, result.OK)
	assert.Equal(t, []string{"2024-03-09"}, result.ConflictingDates)
	assert.NotEmpty(t, result.Advisory)
}

func TestCheckSeriesAvailabilityAllClear(t *testing.T) {
	cap := &fakeCapacity{available: map[string]bool{
		capKey("p1", "2024-03-02", "9:00 AM - 11:00 AM"): true,
		capKey("p1", "2024-03-09", "9:00 AM - 11:00 AM"): true,
	}}
	p := newTestProber(cap, &fakeDirectory{})

	occs := []models.Occurrence{
		{Date: "2024-03-02", Time: "9:00 AM - 11:00 AM"},
		{Date: "2024-03-09", Time: "9:00 AM - 11:00 AM"},
	}
	result := p.CheckSeriesAvailability(context.Background(), "p1", occs, models.ServiceContext{})
	assert.True(t, result.OK)
	assert.Empty(t, result.ConflictingDates)
	assert.Empty(t, result.Advisory)
}

func TestCheckSeriesAvailabilityCapsProbedOccurrences(t *testing.T) {
	cap := &fakeCapacity{}
	p := newTestProber(cap, &fakeDirectory{})

	occs := make([]models.Occurrence, 50)
	for i := range occs {
		occs[i] = models.Occurrence{Date: "2024-03-01", Time: "9:00 AM - 11:00 AM"}
	}
	p.CheckSeriesAvailability(context.Background(), "p1", occs, models.ServiceContext{})
	assert.Equal(t, seriesProbeLimit, cap.callCount())
}
