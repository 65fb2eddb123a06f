package scheduling

import (
	"context"
	"sync"
	"sync/atomic"

	"ninjaservices/models"

	"go.uber.org/zap"
)

const (
	// providerSampleLimit bounds how many candidate providers a single
	// any-provider probe may touch.
	providerSampleLimit = 12
	// seriesProbeLimit bounds how many occurrences of a recurring series
	// are probed.
	seriesProbeLimit = 40
	// probeWorkers is the fixed concurrency of a probing fan-out.
	probeWorkers = 3
)

// CapacityLookup answers whether one provider can take one (date, slot).
// Assumed remote and possibly slow; errors are tolerated and degrade the
// verdict to unknown.
type CapacityLookup interface {
	CheckProviderAvailability(ctx context.Context, providerID, date, timeSlot string, svc models.ServiceContext) (bool, error)
}

// ProviderDirectory discovers candidate providers for the any-provider
// probing mode.
type ProviderDirectory interface {
	ListProvidersForService(ctx context.Context, serviceIDs []string, categoryID string, limit int) ([]models.Provider, error)
}

// Prober decides whether capacity exists for slots and occurrence series.
// Verdicts are cached per (date, slot) with append-only merges; a Reset
// invalidates all in-flight work via a request generation so stale probe
// results are dropped rather than mixed into a newer session.
type Prober struct {
	Lookup    CapacityLookup
	Directory ProviderDirectory
	Logger    *zap.Logger

	generation atomic.Uint64
	mu         sync.Mutex
	verdicts   models.AvailabilityMap
}

func NewProber(lookup CapacityLookup, directory ProviderDirectory, logger *zap.Logger) *Prober {
	return &Prober{
		Lookup:    lookup,
		Directory: directory,
		Logger:    logger,
		verdicts:  make(models.AvailabilityMap),
	}
}

// Reset atomically discards cached verdicts and invalidates in-flight
// probes. Call before probing a different provider or service context.
func (p *Prober) Reset() {
	p.mu.Lock()
	p.verdicts = make(models.AvailabilityMap)
	p.generation.Add(1)
	p.mu.Unlock()
}

// Snapshot returns a copy of the current verdict cache.
func (p *Prober) Snapshot() models.AvailabilityMap {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(models.AvailabilityMap, len(p.verdicts))
	for k, v := range p.verdicts {
		out[k] = v
	}
	return out
}

// merge records a verdict unless the generation went stale or the key
// already has one (append-only; first write wins within a generation).
func (p *Prober) merge(gen uint64, key models.SlotKey, v models.Verdict) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation.Load() != gen {
		return
	}
	if _, exists := p.verdicts[key]; exists {
		return
	}
	p.verdicts[key] = v
}

// CheckSlotAvailability is the service-flow probe: a slot is available
// when ANY qualifying provider has free capacity. Candidates are capped
// and the scan short-circuits on the first match. Lookup errors degrade
// the verdict to unknown rather than blocking the flow.
func (p *Prober) CheckSlotAvailability(ctx context.Context, date, timeSlot string, svc models.ServiceContext) models.Verdict {
	providers, err := p.Directory.ListProvidersForService(ctx, svc.ServiceIDs, svc.CategoryID, providerSampleLimit)
	if err != nil {
		p.Logger.Warn("provider discovery failed, treating slot as unknown",
			zap.String("date", date), zap.String("slot", timeSlot), zap.Error(err))
		return models.VerdictUnknown
	}
	if len(providers) == 0 {
		return models.VerdictUnavailable
	}

	sawError := false
	for _, prov := range providers {
		available, err := p.Lookup.CheckProviderAvailability(ctx, prov.ID, date, timeSlot, svc)
		if err != nil {
			sawError = true
			p.Logger.Warn("capacity lookup failed",
				zap.String("providerId", prov.ID), zap.String("date", date), zap.Error(err))
			continue
		}
		if available {
			return models.VerdictAvailable
		}
	}
	if sawError {
		return models.VerdictUnknown
	}
	return models.VerdictUnavailable
}

// CheckProviderSlot is the package-flow probe, scoped to exactly one
// pre-chosen provider.
func (p *Prober) CheckProviderSlot(ctx context.Context, providerID, date, timeSlot string, svc models.ServiceContext) models.Verdict {
	available, err := p.Lookup.CheckProviderAvailability(ctx, providerID, date, timeSlot, svc)
	if err != nil {
		p.Logger.Warn("capacity lookup failed, treating slot as unknown",
			zap.String("providerId", providerID), zap.String("date", date), zap.Error(err))
		return models.VerdictUnknown
	}
	if available {
		return models.VerdictAvailable
	}
	return models.VerdictUnavailable
}

// ProbeSlots resolves verdicts for the given keys with a fixed worker
// pool, skipping keys already cached. An empty providerID selects the
// any-provider mode; otherwise probing is scoped to that provider.
// Results landing after a Reset are discarded (last request wins).
func (p *Prober) ProbeSlots(ctx context.Context, providerID string, keys []models.SlotKey, svc models.ServiceContext) models.AvailabilityMap {
	gen := p.generation.Load()

	cached := p.Snapshot()
	pending := make([]models.SlotKey, 0, len(keys))
	for _, key := range keys {
		if _, ok := cached[key]; !ok {
			pending = append(pending, key)
		}
	}

	jobs := make(chan models.SlotKey)
	var wg sync.WaitGroup
	for w := 0; w < probeWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				var v models.Verdict
				if providerID == "" {
					v = p.CheckSlotAvailability(ctx, key.Date, key.SlotLabel, svc)
				} else {
					v = p.CheckProviderSlot(ctx, providerID, key.Date, key.SlotLabel, svc)
				}
				p.merge(gen, key, v)
			}
		}()
	}
	for _, key := range pending {
		jobs <- key
	}
	close(jobs)
	wg.Wait()

	return p.Snapshot()
}

// CheckSeriesAvailability probes every occurrence of a recurring series
// (capped) against the chosen provider. Any explicitly unavailable date is
// a conflict; lookup failures degrade to unknown and only produce a soft
// advisory.
func (p *Prober) CheckSeriesAvailability(ctx context.Context, providerID string, occurrences []models.Occurrence, svc models.ServiceContext) models.SeriesResult {
	probed := occurrences
	if len(probed) > seriesProbeLimit {
		probed = probed[:seriesProbeLimit]
	}

	verdicts := make([]models.Verdict, len(probed))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < probeWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				occ := probed[i]
				verdicts[i] = p.CheckProviderSlot(ctx, providerID, occ.Date, occ.Time, svc)
			}
		}()
	}
	for i := range probed {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := models.SeriesResult{OK: true}
	unknowns := 0
	for i, v := range verdicts {
		switch v {
		case models.VerdictUnavailable:
			result.OK = false
			result.ConflictingDates = append(result.ConflictingDates, probed[i].Date)
		case models.VerdictUnknown:
			unknowns++
		}
	}
	if unknowns > 0 {
		result.Advisory = "some dates could not be verified; availability is not guaranteed"
	}
	return result
}
