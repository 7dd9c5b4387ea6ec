package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"myinventory/domain"
	"myinventory/helpers"
	"myinventory/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// regionData is everything cached about one region.
// mu guards records, idIndex, the timestamps and generation. Writers are always inside the
// validation lock; mu only keeps concurrent window extraction from observing a half-applied write.
type regionData struct {
	mu                sync.RWMutex
	records           []domain.InstanceRecord
	idIndex           map[string]int
	lastFullRefresh   time.Time
	lastValidityCheck time.Time
	generation        uint64

	windows *WindowCache
}

// RegionState is a point-in-time view of a region used by the freshness validator.
type RegionState struct {
	Records           int
	WindowsEmpty      bool
	LastFullRefresh   time.Time
	LastValidityCheck time.Time
	Generation        uint64
}

// RegionStore owns the per-region record collections and their window caches.
// Regions are created lazily and kept for the life of the process.
type RegionStore struct {
	source         interfaces.InventorySource
	clock          interfaces.TimeProvider
	windowCapacity int
	ticks          *TickSource
	metrics        *Metrics
	logger         log.Logger

	mu      sync.Mutex
	regions map[string]*regionData
}

// NewRegionStore creates an empty store. Panics on nil dependencies or non-positive windowCapacity.
//
// Parameters: source is where records are fetched from; clock stamps refresh times;
// windowCapacity bounds the number of cached windows per region.
//
// Called from cmd/main; the store is shared by the validator and the page service.
func NewRegionStore(
	source interfaces.InventorySource,
	clock interfaces.TimeProvider,
	windowCapacity int,
	metrics *Metrics,
	logger log.Logger,
) *RegionStore {
	return &RegionStore{
		source:         helpers.NilPanic(source, "service.region_store.go: source is required"),
		clock:          helpers.NilPanic(clock, "service.region_store.go: clock is required"),
		windowCapacity: helpers.PositivePanic(windowCapacity, "service.region_store.go: windowCapacity must be positive"),
		ticks:          &TickSource{},
		metrics:        helpers.NilPanic(metrics, "service.region_store.go: metrics is required"),
		logger:         log.With(helpers.NilPanic(logger, "service.region_store.go: logger is required"), "component", "region_store"),
		regions:        make(map[string]*regionData),
	}
}

func (s *RegionStore) lookup(region string) (*regionData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rd, ok := s.regions[region]
	return rd, ok
}

func (s *RegionStore) getOrCreate(region string) *regionData {
	s.mu.Lock()
	defer s.mu.Unlock()
	rd, ok := s.regions[region]
	if !ok {
		rd = &regionData{
			idIndex: map[string]int{},
			windows: NewWindowCache(s.windowCapacity, s.ticks, s.metrics),
		}
		s.regions[region] = rd
	}
	return rd
}

// Regions returns the names of all regions seen so far, sorted.
func (s *RegionStore) Regions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.regions))
	for name := range s.regions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// State returns the current state of region, or false if the region was never loaded.
func (s *RegionStore) State(region string) (RegionState, bool) {
	rd, ok := s.lookup(region)
	if !ok {
		return RegionState{}, false
	}
	rd.mu.RLock()
	defer rd.mu.RUnlock()
	return RegionState{
		Records:           len(rd.records),
		WindowsEmpty:      rd.windows.IsEmpty(),
		LastFullRefresh:   rd.lastFullRefresh,
		LastValidityCheck: rd.lastValidityCheck,
		Generation:        rd.generation,
	}, true
}

// EnsureFullData fetches every record of the region and replaces the collection and id index.
// The new collection is built completely before it is swapped in, so a failed fetch leaves the
// region untouched. A successful refresh clears the region's windows because order and
// membership may have changed; the first one also seeds the last-validity-check time.
//
// Returns: nil on success; fetch_error or service_unavailable when the source call fails.
//
// Called from freshnessValidator under the validation lock.
func (s *RegionStore) EnsureFullData(ctx context.Context, region string) error {
	fetched, err := s.source.ListInstances(ctx, region)
	if err != nil {
		return s.sourceError("list_instances", region, err)
	}

	records := make([]domain.InstanceRecord, len(fetched))
	idIndex := make(map[string]int, len(fetched))
	for i, r := range fetched {
		records[i] = r.Clone()
		idIndex[r.ID] = i
	}
	now := s.clock.Now()

	rd := s.getOrCreate(region)
	rd.mu.Lock()
	defer rd.mu.Unlock()
	rd.records = records
	rd.idIndex = idIndex
	rd.lastFullRefresh = now
	if rd.lastValidityCheck.IsZero() {
		rd.lastValidityCheck = now
	}
	rd.generation++
	rd.windows.Clear()

	level.Debug(s.logger).Log("msg", "region refreshed", "region", region, "records", len(records), "generation", rd.generation)
	return nil
}

// PatchStatuses fetches status-only records and overwrites State of every known instance in place.
// Instances missing from the id index are ignored and no other field is touched. Cached windows are
// not invalidated, so they may show a stale state until the next full refresh.
//
// Returns: (number of patched records, nil) on success; (0, err) when the source call fails.
//
// Called from freshnessValidator under the validation lock.
func (s *RegionStore) PatchStatuses(ctx context.Context, region string) (int, error) {
	statuses, err := s.source.ListStatuses(ctx, region)
	if err != nil {
		return 0, s.sourceError("list_statuses", region, err)
	}
	rd, ok := s.lookup(region)
	if !ok {
		return 0, nil
	}

	rd.mu.Lock()
	defer rd.mu.Unlock()
	patched := 0
	for _, st := range statuses {
		i, ok := rd.idIndex[st.ID]
		if !ok || i >= len(rd.records) {
			continue
		}
		var state *string
		if st.State != nil {
			state = helpers.Ptr(*st.State)
		}
		rd.records[i].State = state
		patched++
	}
	return patched, nil
}

// MarkValidityCheck records t as the time of the last change-event query of region.
func (s *RegionStore) MarkValidityCheck(region string, t time.Time) {
	rd, ok := s.lookup(region)
	if !ok {
		return
	}
	rd.mu.Lock()
	defer rd.mu.Unlock()
	rd.lastValidityCheck = t
}

// ReadRecords calls fn with the region's records and their generation while holding the region read
// lock. fn must not retain or modify records.
//
// Returns: false if the region does not exist (fn is not called).
func (s *RegionStore) ReadRecords(region string, fn func(records []domain.InstanceRecord, generation uint64)) bool {
	rd, ok := s.lookup(region)
	if !ok {
		return false
	}
	rd.mu.RLock()
	defer rd.mu.RUnlock()
	fn(rd.records, rd.generation)
	return true
}

// Windows returns the window cache of region, or nil if the region does not exist.
func (s *RegionStore) Windows(region string) *WindowCache {
	rd, ok := s.lookup(region)
	if !ok {
		return nil
	}
	return rd.windows
}

// StoreWindow caches records under key if the region is still at the given generation, so a window
// extracted before a full refresh never lands in the cache after it.
//
// Returns: the stored window and true; or an untracked window and false when the generation moved on.
func (s *RegionStore) StoreWindow(region string, generation uint64, key domain.CacheKey, records []domain.InstanceRecord) (domain.Window, bool) {
	rd, ok := s.lookup(region)
	if !ok {
		return domain.Window{Records: records}, false
	}
	rd.mu.RLock()
	defer rd.mu.RUnlock()
	if rd.generation != generation {
		return domain.Window{Records: records}, false
	}
	return rd.windows.Set(key, records), true
}

// sourceError converts a failed inventory source call into the core error taxonomy.
func (s *RegionStore) sourceError(operation, region string, err error) error {
	s.metrics.sourceErrors.WithLabelValues(operation).Inc()
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewServiceUnavailableError("inventory source did not answer in time",
			fmt.Errorf("%s for region %s, err: %w", operation, region, err))
	}
	return NewFetchError("inventory source request failed",
		fmt.Errorf("%s for region %s, err: %w", operation, region, err))
}
