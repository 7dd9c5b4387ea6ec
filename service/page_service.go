package service

import (
	"context"
	"fmt"
	"time"

	"myinventory/domain"
	"myinventory/helpers"
	"myinventory/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/singleflight"
)

// pageService implements interfaces.PageService on top of the region store: validate the region,
// look the aligned window up in its cache and extract it on a miss.
type pageService struct {
	store      *RegionStore
	validator  *FreshnessValidator
	windowSize int
	metrics    *Metrics
	logger     log.Logger

	extracts singleflight.Group
}

// NewPageService creates the page service. Panics on nil dependencies or non-positive windowSize.
//
// Parameter windowSize is W, the number of records per cached window. Every page must fit in one window.
//
// Called from cmd/main; used by handlers.HTTPServer.
func NewPageService(store *RegionStore, validator *FreshnessValidator, windowSize int, metrics *Metrics, logger log.Logger) interfaces.PageService {
	return &pageService{
		store:      helpers.NilPanic(store, "service.page_service.go: store is required"),
		validator:  helpers.NilPanic(validator, "service.page_service.go: validator is required"),
		windowSize: helpers.PositivePanic(windowSize, "service.page_service.go: windowSize must be positive"),
		metrics:    helpers.NilPanic(metrics, "service.page_service.go: metrics is required"),
		logger:     log.With(helpers.NilPanic(logger, "service.page_service.go: logger is required"), "component", "page_service"),
	}
}

func (p *pageService) WindowSize() int {
	return p.windowSize
}

// GetPage returns records [start, end) of region ordered by (sortKey, direction).
// Without a sort key the fetch order is returned and direction is ignored.
func (p *pageService) GetPage(ctx context.Context, region string, sortKey domain.SortKey, direction domain.Direction, start, end int) ([]domain.InstanceRecord, error) {
	if start < 0 || end < start {
		return nil, NewBadParameterError(fmt.Sprintf("invalid range [%d, %d)", start, end), nil)
	}
	windowStart := start / p.windowSize * p.windowSize
	if end > windowStart+p.windowSize {
		return nil, NewBadParameterError(fmt.Sprintf("range [%d, %d) spans more than one window of %d", start, end, p.windowSize), nil)
	}
	if sortKey == domain.SortKeyNone {
		direction = domain.Ascending
	}

	if _, err := p.validator.Validate(ctx, region); err != nil {
		return nil, fmt.Errorf("getPage failed to validate region %s, err: %w", region, err)
	}

	window, err := p.window(region, domain.CacheKey{SortKey: sortKey, Direction: direction, WindowStart: windowStart})
	if err != nil {
		return nil, err
	}

	n := len(window.Records)
	lo, hi := min(start-windowStart, n), min(end-windowStart, n)
	return window.Records[lo:hi:hi], nil
}

// window returns the cached window for key or extracts and caches it. Concurrent misses on the same
// key share one extraction.
func (p *pageService) window(region string, key domain.CacheKey) (domain.Window, error) {
	windows := p.store.Windows(region)
	if windows == nil {
		return domain.Window{}, NewInternalServerError("region vanished after validation", nil)
	}
	if w, ok := windows.Get(key); ok {
		p.metrics.windowHits.Inc()
		return w, nil
	}
	p.metrics.windowMisses.Inc()

	flightKey := fmt.Sprintf("%s|%s|%d|%d", region, key.SortKey, key.Direction, key.WindowStart)
	v, err, _ := p.extracts.Do(flightKey, func() (any, error) {
		began := time.Now()
		var (
			records    []domain.InstanceRecord
			generation uint64
		)
		p.store.ReadRecords(region, func(all []domain.InstanceRecord, gen uint64) {
			records = ExtractWindow(all, key.SortKey, key.Direction, key.WindowStart, p.windowSize)
			generation = gen
		})
		p.metrics.windowCompute.Observe(time.Since(began).Seconds())

		w, stored := p.store.StoreWindow(region, generation, key, records)
		if !stored {
			level.Debug(p.logger).Log("msg", "window extracted from a superseded generation, not cached", "region", region, "window_start", key.WindowStart)
		}
		return w, nil
	})
	if err != nil {
		return domain.Window{}, err
	}
	return v.(domain.Window), nil
}
