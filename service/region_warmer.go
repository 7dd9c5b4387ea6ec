package service

import (
	"context"
	"sync"
	"time"

	"myinventory/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// RegionWarmer validates a fixed set of regions in the background so the first request for a region
// does not pay for the initial full fetch, and cached regions keep their status patches current.
type RegionWarmer struct {
	validator *FreshnessValidator
	regions   []string
	interval  time.Duration
	logger    log.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRegionWarmer runs the first warm-up pass synchronously and then starts a goroutine repeating it
// every interval. Each validation is bounded by the validator's own timeout. Failures are logged and
// retried at the next tick. Panics on nil validator or logger or a non-positive interval.
//
// Called from cmd/main when PREWARM_REGIONS is set.
func NewRegionWarmer(validator *FreshnessValidator, regions []string, interval time.Duration, logger log.Logger) *RegionWarmer {
	if interval <= 0 {
		panic("service.region_warmer.go: interval must be positive")
	}
	w := &RegionWarmer{
		validator: helpers.NilPanic(validator, "service.region_warmer.go: validator is required"),
		regions:   regions,
		interval:  interval,
		logger:    log.With(helpers.NilPanic(logger, "service.region_warmer.go: logger is required"), "component", "region_warmer"),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	w.warm()
	go w.warmLoop()
	return w
}

// Close stops the background loop and waits for a running pass to finish.
func (w *RegionWarmer) Close() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *RegionWarmer) warmLoop() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.warm()
		}
	}
}

func (w *RegionWarmer) warm() {
	for _, region := range w.regions {
		outcome, err := w.validator.Validate(context.Background(), region)
		if err != nil {
			level.Warn(w.logger).Log("msg", "region warm-up failed", "region", region, "err", err)
			continue
		}
		level.Debug(w.logger).Log("msg", "region warmed", "region", region, "outcome", outcome)
	}
}
