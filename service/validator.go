package service

import (
	"context"
	"sync"
	"time"

	"myinventory/helpers"
	"myinventory/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/semaphore"
)

// Outcome is the action a validation took.
type Outcome string

const (
	// OutcomeFullFetch: the region had no records and was fetched in full.
	OutcomeFullFetch Outcome = "full_fetch"
	// OutcomeSkip: the region has no cached windows, so there is nothing to keep fresh.
	OutcomeSkip Outcome = "skip"
	// OutcomeStatusPatch: the TTL has not elapsed; only statuses were patched.
	OutcomeStatusPatch Outcome = "status_patch"
	// OutcomeStructuralRefresh: change events were reported; the region was fetched in full.
	OutcomeStructuralRefresh Outcome = "structural_refresh"
	// OutcomeEventCheckPatch: no change events were reported; only statuses were patched.
	OutcomeEventCheckPatch Outcome = "event_check_patch"
)

// ValidatorConfig tunes the freshness validator.
type ValidatorConfig struct {
	// TTL is the minimum interval between change-event queries of one region.
	TTL time.Duration
	// Timeout bounds one validation, lock wait included. Zero means no bound beyond the caller's context.
	Timeout time.Duration
	// StripeByRegion gives every region its own lock instead of one process-wide lock.
	StripeByRegion bool
}

// FreshnessValidator decides per request whether a region needs nothing, a status patch or a full
// refetch. It is the only writer of region data, and every validation runs under one lock.
type FreshnessValidator struct {
	store   *RegionStore
	source  interfaces.InventorySource
	clock   interfaces.TimeProvider
	cfg     ValidatorConfig
	locks   *validationLocks
	metrics *Metrics
	logger  log.Logger
}

// NewFreshnessValidator creates a validator over store. Panics on nil dependencies or non-positive TTL.
//
// Called from cmd/main; used by pageService.GetPage before every cache read.
func NewFreshnessValidator(
	store *RegionStore,
	source interfaces.InventorySource,
	clock interfaces.TimeProvider,
	cfg ValidatorConfig,
	metrics *Metrics,
	logger log.Logger,
) *FreshnessValidator {
	if cfg.TTL <= 0 {
		panic("service.validator.go: TTL must be positive")
	}
	return &FreshnessValidator{
		store:   helpers.NilPanic(store, "service.validator.go: store is required"),
		source:  helpers.NilPanic(source, "service.validator.go: source is required"),
		clock:   helpers.NilPanic(clock, "service.validator.go: clock is required"),
		cfg:     cfg,
		locks:   newValidationLocks(cfg.StripeByRegion),
		metrics: helpers.NilPanic(metrics, "service.validator.go: metrics is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.validator.go: logger is required"), "component", "freshness_validator"),
	}
}

// Validate brings the region to an acceptable freshness before its windows are read.
// Decision table, in order:
//  1. region unknown or without records: full fetch;
//  2. no cached windows: nothing to do;
//  3. less than TTL since the last change-event query: status patch;
//  4. otherwise query change events since the last query and move that time to now;
//     events found: full fetch (windows cleared), else status patch.
//
// Failures are not retried and leave region data as it was.
//
// Returns: (outcome, nil) on success; ("", err) with fetch_error or service_unavailable code.
//
// Called from pageService.GetPage.
func (v *FreshnessValidator) Validate(ctx context.Context, region string) (Outcome, error) {
	if v.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.Timeout)
		defer cancel()
	}

	lock := v.locks.forRegion(region)
	if err := lock.Acquire(ctx, 1); err != nil {
		v.metrics.validations.WithLabelValues("lock_timeout").Inc()
		return "", NewServiceUnavailableError("validation did not start before the deadline", err)
	}
	defer lock.Release(1)

	outcome, err := v.validateLocked(ctx, region)
	if err != nil {
		level.Warn(v.logger).Log("msg", "validation failed", "region", region, "err", err)
		return "", err
	}
	v.metrics.validations.WithLabelValues(string(outcome)).Inc()
	level.Debug(v.logger).Log("msg", "region validated", "region", region, "outcome", outcome)
	return outcome, nil
}

func (v *FreshnessValidator) validateLocked(ctx context.Context, region string) (Outcome, error) {
	state, ok := v.store.State(region)
	if !ok || state.Records == 0 {
		return OutcomeFullFetch, v.store.EnsureFullData(ctx, region)
	}
	if state.WindowsEmpty {
		return OutcomeSkip, nil
	}

	now := v.clock.Now()
	if now.Sub(state.LastValidityCheck) < v.cfg.TTL {
		_, err := v.store.PatchStatuses(ctx, region)
		return OutcomeStatusPatch, err
	}

	changed, err := v.source.HasChangeEventsSince(ctx, region, state.LastValidityCheck)
	if err != nil {
		return "", v.store.sourceError("has_change_events_since", region, err)
	}
	v.store.MarkValidityCheck(region, now)

	if changed {
		level.Info(v.logger).Log("msg", "change events reported, refetching region", "region", region, "since", state.LastValidityCheck)
		return OutcomeStructuralRefresh, v.store.EnsureFullData(ctx, region)
	}
	_, err = v.store.PatchStatuses(ctx, region)
	return OutcomeEventCheckPatch, err
}

// validationLocks hands out the semaphore guarding a validation: one shared by all regions, or one
// per region when striped.
type validationLocks struct {
	striped bool
	global  *semaphore.Weighted

	mu        sync.Mutex
	perRegion map[string]*semaphore.Weighted
}

func newValidationLocks(striped bool) *validationLocks {
	return &validationLocks{
		striped:   striped,
		global:    semaphore.NewWeighted(1),
		perRegion: make(map[string]*semaphore.Weighted),
	}
}

func (l *validationLocks) forRegion(region string) *semaphore.Weighted {
	if !l.striped {
		return l.global
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	sem, ok := l.perRegion[region]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.perRegion[region] = sem
	}
	return sem
}
