package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"myinventory/domain"
	"myinventory/helpers"
	"myinventory/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = time.Minute

// primeRegion loads r1 and caches one window so the validator has something to keep fresh.
func primeRegion(t *testing.T, env *testEnv) {
	t.Helper()
	outcome, err := env.validator.Validate(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, OutcomeFullFetch, outcome)
	state, _ := env.store.State("r1")
	_, stored := env.store.StoreWindow("r1", state.Generation, key(0), nil)
	require.True(t, stored)
}

func TestNewFreshnessValidator_Panics(t *testing.T) {
	env := newTestEnv(&mock.InventorySourceMock{}, 10, 4, testTTL)
	assert.PanicsWithValue(t, "service.validator.go: TTL must be positive", func() {
		NewFreshnessValidator(env.store, env.source, env.clock, ValidatorConfig{}, env.metrics, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.validator.go: store is required", func() {
		NewFreshnessValidator(nil, env.source, env.clock, ValidatorConfig{TTL: testTTL}, env.metrics, log.NewNopLogger())
	})
}

func TestFreshnessValidator_DecisionTable(t *testing.T) {
	ctx := context.Background()
	records := makeRecords(30, 11)

	t.Run("unknown_region_full_fetch", func(t *testing.T) {
		env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{"r1": records}), 10, 4, testTTL)
		outcome, err := env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeFullFetch, outcome)
		assert.Len(t, env.source.ListInstancesCalls(), 1)
		assert.Empty(t, env.source.HasChangeEventsSinceCalls())
	})

	t.Run("empty_records_full_fetch_every_time", func(t *testing.T) {
		env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{}), 10, 4, testTTL)
		for i := 0; i < 2; i++ {
			outcome, err := env.validator.Validate(ctx, "r1")
			require.NoError(t, err)
			assert.Equal(t, OutcomeFullFetch, outcome)
		}
		assert.Len(t, env.source.ListInstancesCalls(), 2)
	})

	t.Run("no_windows_skip_without_network", func(t *testing.T) {
		env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{"r1": records}), 10, 4, testTTL)
		_, err := env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		env.clock.Advance(time.Hour)

		outcome, err := env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeSkip, outcome)
		assert.Len(t, env.source.ListInstancesCalls(), 1)
		assert.Empty(t, env.source.ListStatusesCalls())
		assert.Empty(t, env.source.HasChangeEventsSinceCalls())
	})

	t.Run("before_ttl_status_patch_only", func(t *testing.T) {
		env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{"r1": records}), 10, 4, testTTL)
		primeRegion(t, env)
		env.clock.Advance(testTTL - time.Second)

		outcome, err := env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeStatusPatch, outcome)
		assert.Len(t, env.source.ListInstancesCalls(), 1)
		assert.Len(t, env.source.ListStatusesCalls(), 1)
		assert.Empty(t, env.source.HasChangeEventsSinceCalls())

		state, _ := env.store.State("r1")
		assert.Equal(t, helpers.TestNow(), state.LastValidityCheck)
	})

	t.Run("after_ttl_no_events_patch", func(t *testing.T) {
		env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{"r1": records}), 10, 4, testTTL)
		env.source.HasChangeEventsSinceFunc = func(ctx context.Context, region string, since time.Time) (bool, error) {
			return false, nil
		}
		primeRegion(t, env)
		env.clock.Advance(testTTL)

		outcome, err := env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeEventCheckPatch, outcome)
		calls := env.source.HasChangeEventsSinceCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, helpers.TestNow(), calls[0].Since)
		assert.Len(t, env.source.ListStatusesCalls(), 1)
		assert.Len(t, env.source.ListInstancesCalls(), 1)

		state, _ := env.store.State("r1")
		assert.Equal(t, helpers.TestNow().Add(testTTL), state.LastValidityCheck)
		assert.False(t, state.WindowsEmpty)

		// The check time moved, so the next request within TTL only patches.
		outcome, err = env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeStatusPatch, outcome)
		assert.Len(t, env.source.HasChangeEventsSinceCalls(), 1)
	})

	t.Run("after_ttl_events_structural_refresh", func(t *testing.T) {
		env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{"r1": records}), 10, 4, testTTL)
		env.source.HasChangeEventsSinceFunc = func(ctx context.Context, region string, since time.Time) (bool, error) {
			return true, nil
		}
		primeRegion(t, env)
		env.clock.Advance(2 * testTTL)

		outcome, err := env.validator.Validate(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, OutcomeStructuralRefresh, outcome)
		assert.Len(t, env.source.ListInstancesCalls(), 2)
		assert.Empty(t, env.source.ListStatusesCalls())

		state, _ := env.store.State("r1")
		assert.True(t, state.WindowsEmpty)
		assert.Equal(t, helpers.TestNow().Add(2*testTTL), state.LastValidityCheck)
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.validations.WithLabelValues(string(OutcomeStructuralRefresh))))
	})
}

func TestFreshnessValidator_EventQueryFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(staticSource(map[string][]domain.InstanceRecord{"r1": makeRecords(10, 1)}), 10, 4, testTTL)
	env.source.HasChangeEventsSinceFunc = func(ctx context.Context, region string, since time.Time) (bool, error) {
		return false, errors.New("cloudtrail: access denied")
	}
	primeRegion(t, env)
	env.clock.Advance(testTTL)

	_, err := env.validator.Validate(ctx, "r1")
	require.Error(t, err)
	assert.True(t, IsFetchError(err))

	state, _ := env.store.State("r1")
	assert.Equal(t, helpers.TestNow(), state.LastValidityCheck)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.sourceErrors.WithLabelValues("has_change_events_since")))

	// The lock was released: the next validation runs and fails the same way instead of blocking.
	_, err = env.validator.Validate(ctx, "r1")
	require.Error(t, err)
	assert.Len(t, env.source.HasChangeEventsSinceCalls(), 2)
}

func TestFreshnessValidator_FullFetchFailurePropagates(t *testing.T) {
	source := &mock.InventorySourceMock{
		ListInstancesFunc: func(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
			return nil, errors.New("no credentials")
		},
	}
	env := newTestEnv(source, 10, 4, testTTL)
	for i := 0; i < 3; i++ {
		_, err := env.validator.Validate(context.Background(), "r1")
		require.Error(t, err)
		assert.True(t, IsFetchError(err))
	}
	assert.Len(t, source.ListInstancesCalls(), 3)
}

func TestFreshnessValidator_SerializesAcrossRegions(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan string, 2)
	source := &mock.InventorySourceMock{
		ListInstancesFunc: func(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
			entered <- region
			<-release
			return makeRecords(3, 1), nil
		},
	}
	env := newTestEnv(source, 10, 4, testTTL)

	var wg sync.WaitGroup
	for _, region := range []string{"r1", "r2"} {
		wg.Add(1)
		go func(region string) {
			defer wg.Done()
			_, err := env.validator.Validate(context.Background(), region)
			assert.NoError(t, err)
		}(region)
	}

	<-entered
	select {
	case r := <-entered:
		t.Fatalf("region %s entered validation while another held the lock", r)
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-entered
	wg.Wait()
}

func TestFreshnessValidator_TimeoutWhileLockHeld(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	source := &mock.InventorySourceMock{
		ListInstancesFunc: func(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
			if region == "slow" {
				close(entered)
				<-release
			}
			return makeRecords(3, 1), nil
		},
	}
	clock := newManualClock(helpers.TestNow())
	metrics := NewMetrics(nil)
	store := NewRegionStore(source, clock, 4, metrics, log.NewNopLogger())
	validator := NewFreshnessValidator(store, source, clock, ValidatorConfig{TTL: testTTL, Timeout: 20 * time.Millisecond}, metrics, log.NewNopLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = validator.Validate(context.Background(), "slow")
	}()
	<-entered

	_, err := validator.Validate(context.Background(), "fast")
	require.Error(t, err)
	assert.True(t, IsServiceUnavailableError(err))

	close(release)
	<-done
}

func TestFreshnessValidator_StripedLocksDoNotBlockOtherRegions(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	source := &mock.InventorySourceMock{
		ListInstancesFunc: func(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
			if region == "slow" {
				close(entered)
				<-release
			}
			return makeRecords(3, 1), nil
		},
	}
	clock := newManualClock(helpers.TestNow())
	metrics := NewMetrics(nil)
	store := NewRegionStore(source, clock, 4, metrics, log.NewNopLogger())
	validator := NewFreshnessValidator(store, source, clock, ValidatorConfig{TTL: testTTL, Timeout: time.Second, StripeByRegion: true}, metrics, log.NewNopLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = validator.Validate(context.Background(), "slow")
	}()
	<-entered

	outcome, err := validator.Validate(context.Background(), "fast")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFullFetch, outcome)

	close(release)
	<-done
}
