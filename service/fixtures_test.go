package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"myinventory/domain"
	"myinventory/helpers"
	"myinventory/interfaces/mock"

	"github.com/go-kit/log"
)

var testStates = []string{"running", "stopped", "pending", "terminated"}

// makeRecords builds n deterministic records; roughly one in seven misses each optional field and
// names repeat so ties are exercised.
func makeRecords(n int, seed uint64) []domain.InstanceRecord {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]domain.InstanceRecord, n)
	for i := range out {
		r := domain.InstanceRecord{
			ID:         fmt.Sprintf("i-%06d", i),
			PrivateIPs: []string{fmt.Sprintf("10.0.%d.%d", i/256, i%256)},
		}
		if rng.IntN(7) != 0 {
			r.Name = helpers.Ptr(fmt.Sprintf("web-%03d", rng.IntN(n/2+1)))
		}
		if rng.IntN(7) != 0 {
			r.Type = helpers.Ptr([]string{"t3.micro", "m5.large", "c6g.xlarge"}[rng.IntN(3)])
		}
		if rng.IntN(7) != 0 {
			r.State = helpers.Ptr(testStates[rng.IntN(len(testStates))])
		}
		if rng.IntN(7) != 0 {
			r.AZ = helpers.Ptr([]string{"eu-west-1a", "eu-west-1b", "eu-west-1c"}[rng.IntN(3)])
		}
		if rng.IntN(7) != 0 {
			r.PublicIP = helpers.Ptr(fmt.Sprintf("54.%d.%d.%d", rng.IntN(256), rng.IntN(256), rng.IntN(256)))
		}
		out[i] = r
	}
	return out
}

func statusesOf(records []domain.InstanceRecord, state string) []domain.InstanceStatus {
	out := make([]domain.InstanceStatus, len(records))
	for i, r := range records {
		out[i] = domain.InstanceStatus{ID: r.ID, State: helpers.Ptr(state)}
	}
	return out
}

// staticSource returns a mock whose ListInstances serves records per region.
func staticSource(byRegion map[string][]domain.InstanceRecord) *mock.InventorySourceMock {
	return &mock.InventorySourceMock{
		ListInstancesFunc: func(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
			return byRegion[region], nil
		},
		ListStatusesFunc: func(ctx context.Context, region string) ([]domain.InstanceStatus, error) {
			return nil, nil
		},
	}
}

type testEnv struct {
	source    *mock.InventorySourceMock
	clock     *manualClock
	metrics   *Metrics
	store     *RegionStore
	validator *FreshnessValidator
	pages     *pageService
}

func newTestEnv(source *mock.InventorySourceMock, windowSize, capacity int, ttl time.Duration) *testEnv {
	clock := newManualClock(helpers.TestNow())
	metrics := NewMetrics(nil)
	logger := log.NewNopLogger()
	store := NewRegionStore(source, clock, capacity, metrics, logger)
	validator := NewFreshnessValidator(store, source, clock, ValidatorConfig{TTL: ttl, Timeout: time.Second}, metrics, logger)
	pages := NewPageService(store, validator, windowSize, metrics, logger).(*pageService)
	return &testEnv{
		source:    source,
		clock:     clock,
		metrics:   metrics,
		store:     store,
		validator: validator,
		pages:     pages,
	}
}
