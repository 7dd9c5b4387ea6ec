package interfaces

import (
	"context"
	"time"

	"myinventory/domain"
)

// InventorySource is the upstream collaborator that owns the instance records of every region.
//
// Implemented by adapters/awsinventory (EC2 + CloudTrail), adapters/myredis (Redis registry) and
// adapters/fileinventory (YAML fixture). Called only from service.RegionStore and
// service.freshnessValidator, always under the validation lock.
//
//go:generate moq -stub -out mock/inventory.go -pkg mock . InventorySource
type InventorySource interface {
	// ListInstances returns every instance of the region in upstream (fetch) order.
	// Returns: (records, nil) on success, possibly empty; (nil, err) on transport or authorization failure.
	// Called from service.RegionStore.EnsureFullData.
	ListInstances(ctx context.Context, region string) ([]domain.InstanceRecord, error)

	// ListStatuses returns (id, state) pairs of the region's instances. Ids unknown to the caller are ignored.
	// Returns: (statuses, nil) on success; (nil, err) on transport or authorization failure.
	// Called from service.RegionStore.PatchStatuses.
	ListStatuses(ctx context.Context, region string) ([]domain.InstanceStatus, error)

	// HasChangeEventsSince reports whether anything that may change record order or membership
	// happened in the region since the given time. Heuristic: false positives and negatives are tolerated.
	// Called from service.freshnessValidator.Validate once per TTL interval.
	HasChangeEventsSince(ctx context.Context, region string, since time.Time) (bool, error)
}

// RegionLister lists the regions an inventory source knows about.
//
// Called from handlers.HTTPServer.GetRegions.
//
//go:generate moq -stub -out mock/region_lister.go -pkg mock . RegionLister
type RegionLister interface {
	// ListRegions returns region identifiers, sorted.
	ListRegions(ctx context.Context) ([]string, error)
}
