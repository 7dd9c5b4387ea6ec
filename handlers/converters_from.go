package handlers

import (
	"fmt"
	"math"

	"myinventory/domain"
	"myinventory/service"
)

// AllowedLimits are the page sizes a client may get. Requested limits are rounded down to one of them.
var AllowedLimits = []int{1, 5, 10, 20, 25, 50, 100, 125, 250, 500}

// DefaultLimit is used when no positive limit is requested.
const DefaultLimit = 10

// pageRequest is a normalized GetInstances request.
type pageRequest struct {
	Region    string
	SortKey   domain.SortKey
	Direction domain.Direction
	Page      int
	Limit     int
	Start     int
	End       int
}

// CheckLimits returns an error unless every allowed limit divides windowSize,
// which keeps each page inside a single cached window.
func CheckLimits(windowSize int) error {
	for _, l := range AllowedLimits {
		if windowSize%l != 0 {
			return fmt.Errorf("page limit %d does not divide window size %d", l, windowSize)
		}
	}
	return nil
}

// roundLimit rounds limit down to the nearest allowed value.
func roundLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	for i := len(AllowedLimits) - 1; i >= 0; i-- {
		if limit >= AllowedLimits[i] {
			return AllowedLimits[i]
		}
	}
	return DefaultLimit
}

// fromGetInstancesParams converts query parameters to a pageRequest.
// Unknown sort keys select fetch order; that order is always ascending.
// Returns service.BadParameterError for an unknown order or a page beyond any addressable range.
func fromGetInstancesParams(region string, params GetInstancesParams) (pageRequest, error) {
	direction, err := domain.ParseDirection(params.Order)
	if err != nil {
		return pageRequest{}, service.NewBadParameterError("order must be asc or desc", err)
	}

	sortKey, ok := domain.ParseSortKey(params.Sort)
	if !ok {
		direction = domain.Ascending
	}

	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := roundLimit(params.Limit)
	if page > math.MaxInt/limit {
		return pageRequest{}, service.NewBadParameterError(fmt.Sprintf("page %d is out of range", page), nil)
	}

	return pageRequest{
		Region:    region,
		SortKey:   sortKey,
		Direction: direction,
		Page:      page,
		Limit:     limit,
		Start:     (page - 1) * limit,
		End:       page * limit,
	}, nil
}
