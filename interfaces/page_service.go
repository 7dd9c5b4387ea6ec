package interfaces

import (
	"context"

	"myinventory/domain"
)

// PageService returns sorted pages of a region's instances.
//
// Implemented by service.pageService. Called from handlers.HTTPServer.GetInstances.
//
//go:generate moq -stub -out mock/page_service.go -pkg mock . PageService
type PageService interface {
	// GetPage returns records [start, end) of the region ordered by (sortKey, direction).
	// Preconditions: 0 <= start <= end and [start, end) lies within one window.
	// Returns: (records, nil) possibly shorter than end-start at the end of the collection;
	// (nil, err) with fetch_error, service_unavailable or bad_parameter code.
	GetPage(ctx context.Context, region string, sortKey domain.SortKey, direction domain.Direction, start, end int) ([]domain.InstanceRecord, error)

	// WindowSize returns W; page sizes used by callers must divide it.
	WindowSize() int
}
