package handlers

import (
	"fmt"
	"net/http"

	"myinventory/helpers"
	"myinventory/interfaces"
	"myinventory/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	pages   interfaces.PageService
	regions interfaces.RegionLister
	logger  log.Logger
}

// NewHTTPServer creates a new HTTPServer. regions may be nil when the inventory source cannot list regions.
func NewHTTPServer(pages interfaces.PageService, regions interfaces.RegionLister, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		pages:   helpers.NilPanic(pages, "handlers.http.go: pages is required"),
		regions: regions,
		logger:  logger,
	}
}

// GetHealth (GET /health) always returns 200.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	return ectx.NoContent(http.StatusOK)
}

// GetRegions (GET /v1/regions) returns the regions known to the inventory source.
func (h *HTTPServer) GetRegions(ectx echo.Context) error {
	if h.regions == nil {
		return service.NewEntityNotFoundError("region listing is not supported by this inventory source", nil)
	}

	regions, err := h.regions.ListRegions(ectx.Request().Context())
	if err != nil {
		if service.ToMyError(err) == nil {
			err = service.NewFetchError("inventory source failed to list regions", err)
		}
		return fmt.Errorf("getRegions failed to list regions, err: %w", err)
	}
	if regions == nil {
		regions = []string{}
	}

	return ectx.JSON(http.StatusOK, RegionsResponse{Regions: regions})
}

// GetInstances (GET /v1/regions/{region}/instances) returns one sorted page of the region's instances.
// Returns 400 on bad parameters, 502 when the inventory source fails and 503 when validation times out.
func (h *HTTPServer) GetInstances(ectx echo.Context, region string, params GetInstancesParams) error {
	req, err := fromGetInstancesParams(region, params)
	if err != nil {
		return fmt.Errorf("getInstances failed to convert params, err: %w", err)
	}

	records, err := h.pages.GetPage(ectx.Request().Context(), req.Region, req.SortKey, req.Direction, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("getInstances failed to get page %d of region %s, err: %w", req.Page, req.Region, err)
	}

	level.Debug(h.logger).Log(
		"msg", "page served",
		"region", req.Region,
		"sort", req.SortKey,
		"order", req.Direction,
		"page", req.Page,
		"limit", req.Limit,
		"count", len(records),
	)

	return ectx.JSON(http.StatusOK, toInstancesResponse(req, records))
}
