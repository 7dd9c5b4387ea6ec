// Package handlers contains http handlers for myinventory.
package handlers

import (
	"myinventory/service"

	"github.com/labstack/echo/v4"
)

// ServerInterface is the set of operations described by api/my-inventory.openapi.yaml.
type ServerInterface interface {
	// GetHealth (GET /health)
	GetHealth(ectx echo.Context) error
	// GetRegions (GET /v1/regions)
	GetRegions(ectx echo.Context) error
	// GetInstances (GET /v1/regions/{region}/instances)
	GetInstances(ectx echo.Context, region string, params GetInstancesParams) error
}

// GetInstancesParams are the query parameters of GetInstances. Zero values mean "not given".
type GetInstancesParams struct {
	Sort  string
	Order string
	Page  int
	Limit int
}

// ServerInterfaceWrapper binds request parameters and calls ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ectx echo.Context) error {
	return w.Handler.GetHealth(ectx)
}

func (w *ServerInterfaceWrapper) GetRegions(ectx echo.Context) error {
	return w.Handler.GetRegions(ectx)
}

func (w *ServerInterfaceWrapper) GetInstances(ectx echo.Context) error {
	region := ectx.Param("region")
	if region == "" {
		return service.NewBadParameterError("region is required", nil)
	}

	var params GetInstancesParams
	err := echo.QueryParamsBinder(ectx).
		String("sort", &params.Sort).
		String("order", &params.Order).
		Int("page", &params.Page).
		Int("limit", &params.Limit).
		BindError()
	if err != nil {
		return service.NewBadParameterError("invalid query parameter", err)
	}

	return w.Handler.GetInstances(ectx, region, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router. Middlewares apply to the /v1 routes only.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/health", wrapper.GetHealth)
	router.GET("/v1/regions", wrapper.GetRegions, m...)
	router.GET("/v1/regions/:region/instances", wrapper.GetInstances, m...)
}
