// Package api holds the OpenAPI document served by myinventory.
package api

import (
	_ "embed"
)

// Spec is the raw OpenAPI 3 document for the HTTP API.
//
//go:embed my-inventory.openapi.yaml
var Spec []byte
