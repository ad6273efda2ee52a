package mcp

import "errors"

// ErrMissingQueryService is returned when the server is built without
// a query service.
var ErrMissingQueryService = errors.New("mcp: query service is required")
