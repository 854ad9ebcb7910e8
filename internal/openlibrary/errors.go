// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"fmt"
	"strings"
)

// UpstreamError reports a non-2xx response from the catalog.
type UpstreamError struct {
	// Endpoint names the call that failed ("search" or "authors").
	Endpoint string

	StatusCode int

	// Status is the status line text, e.g. "500 Internal Server Error".
	Status string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Open Library %s API error: %s", e.Endpoint, e.statusText())
}

func (e *UpstreamError) statusText() string {
	if e.Status != "" {
		return e.Status
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// SchemaValidationError reports a response body that does not have the
// structure the client expects.
type SchemaValidationError struct {
	Endpoint string

	// Problems lists each structural violation found in the body.
	Problems []string
}

func (e *SchemaValidationError) Error() string {
	if len(e.Problems) == 0 {
		return fmt.Sprintf("Open Library %s response failed validation", e.Endpoint)
	}
	return fmt.Sprintf("Open Library %s response failed validation: %s",
		e.Endpoint, strings.Join(e.Problems, "; "))
}
