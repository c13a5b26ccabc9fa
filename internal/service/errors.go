// Package service provides business logic services for the folio server.
package service

import "errors"

// ErrInternalError wraps unexpected infrastructure failures so handlers
// can render a generic error without leaking details.
var ErrInternalError = errors.New("internal server error")
