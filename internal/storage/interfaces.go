// Package storage defines the media upload boundary for the folio server.
// The project service hands an uploaded file to an Uploader and records
// the returned reference; which backend actually holds the bytes is a
// configuration choice.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrUploadFailed indicates the backend could not store the payload.
// A failed upload fails the whole create/edit; there is no placeholder
// fallback.
var ErrUploadFailed = errors.New("media upload failed")

// Uploader stores a binary payload and returns a stable URL or path for
// it. The call is synchronous from the caller's point of view.
type Uploader interface {
	// Upload stores the content read from reader. filename is the
	// client-supplied name; backends use its extension only.
	Upload(ctx context.Context, reader io.Reader, filename string) (string, error)
}
