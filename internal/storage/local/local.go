// Package local implements the media Uploader on the local filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adityarama/folio/internal/storage"
)

// Uploader writes uploads under a base directory and returns paths below
// a public URL prefix. Files are sharded into subdirectories by the
// first two characters of their generated name to keep directories
// small.
type Uploader struct {
	baseDir    string
	publicPath string
	logger     zerolog.Logger
}

// NewUploader creates a local-disk uploader rooted at baseDir.
func NewUploader(baseDir, publicPath string, logger zerolog.Logger) (*Uploader, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &Uploader{
		baseDir:    baseDir,
		publicPath: strings.TrimRight(publicPath, "/"),
		logger:     logger.With().Str("component", "local-uploader").Logger(),
	}, nil
}

// BaseDir returns the directory uploads are written to, for static
// file serving.
func (u *Uploader) BaseDir() string {
	return u.baseDir
}

// Upload stores the payload and returns its public path.
func (u *Uploader) Upload(ctx context.Context, reader io.Reader, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + sanitizeExt(filename)
	shard := name[:2]

	dir := filepath.Join(u.baseDir, shard)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrUploadFailed, err)
	}

	dst := filepath.Join(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrUploadFailed, err)
	}

	written, err := io.Copy(f, reader)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("%w: %v", storage.ErrUploadFailed, err)
	}

	u.logger.Debug().
		Str("file", name).
		Int64("size", written).
		Msg("stored upload")

	return u.publicPath + "/" + path.Join(shard, name), nil
}

// sanitizeExt keeps a short, safe file extension from the client name.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}

// Ensure Uploader implements storage.Uploader.
var _ storage.Uploader = (*Uploader)(nil)
