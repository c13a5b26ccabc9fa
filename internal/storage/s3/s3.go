// Package s3 implements the media Uploader against an S3-compatible
// media host.
package s3

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adityarama/folio/internal/config"
	"github.com/adityarama/folio/internal/storage"
)

// Uploader stores uploads in an S3 bucket and returns public object URLs.
type Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewUploader creates an S3 uploader from configuration. A custom
// endpoint supports S3-compatible hosts (MinIO, R2, DigitalOcean Spaces).
func NewUploader(ctx context.Context, cfg config.S3StorageConfig, logger zerolog.Logger) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		if cfg.Endpoint != "" {
			publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBase,
		logger:        logger.With().Str("component", "s3-uploader").Logger(),
	}, nil
}

// Upload stores the payload and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, reader io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := "uploads/" + uuid.NewString() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().Err(err).Str("key", key).Msg("put object failed")
		return "", fmt.Errorf("%w: %v", storage.ErrUploadFailed, err)
	}

	u.logger.Debug().Str("key", key).Msg("stored upload")

	return u.publicBaseURL + "/" + key, nil
}

// Ensure Uploader implements storage.Uploader.
var _ storage.Uploader = (*Uploader)(nil)
