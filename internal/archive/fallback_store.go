package archive

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// fallbackStore tries S3 first, then falls back to the local file system.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Prefix  string
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that prefers S3 and falls back to local files.
// If s3Store is nil or S3 is disabled, only the file store is used.
// The S3 key is the prefix joined with the key; local paths use the key as-is.
func NewFallbackStore(s3Store, fileStore Store, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Prefix:  s3Prefix,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "archive-fallback-store").Logger(),
	}
}

func (s *fallbackStore) useS3() bool {
	return s.s3Enabled && s.s3Store != nil
}

// Put writes to S3 and on failure to the local file system.
func (s *fallbackStore) Put(ctx context.Context, key string, data []byte) error {
	if s.useS3() {
		s3Key := s.s3Prefix + key
		err := s.s3Store.Put(ctx, s3Key, data)
		if err == nil {
			return nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to write to S3, falling back to local file system")
	}

	return s.fileStore.Put(ctx, key, data)
}

// Get reads from S3 and on failure from the local file system.
func (s *fallbackStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.useS3() {
		s3Key := s.s3Prefix + key
		rc, err := s.s3Store.Get(ctx, s3Key)
		if err == nil {
			return rc, nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to read from S3, falling back to local file system")
	}

	return s.fileStore.Get(ctx, key)
}
