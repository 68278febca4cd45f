package archive

import (
	"context"
	"fmt"
	"io"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// BlobStore reads the archive through a gocloud.dev bucket. Drivers are
// registered by the caller (blank-import the ones you need).
type BlobStore struct {
	bucket *blob.Bucket
}

// NewBlobStore wraps an already-open bucket. The store takes ownership
// and closes the bucket on Close.
func NewBlobStore(bucket *blob.Bucket) *BlobStore {
	return &BlobStore{bucket: bucket}
}

// OpenBlobStore opens a bucket by URL (e.g. "s3://bucket?region=us-east-1",
// "file:///data/mirror", "mem://").
func OpenBlobStore(ctx context.Context, bucketURL string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("archive: open bucket %s: %w", bucketURL, err)
	}
	return &BlobStore{bucket: bucket}, nil
}

// FetchHour implements Store.
func (s *BlobStore) FetchHour(ctx context.Context, coin string, day time.Time, hour int) (io.ReadCloser, error) {
	key := Key(coin, day, hour)
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("archive: get %s: %w", key, err)
	}
	return r, nil
}

// Close closes the underlying bucket.
func (s *BlobStore) Close() error {
	return s.bucket.Close()
}
