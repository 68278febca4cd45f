package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultBucket is the canonical requester-pays archive bucket.
const DefaultBucket = "hyperliquid-archive"

// DefaultRegion is the region the canonical bucket lives in.
const DefaultRegion = "us-east-1"

// ErrNotFound is returned by Store implementations when the requested
// hourly snapshot does not exist in the archive.
var ErrNotFound = errors.New("archive: object not found")

// Store fetches hourly snapshots from an archive backend.
type Store interface {
	// FetchHour opens the compressed snapshot for the given coin, day and
	// hour. The caller owns the returned reader and must close it.
	// Returns an error wrapping ErrNotFound when the snapshot is absent.
	FetchHour(ctx context.Context, coin string, day time.Time, hour int) (io.ReadCloser, error)
}

// Key returns the object key for a coin's snapshot at (day, hour).
// The hour is not zero-padded.
func Key(coin string, day time.Time, hour int) string {
	return fmt.Sprintf("market_data/%s/%d/l2Book/%s.lz4", day.Format("20060102"), hour, coin)
}

// LocalName returns the local file name a snapshot is written to after
// decompression.
func LocalName(coin string, day time.Time, hour int) string {
	return fmt.Sprintf("%s_%d_%s.txt", day.Format("20060102"), hour, coin)
}
