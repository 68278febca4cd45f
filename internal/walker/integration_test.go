//go:build integration

package walker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "gocloud.dev/blob/s3blob"

	"github.com/rickypang0219/hyperliquid-fetcher/internal/archive"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/testutils"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/walker"
)

func TestIntegrationWalkAgainstMinio(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	env := testutils.StartMinioContainer(t, ctx, "archive-test")
	defer env.Close(ctx)

	bucket, err := env.OpenBucket(ctx)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	day2, _ := time.Parse("20060102", "20250602")
	day1, _ := time.Parse("20060102", "20250601")

	allHours := make([]int, 24)
	for i := range allHours {
		allHours[i] = i
	}
	testutils.SeedArchive(t, ctx, bucket, "BTC", day2, allHours)
	// Day 1 has a gap at hours 23 and 21; the walker should skip over
	// it and still drain the rest of the day.
	var day1Hours []int
	for h := 0; h <= 19; h++ {
		day1Hours = append(day1Hours, h)
	}
	testutils.SeedArchive(t, ctx, bucket, "BTC", day1, day1Hours)

	store, err := archive.OpenBlobStore(ctx, env.BucketURL)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	dest := t.TempDir()
	w := walker.New(store, walker.Options{})

	result, err := w.Run(ctx, "BTC", day1, day2, dest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != walker.Completed {
		t.Fatalf("expected Completed, got %v", result)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 44 {
		t.Errorf("expected 44 files (24 + 20), got %d", len(entries))
	}

	// Spot-check decompressed content round-tripped through minio.
	data, err := os.ReadFile(filepath.Join(dest, archive.LocalName("BTC", day2, 13)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != testutils.SnapshotPayload("BTC", day2, 13) {
		t.Errorf("unexpected content: %q", data)
	}

	data, err = os.ReadFile(filepath.Join(dest, archive.LocalName("BTC", day1, 19)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != testutils.SnapshotPayload("BTC", day1, 19) {
		t.Errorf("unexpected content: %q", data)
	}
}
