package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pierrec/lz4/v4"
	"gocloud.dev/blob"

	"github.com/rickypang0219/hyperliquid-fetcher/internal/archive"
)

func TestRunMissingRequiredFlags(t *testing.T) {
	if code := run([]string{}); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs for no flags, got %d", code)
	}
	if code := run([]string{"-coin", "BTC"}); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs for missing dates, got %d", code)
	}
}

func TestRunInvalidDates(t *testing.T) {
	args := []string{
		"-coin", "BTC",
		"-start", "2025-06-01", // wrong format
		"-end", "20250601",
		"-output", t.TempDir(),
	}
	if code := run(args); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs for malformed date, got %d", code)
	}

	args = []string{
		"-coin", "BTC",
		"-start", "20250602",
		"-end", "20250601", // before start
		"-output", t.TempDir(),
	}
	if code := run(args); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs for end before start, got %d", code)
	}
}

func TestRunInvalidChunkSize(t *testing.T) {
	args := []string{
		"-coin", "BTC",
		"-start", "20250601",
		"-end", "20250601",
		"-output", t.TempDir(),
		"-chunk-size", "lots",
	}
	if code := run(args); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs for bad chunk size, got %d", code)
	}
}

func TestRunHelp(t *testing.T) {
	if code := run([]string{"-h"}); code != ExitSuccess {
		t.Errorf("expected ExitSuccess for -h, got %d", code)
	}
}

// seedBucket writes lz4-compressed hourly snapshots into a file:// bucket.
func seedBucket(t *testing.T, bucketURL, coin string, day time.Time, hours []int) {
	t.Helper()
	ctx := context.Background()

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	for _, hour := range hours {
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		fmt.Fprintf(zw, "l2book %s hour %d\n", coin, hour)
		if err := zw.Close(); err != nil {
			t.Fatalf("lz4 close: %v", err)
		}
		key := archive.Key(coin, day, hour)
		if err := bucket.WriteAll(ctx, key, buf.Bytes(), nil); err != nil {
			t.Fatalf("WriteAll %s: %v", key, err)
		}
	}
}

func TestRunAgainstFileBucket(t *testing.T) {
	day, err := time.Parse("20060102", "20250601")
	if err != nil {
		t.Fatal(err)
	}

	bucketDir := t.TempDir()
	bucketURL := "file://" + bucketDir

	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	seedBucket(t, bucketURL, "BTC", day, hours)

	dest := filepath.Join(t.TempDir(), "out")
	args := []string{
		"-coin", "BTC",
		"-start", "20250601",
		"-end", "20250601",
		"-output", dest,
		"-bucket", bucketURL,
		"-quiet",
	}
	if code := run(args); code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 24 {
		t.Errorf("expected 24 files, got %d", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dest, archive.LocalName("BTC", day, 5)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "l2book BTC hour 5\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestRunExhaustedExitCode(t *testing.T) {
	// Empty bucket: every hour is missing, so the daily retry budget
	// runs out before the start boundary is reached.
	bucketURL := "file://" + t.TempDir()

	args := []string{
		"-coin", "BTC",
		"-start", "20250501",
		"-end", "20250601",
		"-output", filepath.Join(t.TempDir(), "out"),
		"-bucket", bucketURL,
		"-quiet",
	}
	if code := run(args); code != ExitNoData {
		t.Errorf("expected ExitNoData, got %d", code)
	}
}
