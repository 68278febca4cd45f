package archive

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"
)

func day(s string) time.Time {
	d, err := time.Parse("20060102", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestKey(t *testing.T) {
	tests := []struct {
		coin     string
		day      string
		hour     int
		expected string
	}{
		{"BTC", "20250601", 0, "market_data/20250601/0/l2Book/BTC.lz4"},
		{"BTC", "20250601", 9, "market_data/20250601/9/l2Book/BTC.lz4"},
		{"SOL", "20250601", 23, "market_data/20250601/23/l2Book/SOL.lz4"},
		{"ETH", "20241231", 12, "market_data/20241231/12/l2Book/ETH.lz4"},
	}

	for _, tt := range tests {
		got := Key(tt.coin, day(tt.day), tt.hour)
		if got != tt.expected {
			t.Errorf("Key(%s, %s, %d) = %q, want %q", tt.coin, tt.day, tt.hour, got, tt.expected)
		}
	}
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		coin     string
		day      string
		hour     int
		expected string
	}{
		{"BTC", "20250601", 0, "20250601_0_BTC.txt"},
		{"BTC", "20250601", 23, "20250601_23_BTC.txt"},
		{"SOL", "20240115", 7, "20240115_7_SOL.txt"},
	}

	for _, tt := range tests {
		got := LocalName(tt.coin, day(tt.day), tt.hour)
		if got != tt.expected {
			t.Errorf("LocalName(%s, %s, %d) = %q, want %q", tt.coin, tt.day, tt.hour, got, tt.expected)
		}
	}
}

func TestBlobStoreFetchHour(t *testing.T) {
	ctx := context.Background()
	bucket, err := blob.OpenBucket(ctx, "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}

	d := day("20250601")
	payload := []byte("compressed-snapshot")
	if err := bucket.WriteAll(ctx, Key("BTC", d, 5), payload, nil); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	store := NewBlobStore(bucket)
	defer store.Close()

	r, err := store.FetchHour(ctx, "BTC", d, 5)
	if err != nil {
		t.Fatalf("FetchHour: %v", err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload mismatch: got %q, want %q", got, payload)
	}
}

func TestBlobStoreFetchHourNotFound(t *testing.T) {
	ctx := context.Background()
	bucket, err := blob.OpenBucket(ctx, "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}

	store := NewBlobStore(bucket)
	defer store.Close()

	_, err = store.FetchHour(ctx, "BTC", day("20250601"), 5)
	if err == nil {
		t.Fatal("expected error for missing object")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
