package walker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/rickypang0219/hyperliquid-fetcher/internal/archive"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/progress"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/sink"
)

// Result is the terminal outcome of a walk that did not fail.
type Result int

const (
	// Completed means the cursor passed the start date with daily
	// retries remaining.
	Completed Result = iota
	// Exhausted means the daily retry budget was consumed before the
	// cursor reached the start date.
	Exhausted
)

func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Options configures the walker.
type Options struct {
	// MaxHourlyRetries is the number of consecutive missing hours that
	// abandons the current day. Default: 3
	MaxHourlyRetries int

	// MaxDailyRetries is the number of abandoned days that terminates
	// the walk. Default: 3
	MaxDailyRetries int

	// SkipHours is how far the cursor skips backward on a miss that has
	// not yet exhausted the hourly budget. Default: 2
	SkipHours int

	// ChunkSize is the copy buffer size used while streaming
	// decompressed data to disk. Default: 4096
	ChunkSize int

	// Progress is an optional progress reporter.
	Progress *progress.Reporter
}

// Walker drives one backward walk over the archive.
type Walker struct {
	store archive.Store
	opts  Options
}

// New creates a walker over the given store.
func New(store archive.Store, opts Options) *Walker {
	if opts.MaxHourlyRetries <= 0 {
		opts.MaxHourlyRetries = 3
	}
	if opts.MaxDailyRetries <= 0 {
		opts.MaxDailyRetries = 3
	}
	if opts.SkipHours <= 0 {
		opts.SkipHours = 2
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = sink.DefaultBufferSize
	}
	return &Walker{store: store, opts: opts}
}

// Run walks backward from hour 23 of end toward start, writing one
// decompressed file per available hour into dest (created if absent).
//
// The returned Result is only meaningful when the error is nil: any
// store error other than not-found, and any failure while streaming or
// writing, aborts the walk immediately. Files already written for
// earlier hours are left in place.
func (w *Walker) Run(ctx context.Context, coin string, start, end time.Time, dest string) (Result, error) {
	if coin == "" {
		return 0, errors.New("walker: coin is required")
	}
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0, fmt.Errorf("walker: end %s is before start %s",
			end.Format("20060102"), start.Format("20060102"))
	}

	snk, err := sink.New(dest, w.opts.ChunkSize)
	if err != nil {
		return 0, err
	}

	st := newWalkState(end)

	for !st.day.Before(start) && st.dailyRetries < w.opts.MaxDailyRetries {
		for st.hour >= 0 && st.dailyRetries < w.opts.MaxDailyRetries {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			if err := w.fetchHour(ctx, snk, coin, &st); err != nil {
				return 0, err
			}
		}

		if st.dayDone() {
			st.nextDay()
		}
	}

	if st.dailyRetries >= w.opts.MaxDailyRetries {
		return Exhausted, nil
	}
	return Completed, nil
}

// fetchHour fetches the cursor's current hour and applies the resulting
// state transition. Only not-found errors are absorbed; everything else
// is returned and ends the walk.
func (w *Walker) fetchHour(ctx context.Context, snk *sink.Sink, coin string, st *walkState) error {
	day, hour := st.day, st.hour
	key := archive.Key(coin, day, hour)

	body, err := w.store.FetchHour(ctx, coin, day, hour)
	if err == nil {
		zr := lz4.NewReader(body)
		n, werr := snk.WriteFile(archive.LocalName(coin, day, hour), zr)
		body.Close()
		if werr != nil {
			return fmt.Errorf("walker: store %s: %w", key, werr)
		}
		if w.opts.Progress != nil {
			w.opts.Progress.HourFetched(key, n)
		}
		st.fetched()
		return nil
	}

	if !errors.Is(err, archive.ErrNotFound) {
		return err
	}

	if w.opts.Progress != nil {
		w.opts.Progress.HourMissing(key)
	}
	switch st.missed(w.opts.MaxHourlyRetries, w.opts.SkipHours) {
	case missDayExhausted:
		if w.opts.Progress != nil {
			w.opts.Progress.DayAbandoned(st.day, "retries exhausted", w.opts.MaxDailyRetries-st.dailyRetries)
		}
	case missHourUnderflow:
		if w.opts.Progress != nil {
			w.opts.Progress.DayAbandoned(st.day, "hour underflow", w.opts.MaxDailyRetries-st.dailyRetries)
		}
	}
	return nil
}

// truncateDay drops the time-of-day component, keeping only the date.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
