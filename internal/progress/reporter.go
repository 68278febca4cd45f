package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// Coin is the symbol being fetched (for display).
	Coin string

	// Start and End are the walk boundaries (for display).
	Start time.Time
	End   time.Time

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// Quiet suppresses per-hour lines; day transitions and the final
	// summary are still printed.
	Quiet bool
}

// Reporter outputs human-readable walk progress.
type Reporter struct {
	opts Options

	mu            sync.Mutex
	filesWritten  atomic.Int64
	bytesWritten  atomic.Int64
	missingHours  atomic.Int64
	abandonedDays atomic.Int32
	startTime     time.Time
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &Reporter{opts: opts}
}

// Start prints the walk header and starts the clock.
func (r *Reporter) Start() {
	r.startTime = time.Now()
	fmt.Fprintf(r.opts.Output, "[fetcher] Fetching %s backward from %s to %s\n",
		r.opts.Coin,
		r.opts.End.Format("20060102"),
		r.opts.Start.Format("20060102"),
	)
}

// HourFetched records a successfully downloaded hour.
func (r *Reporter) HourFetched(key string, size int64) {
	r.filesWritten.Add(1)
	r.bytesWritten.Add(size)
	if r.opts.Quiet {
		return
	}
	r.mu.Lock()
	fmt.Fprintf(r.opts.Output, "[fetcher] Fetched %s (%s)\n", key, formatBytes(size))
	r.mu.Unlock()
}

// HourMissing records an hour that is absent from the archive.
func (r *Reporter) HourMissing(key string) {
	r.missingHours.Add(1)
	if r.opts.Quiet {
		return
	}
	r.mu.Lock()
	fmt.Fprintf(r.opts.Output, "[fetcher] Missing %s\n", key)
	r.mu.Unlock()
}

// DayAbandoned records a day given up on, either because the hourly miss
// budget ran out or because a backward skip ran past hour 0. next is the
// day the walk moves to.
func (r *Reporter) DayAbandoned(next time.Time, reason string, retriesLeft int) {
	r.abandonedDays.Add(1)
	r.mu.Lock()
	fmt.Fprintf(r.opts.Output, "[fetcher] Moving to previous day (%s): %s | Daily retries left: %d\n",
		reason, next.Format("20060102"), retriesLeft)
	r.mu.Unlock()
}

// Finish prints the final summary. outcome is "completed", "exhausted"
// or "failed".
func (r *Reporter) Finish(outcome string) {
	duration := time.Since(r.startTime)
	bytes := r.bytesWritten.Load()

	var speed int64
	if secs := duration.Seconds(); secs > 0 {
		speed = int64(float64(bytes) / secs)
	}

	r.mu.Lock()
	fmt.Fprintf(r.opts.Output, "[fetcher] Done (%s): %d files | %s | %s | %s/s\n",
		outcome,
		r.filesWritten.Load(),
		formatBytes(bytes),
		formatDuration(duration),
		formatBytes(speed),
	)
	r.mu.Unlock()
}

// FilesWritten returns the number of files written so far.
func (r *Reporter) FilesWritten() int64 { return r.filesWritten.Load() }

// BytesWritten returns the number of decompressed bytes written so far.
func (r *Reporter) BytesWritten() int64 { return r.bytesWritten.Load() }

// MissingHours returns the number of not-found responses seen so far.
func (r *Reporter) MissingHours() int64 { return r.missingHours.Load() }

// AbandonedDays returns the number of day-abandonment events so far.
func (r *Reporter) AbandonedDays() int32 { return r.abandonedDays.Load() }

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatBytes is exported for use by other packages.
func FormatBytes(b int64) string {
	return formatBytes(b)
}

// ParseBytes parses a human-readable byte string (e.g., "4KB").
func ParseBytes(s string) (int64, error) {
	var multiplier int64 = 1
	s = trimSuffix(s, " ")

	switch {
	case hasSuffix(s, "TB"):
		multiplier = 1024 * 1024 * 1024 * 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "KB"):
		multiplier = 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "B"):
		s = s[:len(s)-1]
	}

	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil {
		return 0, fmt.Errorf("invalid byte string: %s", s)
	}

	return int64(value * float64(multiplier)), nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func trimSuffix(s, suffix string) string {
	for hasSuffix(s, suffix) {
		s = s[:len(s)-len(suffix)]
	}
	return s
}
