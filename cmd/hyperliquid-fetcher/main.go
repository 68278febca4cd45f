package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/rickypang0219/hyperliquid-fetcher/internal/archive"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/config"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/progress"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/walker"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitStoreError   = 3
	ExitNoData       = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hyperliquid-fetcher", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "", "Path to YAML config file")
	coin := fs.String("coin", "", "Coin symbol to fetch (required)")
	start := fs.String("start", "", "Start date, YYYYMMDD (required)")
	end := fs.String("end", "", "End date, YYYYMMDD (required)")
	output := fs.String("output", "", "Local output directory (required)")
	bucket := fs.String("bucket", "", "Archive bucket name or gocloud bucket URL")
	region := fs.String("region", "", "AWS region of the archive bucket")
	chunkSize := fs.String("chunk-size", "", "Streaming copy buffer size (e.g. 4KB)")
	maxHourly := fs.Int("max-hourly-retries", 0, "Consecutive missing hours before a day is abandoned")
	maxDaily := fs.Int("max-daily-retries", 0, "Abandoned days before the walk gives up")
	skipHours := fs.Int("skip-hours", 0, "Hours to skip backward on a missing hour")
	noRequesterPays := fs.Bool("no-requester-pays", false, "Do not bill archive requests to the requester")
	quiet := fs.Bool("quiet", false, "Suppress per-hour progress lines")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: hyperliquid-fetcher [options]

Download hourly L2 book snapshots from the Hyperliquid archive, walking
backward from -end to -start, and store them decompressed under -output.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	// Flags set on the command line override file and environment.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "coin":
			cfg.Coin = *coin
		case "start":
			cfg.Start = *start
		case "end":
			cfg.End = *end
		case "output":
			cfg.Output = *output
		case "bucket":
			cfg.Bucket = *bucket
		case "region":
			cfg.Region = *region
		case "chunk-size":
			size, err := progress.ParseBytes(*chunkSize)
			if err != nil {
				flagErr = fmt.Errorf("parse -chunk-size: %w", err)
				return
			}
			cfg.ChunkSize = size
		case "max-hourly-retries":
			cfg.MaxHourlyRetries = *maxHourly
		case "max-daily-retries":
			cfg.MaxDailyRetries = *maxDaily
		case "skip-hours":
			cfg.SkipHours = *skipHours
		case "no-requester-pays":
			cfg.RequesterPays = !*noRequesterPays
		case "quiet":
			cfg.Progress = !*quiet
		}
	})
	if flagErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", flagErr)
		return ExitInvalidArgs
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	startDate, _ := cfg.StartDate()
	endDate, _ := cfg.EndDate()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[fetcher] Received interrupt, shutting down...")
		cancel()
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStoreError
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	reporter := progress.NewReporter(progress.Options{
		Coin:  cfg.Coin,
		Start: startDate,
		End:   endDate,
		Quiet: !cfg.Progress,
	})
	reporter.Start()

	w := walker.New(store, walker.Options{
		MaxHourlyRetries: cfg.MaxHourlyRetries,
		MaxDailyRetries:  cfg.MaxDailyRetries,
		SkipHours:        cfg.SkipHours,
		ChunkSize:        int(cfg.ChunkSize),
		Progress:         reporter,
	})

	result, err := w.Run(ctx, cfg.Coin, startDate, endDate, cfg.Output)
	if err != nil {
		reporter.Finish("failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, context.Canceled) {
			return ExitGeneralError
		}
		return ExitStoreError
	}

	reporter.Finish(result.String())
	if result == walker.Exhausted {
		fmt.Fprintln(os.Stderr, "[fetcher] Daily retries exhausted. No more historical data available.")
		return ExitNoData
	}
	return ExitSuccess
}

// openStore picks a backend from the bucket setting: a plain name means
// the canonical S3 archive via the AWS SDK (requester-pays capable),
// while a URL goes through the gocloud bucket opener.
func openStore(ctx context.Context, cfg config.Config) (archive.Store, error) {
	if strings.Contains(cfg.Bucket, "://") {
		return archive.OpenBlobStore(ctx, cfg.Bucket)
	}
	return archive.NewS3Store(ctx, cfg.Bucket, cfg.Region, cfg.RequesterPays)
}
