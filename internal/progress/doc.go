// Package progress provides progress reporting for archive walks.
//
// The reporter prints one human-readable line per event as the walker
// moves backward through the archive, plus a final summary.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    Coin:   "BTC",
//	    Output: os.Stderr,
//	})
//
//	reporter.Start()
//	// ... per-event calls from the walker ...
//	reporter.Finish("completed")
//
// # Output Format
//
//	[fetcher] Fetching BTC backward from 20250630 to 20250601
//	[fetcher] Fetched market_data/20250630/23/l2Book/BTC.lz4 (1.21 MB)
//	[fetcher] Missing market_data/20250630/21/l2Book/BTC.lz4
//	[fetcher] Moving to previous day (retries exhausted): 20250629 | Daily retries left: 2
//	[fetcher] Done (completed): 212 files | 250.51 MB | 3m 12s | 1.30 MB/s
package progress
