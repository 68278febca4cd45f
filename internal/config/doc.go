// Package config defines configuration structures for the fetcher CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (FETCHER_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    Coin             string
//	    Start            string
//	    End              string
//	    Output           string
//	    Bucket           string
//	    Region           string
//	    RequesterPays    bool
//	    ChunkSize        int64
//	    MaxHourlyRetries int
//	    MaxDailyRetries  int
//	    SkipHours        int
//	    Progress         bool
//	}
package config
