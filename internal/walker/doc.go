// Package walker implements the backward fetch walk over the hourly
// archive index.
//
// The walk starts at hour 23 of the end date and moves backward toward
// the start date, downloading one lz4-compressed snapshot per hour and
// writing the decompressed payload durably to a local directory.
//
// # Retry model
//
// Two budgets bound the walk:
//
//   - A per-day budget of consecutive missing hours. A miss skips
//     backward by SkipHours (default 2) instead of 1; once the budget is
//     consumed, the remainder of the day is abandoned.
//   - A per-walk budget of abandoned days. When it runs out the walk
//     terminates with Exhausted, the signal that the cursor has moved
//     past the oldest data the archive holds.
//
// A successful hour resets the per-day budget. Any store error other
// than not-found aborts the walk immediately and is returned to the
// caller.
package walker
