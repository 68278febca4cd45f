// Package sink writes decompressed snapshots durably to a local
// directory.
//
// Each file is streamed to a temporary ".partial" name, flushed, fsynced
// and then renamed into place, so an interrupted or failed write never
// leaves a file that looks complete.
package sink
