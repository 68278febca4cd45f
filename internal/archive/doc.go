// Package archive provides read access to the Hyperliquid historical
// market-data archive.
//
// The archive stores one lz4-compressed L2 book snapshot per coin per
// hour, keyed as:
//
//	market_data/{YYYYMMDD}/{hour}/l2Book/{COIN}.lz4
//
// where the hour is rendered without zero padding (0-23).
//
// # Clients
//
// Two Store implementations are provided:
//
//   - S3Store talks to the canonical archive bucket on S3 using the AWS
//     SDK directly, because the archive is requester-pays and the
//     portable blob layer cannot set RequestPayer on reads.
//   - BlobStore wraps a gocloud.dev bucket URL (s3://, file://, mem://),
//     which is useful for mirrors and for tests.
//
// Both map a missing object to ErrNotFound so callers can distinguish
// gaps in the archive from real transport failures with errors.Is.
package archive
