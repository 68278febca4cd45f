package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Store reads the archive from an S3 bucket using the AWS SDK.
// Reads are billed to the requester when requesterPays is set, which the
// canonical archive bucket requires.
type S3Store struct {
	client        *s3.Client
	bucket        string
	requesterPays bool
}

// NewS3Store creates a store for the given bucket using the default AWS
// credential chain.
func NewS3Store(ctx context.Context, bucket, region string, requesterPays bool) (*S3Store, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("archive: load aws config: %w", err)
	}

	return &S3Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		requesterPays: requesterPays,
	}, nil
}

// FetchHour implements Store.
func (s *S3Store) FetchHour(ctx context.Context, coin string, day time.Time, hour int) (io.ReadCloser, error) {
	key := Key(coin, day, hour)

	in := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if s.requesterPays {
		in.RequestPayer = types.RequestPayerRequester
	}

	out, err := s.client.GetObject(ctx, in)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.bucket, key)
		}
		return nil, fmt.Errorf("archive: get s3://%s/%s: %w", s.bucket, key, err)
	}
	return out.Body, nil
}

// isNoSuchKey reports whether err means the object does not exist.
func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	// Some endpoints report missing keys as a generic API error.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
