// Package objstore uploads pre-overwrite config backups to S3-compatible
// object storage. Off-site copies are optional; the pipeline treats every
// failure here as a warning.
package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Settings configure the backup destination. Read from the environment:
// HOSTFORGE_BACKUP_ENDPOINT, _REGION, _BUCKET, _ACCESS_KEY, _SECRET_KEY.
type Settings struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// FromEnv reads backup settings from the environment. Returns ok=false when
// the endpoint is unset, meaning off-site backups are disabled.
func FromEnv() (Settings, bool) {
	s := Settings{
		Endpoint:  os.Getenv("HOSTFORGE_BACKUP_ENDPOINT"),
		Region:    os.Getenv("HOSTFORGE_BACKUP_REGION"),
		Bucket:    os.Getenv("HOSTFORGE_BACKUP_BUCKET"),
		AccessKey: os.Getenv("HOSTFORGE_BACKUP_ACCESS_KEY"),
		SecretKey: os.Getenv("HOSTFORGE_BACKUP_SECRET_KEY"),
	}
	return s, s.Endpoint != ""
}

// Client wraps the S3 client for the backup bucket.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient creates a client for the configured object storage endpoint.
func NewClient(settings Settings) (*Client, error) {
	if settings.Bucket == "" {
		return nil, fmt.Errorf("backup bucket name must be set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, "")),
		config.WithRegion(settings.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(settings.Endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: settings.Bucket}, nil
}

// EnsureBucket creates the backup bucket if it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// UploadBackup stores one backup file under its base name.
func (c *Client) UploadBackup(ctx context.Context, localPath string, data []byte) error {
	key := path.Base(localPath)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload backup %s: %w", key, err)
	}
	return nil
}

// ListBackups returns the keys currently stored in the backup bucket.
func (c *Client) ListBackups(ctx context.Context, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	result, err := c.s3.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups in bucket %s: %w", c.bucket, err)
	}

	var keys []string
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

// isBucketAlreadyOwnedByYou checks if the error means the bucket exists and
// is ours.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	// S3-compatible services may only surface the API error code.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}
