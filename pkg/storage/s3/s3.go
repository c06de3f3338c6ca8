// Package s3 implements an S3-compatible object-store backend.
// It supports AWS S3, MinIO and other S3-compatible services; retrieval
// URLs are presigned so clients fetch bytes from the bucket directly.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/docshelf/docshelf/pkg/config"
	"github.com/docshelf/docshelf/pkg/storage"
)

const keyPrefix = "documents"

// DefaultPresignExpiry is the expiry for presigned retrieval URLs.
const DefaultPresignExpiry = 7 * 24 * time.Hour

// Store implements storage.ObjectStore using an S3-compatible bucket.
type Store struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// New creates an S3 backend.
func New(cfg config.S3Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, storage.ErrNotConfigured
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3OptFns []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3OptFns = append(s3OptFns, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.PathStyle {
		s3OptFns = append(s3OptFns, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3OptFns...)
	return &Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
	}, nil
}

// Upload puts the document bytes into the bucket and presigns a retrieval
// URL for it.
func (s *Store) Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	key := keyFor(in.FileName)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(in.Data),
		ContentLength: aws.Int64(int64(len(in.Data))),
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	presigned, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = DefaultPresignExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("presign url: %w", err)
	}

	return &storage.UploadResult{URL: presigned.URL, ObjectID: key}, nil
}

// Delete removes the stored object.
func (s *Store) Delete(ctx context.Context, objectID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectID),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func keyFor(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s_%s", keyPrefix, uuid.NewString(), base)
}
