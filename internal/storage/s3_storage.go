package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fadilmartias/resume-api/internal/config"
)

type S3Storage struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

// NewS3Client builds a path-style client for an S3-compatible endpoint. Requests are
// never retried and checksums are only sent when an operation requires them.
func NewS3Client(ctx context.Context, cfg *config.StorageConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.Retryer = aws.NopRetryer{}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	}), nil
}

func NewS3Storage(client *s3.Client, bucket string, logger *slog.Logger) *S3Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &S3Storage{client: client, bucket: bucket, logger: logger}
}

func (s *S3Storage) Upload(ctx context.Context, path string, body []byte, contentType string) error {
	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("storage.upload.error", "bucket", s.bucket, "path", path, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return err
	}
	s.logger.Info("storage.upload.ok", "bucket", s.bucket, "path", path, "bytes", len(body),
		"elapsed_ms", time.Since(start).Milliseconds())
	return nil
}
