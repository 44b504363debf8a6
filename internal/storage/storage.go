package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage wraps an S3-compatible bucket holding uploaded media files.
// The bucket is expected to be publicly readable; PublicURL synthesizes
// the stable URL stored alongside each catalog row.
type Storage struct {
	client         *s3.Client
	bucket         string
	publicEndpoint string
	maxBytes       int64
}

type Config struct {
	Endpoint       string
	PublicEndpoint string // Used for public URLs; falls back to Endpoint if empty
	Bucket         string
	AccessKey      string
	SecretKey      string
	Region         string
	MaxUploadBytes int64
}

func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.Region == "" {
		cfg.Region = "eu-central-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	publicEndpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if cfg.PublicEndpoint != "" {
		publicEndpoint = strings.TrimSuffix(cfg.PublicEndpoint, "/")
	}

	return &Storage{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: publicEndpoint,
		maxBytes:       cfg.MaxUploadBytes,
	}, nil
}

// ObjectKey builds a collision-resistant key for an uploaded file, keeping
// only the original extension.
func ObjectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("videos/%s%s", uuid.New().String(), ext)
}

func (s *Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string, contentLength int64) error {
	if s == nil {
		return fmt.Errorf("storage not initialized")
	}
	if s.maxBytes > 0 && contentLength > s.maxBytes {
		return fmt.Errorf("file too large: %d > %d", contentLength, s.maxBytes)
	}

	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	}
	if contentLength > 0 {
		input.ContentLength = aws.Int64(contentLength)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the stable, path-style URL of an object in the bucket.
func (s *Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicEndpoint, s.bucket, key)
}

func (s *Storage) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

// EnsureBucket checks that the media bucket exists and creates it when
// missing. Called once during bootstrap, before the server accepts traffic.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}

	return nil
}

// MaxUploadBytes is the configured per-file size cap, shared with the
// upload handler and the limits endpoint.
func (s *Storage) MaxUploadBytes() int64 {
	if s == nil {
		return 0
	}
	return s.maxBytes
}

// UploadExpiry bounds how long a single object upload may take before the
// request context is cancelled.
const UploadExpiry = 30 * time.Minute
