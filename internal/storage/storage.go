package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	appconfig "dental-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore holds patient X-ray images and archived treatment reports in an
// S3-compatible bucket (R2 in production).
type ObjectStore struct {
	client *s3.Client
	bucket string
}

// New builds the store from the storage config. Returns nil without error
// when no endpoint is configured; callers treat a nil store as "uploads
// disabled".
func New(ctx context.Context, cfg *appconfig.Config) (*ObjectStore, error) {
	if cfg.Storage.Endpoint == "" || cfg.Storage.AccessKey == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
	})

	return &ObjectStore{client: client, bucket: cfg.Storage.Bucket}, nil
}

// Put uploads one object and returns its key.
func (s *ObjectStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Get downloads one object.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// List returns the keys under a prefix, newest first by modification time.
func (s *ObjectStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	result, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	var objects []ObjectInfo
	for _, obj := range result.Contents {
		info := ObjectInfo{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		objects = append(objects, info)
	}
	return objects, nil
}

// Delete removes one object.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// XRayKey builds the storage key for a patient radiograph.
func XRayKey(doctorID int, fileID, imageName string) string {
	return fmt.Sprintf("xrays/%d/%s/%s", doctorID, fileID, imageName)
}

// ReportKey builds the storage key for an archived treatment report.
func ReportKey(doctorID int, fileID, reportID string) string {
	return fmt.Sprintf("reports/%d/%s/%s.pdf", doctorID, fileID, reportID)
}
