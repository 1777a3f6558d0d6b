// Package storage archives written CSV files to an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ironsheep/diagnosis-ocr/internal/config"
	"github.com/ironsheep/diagnosis-ocr/internal/diagnosis"
)

// ContentType is set on every uploaded object.
const ContentType = "text/csv"

// Archiver uploads CSV files to one bucket.
type Archiver struct {
	client *minio.Client
	bucket string
	prefix string
	now    func() time.Time
}

// New connects to the configured endpoint and makes sure the bucket exists,
// creating it when missing.
func New(ctx context.Context, cfg config.StorageConfig) (*Archiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		now:    time.Now,
	}, nil
}

// Bucket returns the target bucket name.
func (a *Archiver) Bucket() string {
	return a.bucket
}

// Upload stores the file at filePath under a key derived from runID and the
// current UTC date, and returns that key.
func (a *Archiver) Upload(ctx context.Context, runID, filePath string) (string, error) {
	key := objectKey(a.prefix, runID, a.now())

	_, err := a.client.FPutObject(ctx, a.bucket, key, filePath, minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filePath, err)
	}

	return key, nil
}

// objectKey returns <prefix>/<yyyy>/<mm>/<dd>/<runID>-diagnosis.csv. An
// empty prefix drops the leading segment.
func objectKey(prefix, runID string, t time.Time) string {
	t = t.UTC()
	name := fmt.Sprintf("%s-%s", runID, diagnosis.FileName)
	date := fmt.Sprintf("%04d/%02d/%02d", t.Year(), int(t.Month()), t.Day())

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return path.Join(date, name)
	}
	return path.Join(prefix, date, name)
}
