package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sony/gobreaker"
	"github.com/vidtube/vidtube-api-go/internal/config"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// objectClient is the part of *minio.Client the store uses.
type objectClient interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStore is an AssetStore backed by an S3 compatible bucket.
type MinioStore struct {
	client    objectClient
	bucket    string
	publicURL string
	timeout   time.Duration
	probe     ProbeFunc
	breaker   *gobreaker.CircuitBreaker
}

// NewMinioStore connects to the asset host and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Log.Info("Created asset bucket", zap.String("bucket", cfg.Bucket))
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return newMinioStore(client, cfg.Bucket, publicURL, cfg.Timeout, ProbeDuration), nil
}

func newMinioStore(client objectClient, bucket, publicURL string, timeout time.Duration, probe ProbeFunc) *MinioStore {
	return &MinioStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   timeout,
		probe:     probe,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "asset-host",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// A caller giving up says nothing about the asset host.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Log.Warn("Circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (s *MinioStore) Upload(ctx context.Context, kind Kind, localPath string) (*Object, error) {
	defer removeTemp(localPath)

	var duration float64
	if kind == KindVideo && s.probe != nil {
		d, err := s.probe(localPath)
		if err != nil {
			logger.Log.Warn("Could not read video duration", zap.Error(err), zap.String("path", localPath))
		}
		duration = d
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	objectName := fmt.Sprintf("%s/%s%s", kind.folder(), uuid.NewString(), ext)

	err := s.execute(ctx, func(ctx context.Context) error {
		_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
			ContentType: contentType(ext),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", kind, err)
	}

	return &Object{
		PublicID: objectName,
		URL:      s.publicURL + "/" + objectName,
		Duration: duration,
	}, nil
}

func (s *MinioStore) Delete(ctx context.Context, kind Kind, publicID string) error {
	if publicID == "" {
		return nil
	}
	err := s.execute(ctx, func(ctx context.Context) error {
		return s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, publicID, err)
	}
	return nil
}

// execute runs op under the breaker and the configured timeout.
func (s *MinioStore) execute(ctx context.Context, op func(context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, op(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func contentType(ext string) string {
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warn("Failed to remove temp upload", zap.Error(err), zap.String("path", path))
	}
}
