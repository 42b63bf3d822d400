package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// MinioStore keeps artifacts as objects in a MinIO (or any S3 compatible)
// bucket, under MinioConfig.Prefix.
type MinioStore struct {
	client   *minio.Client
	cfg      MinioConfig
	logger   Logger
	observer observability.Observer
}

// NewMinioStore builds the client. It does not touch the network; call
// EnsureBucket to validate the connection.
func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint cannot be empty")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("minio bucket name cannot be empty")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStore{client: client, cfg: cfg}, nil
}

// WithObserver attaches an observer notified of every operation.
func (s *MinioStore) WithObserver(observer observability.Observer) *MinioStore {
	s.observer = observer
	return s
}

// WithLogger attaches a logger for bucket management messages.
func (s *MinioStore) WithLogger(logger Logger) *MinioStore {
	s.logger = logger
	return s
}

// EnsureBucket checks the configured bucket exists, creating it when
// CreateBucket is set.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bucket := s.cfg.BucketName
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if !s.cfg.CreateBucket {
		return fmt.Errorf("bucket %s does not exist, please create it manually", bucket)
	}

	s.logInfo("Bucket does not exist, creating it", map[string]interface{}{
		"bucket": bucket,
		"region": s.cfg.Region,
	})
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	s.logInfo("Successfully created bucket", map[string]interface{}{"bucket": bucket})
	return nil
}

func (s *MinioStore) key(name string) string {
	return s.cfg.Prefix + name
}

// Get downloads the object called name.
func (s *MinioStore) Get(ctx context.Context, name string) (data []byte, err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendMinio, "get", name, start, err, int64(len(data))) }()

	obj, err := s.client.GetObject(ctx, s.cfg.BucketName, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(name, err)
	}
	defer obj.Close()

	data, err = io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(name, err)
	}
	return data, nil
}

// Put uploads data as name. Object replacement is atomic on the server.
func (s *MinioStore) Put(ctx context.Context, name string, data []byte) (err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendMinio, "put", name, start, err, int64(len(data))) }()

	_, err = s.client.PutObject(ctx, s.cfg.BucketName, s.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("failed to upload artifact %s: %w", name, err)
	}
	return nil
}

// Delete removes name. Deleting a missing object is not an error.
func (s *MinioStore) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendMinio, "delete", name, start, err, 0) }()

	if err = s.client.RemoveObject(ctx, s.cfg.BucketName, s.key(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", name, err)
	}
	return nil
}

// List returns the artifact names under the configured prefix, sorted.
func (s *MinioStore) List(ctx context.Context) (names []string, err error) {
	start := time.Now()
	defer func() { observeOperation(s.observer, BackendMinio, "list", "", start, err, 0) }()

	for obj := range s.client.ListObjects(ctx, s.cfg.BucketName, minio.ListObjectsOptions{
		Prefix:    s.cfg.Prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list artifacts: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.cfg.Prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ArtifactExt) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MinioStore) translate(name string, err error) error {
	if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fmt.Errorf("failed to download artifact %s: %w", name, err)
}

func (s *MinioStore) logInfo(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, nil, fields)
	}
}
