package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bnb/internal/app/policies"
	domainlistings "bnb/internal/domain/listings"
	infracatalog "bnb/internal/infra/catalog"
)

// maxDocumentSize caps how much of the object is read.
const maxDocumentSize = 4 << 20

// CatalogSource reads the data document from one object in an
// S3-compatible bucket. The object key's extension picks JSON or YAML.
type CatalogSource struct {
	bucket string
	object string
	client *minio.Client
	logger *slog.Logger
}

// NewCatalogSource configures a source using the provided endpoint and credentials.
func NewCatalogSource(endpoint string, useSSL bool, accessKey, secretKey, bucket, object string, logger *slog.Logger) (*CatalogSource, error) {
	cleanEndpoint := strings.TrimSpace(endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	if bucket = strings.TrimSpace(bucket); bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	if object = strings.Trim(strings.TrimSpace(object), "/"); object == "" {
		return nil, errors.New("s3: object key is required")
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	}
	minioClient, err := minio.New(parseEndpoint(cleanEndpoint), opts)
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	return &CatalogSource{
		bucket: bucket,
		object: object,
		client: minioClient,
		logger: logger,
	}, nil
}

func (s *CatalogSource) Name() string { return "s3:" + s.bucket + "/" + s.object }

func (s *CatalogSource) Load(ctx context.Context) (domainlistings.Catalog, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return domainlistings.Catalog{}, fmt.Errorf("s3: get object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentSize))
	if err != nil {
		return domainlistings.Catalog{}, fmt.Errorf("s3: read object: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("s3 catalog fetched", "bucket", s.bucket, "key", s.object, "bytes", len(data))
	}
	return infracatalog.Decode(s.object, data)
}

// Ping checks that the bucket is reachable.
func (s *CatalogSource) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("s3: check bucket: %w", err)
	}
	if !ok {
		return fmt.Errorf("s3: bucket %q does not exist", s.bucket)
	}
	return nil
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

var _ policies.CatalogSource = (*CatalogSource)(nil)
