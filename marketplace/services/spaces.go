package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/carrybid/carrybid/internal/domain/media"
	"golang.org/x/sync/semaphore"
)

const defaultMaxUploads = 8

type SpacesConfig struct {
	Key        string `toml:"key"`
	Secret     string `toml:"secret"`
	Region     string `toml:"region"`
	Bucket     string `toml:"bucket"`
	Root       string `toml:"root"`
	Endpoint   string `toml:"endpoint"`
	PublicURL  string `toml:"public_url"`
	MaxUploads int64  `toml:"max_uploads"`
}

// Enabled reports whether credentials and a bucket are configured.
func (c SpacesConfig) Enabled() bool {
	return c.Key != "" && c.Secret != "" && c.Bucket != ""
}

// SpacesService stores uploads in an S3 compatible bucket with public-read
// ACLs.
type SpacesService struct {
	client    *s3.Client
	bucket    string
	region    string
	root      string
	publicURL string
	uploads   *semaphore.Weighted
}

var _ media.Store = (*SpacesService)(nil)

func NewSpacesService(ctx context.Context, c SpacesConfig) (*SpacesService, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", c.Region)
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.Key, c.Secret, "")),
		config.WithRegion(c.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicURL := c.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.%s.digitaloceanspaces.com", c.Bucket, c.Region)
	}
	max := c.MaxUploads
	if max <= 0 {
		max = defaultMaxUploads
	}

	return &SpacesService{
		client:    client,
		bucket:    c.Bucket,
		region:    c.Region,
		root:      strings.Trim(c.Root, "/"),
		publicURL: strings.TrimSuffix(publicURL, "/"),
		uploads:   semaphore.NewWeighted(max),
	}, nil
}

func (s *SpacesService) objectKey(obj media.Object) string {
	if s.root == "" {
		return obj.Key()
	}
	return s.root + "/" + obj.Key()
}

// Put uploads obj and returns its public URL. Concurrent uploads across all
// callers are bounded.
func (s *SpacesService) Put(ctx context.Context, obj media.Object) (string, error) {
	if err := s.uploads.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.uploads.Release(1)

	key := s.objectKey(obj)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Data),
		ContentLength: aws.Int64(int64(len(obj.Data))),
		ContentType:   aws.String(obj.ContentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		slog.Error("Upload failed",
			slog.String("type", "sys"),
			slog.String("bucket", s.bucket),
			slog.String("key", key),
			slog.Any("error", err))
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	slog.Info("Upload stored",
		slog.String("type", "sys"),
		slog.String("key", key),
		slog.Int("bytes", len(obj.Data)))
	return s.publicURL + "/" + key, nil
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
