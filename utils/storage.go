package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore persists product images and returns the reference stored on the product.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// LocalImageStore writes images under Dir; they are served from /images.
type LocalImageStore struct {
	Dir string
}

func (s *LocalImageStore) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return "/images/" + name, nil
}

type S3ImageStore struct {
	uploader   *manager.Uploader
	bucket     string
	publicBase string
}

// NewS3ImageStore loads the default AWS config chain (env, shared files, instance role).
func NewS3ImageStore(ctx context.Context, bucket, publicBase string) (*S3ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		uploader:   manager.NewUploader(client),
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := "products/" + filepath.Base(name)
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key, nil
	}
	return result.Location, nil
}
