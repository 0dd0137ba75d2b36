package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Service uploads snapshots to Amazon S3 (or compatible APIs).
type S3Service struct {
	uploader *manager.Uploader
}

func NewS3Service(client *s3.Client) *S3Service {
	return &S3Service{
		uploader: manager.NewUploader(client),
	}
}

func (s *S3Service) Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) (string, error) {
	if opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	fullKey := key
	if prefix := strings.Trim(opts.KeyPrefix, "/"); prefix != "" {
		fullKey = prefix + "/" + strings.TrimPrefix(key, "/")
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(opts.Bucket),
		Key:    aws.String(fullKey),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fullKey, err)
	}

	return fmt.Sprintf("s3://%s/%s", opts.Bucket, fullKey), nil
}

var _ Service = (*S3Service)(nil)
