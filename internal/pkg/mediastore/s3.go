package mediastore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sevatrust/core/internal/config"
)

// s3Store keeps assets in an S3-compatible bucket. Object keys carry the
// /upload/ marker and no file extension, so a stored URL inverts to the
// object key through the same public-id extraction the Cloudinary backend
// uses.
type s3Store struct {
	client       *s3.Client
	bucket       string
	region       string
	customDomain string
	pathStyle    bool
	endpoint     string
}

func newS3Store(cfg config.S3Config) (*s3Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	region := strings.TrimSpace(cfg.Region)
	if bucket == "" || region == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket and region are required")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	pathStyle := cfg.PathStyleAccess
	if endpoint != "" {
		pathStyle = true
	}

	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: pathStyle,
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	}

	return &s3Store{
		client:       s3.New(opts),
		bucket:       bucket,
		region:       region,
		customDomain: strings.TrimRight(strings.TrimSpace(cfg.CustomDomain), "/"),
		pathStyle:    pathStyle,
		endpoint:     endpoint,
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, in UploadInput) (string, error) {
	key := s.objectKey(in.Folder)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(in.Body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}
	return s.publicURL(key), nil
}

// Destroy deletes the object behind a public id. S3 DeleteObject on an
// absent key already succeeds, which matches the idempotence we need.
func (s *s3Store) Destroy(ctx context.Context, publicID string, _ ResourceType) error {
	key := "upload/" + strings.TrimPrefix(publicID, "/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 destroy: %w", err)
	}
	return nil
}

func (s *s3Store) objectKey(folder string) string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:18]
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "upload/" + name
	}
	return "upload/" + folder + "/" + name
}

func (s *s3Store) publicURL(key string) string {
	encoded := encodeKeyPath(key)
	if s.customDomain != "" {
		return s.customDomain + "/" + encoded
	}
	if s.endpoint != "" {
		if s.pathStyle {
			return s.endpoint + "/" + s.bucket + "/" + encoded
		}
		return s.endpoint + "/" + encoded
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, encoded)
}

func encodeKeyPath(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
