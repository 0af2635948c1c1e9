package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/businesscontrol/portal/libs/config"
)

// s3API is the subset of the S3 client used by s3Storage
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// presignAPI is the subset of the S3 presign client used by s3Storage
type presignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// s3Storage keeps files in an S3 compatible bucket (AWS, MinIO)
type s3Storage struct {
	client    s3API
	presigner presignAPI
	bucket    string
	baseURL   string
}

// NewS3Storage builds an S3 client from static credentials.
// A custom endpoint switches to path-style addressing as MinIO requires.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*s3Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME is required for the s3 storage driver")
	}

	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	client := s3.New(opts)

	return newS3Storage(client, s3.NewPresignClient(client), cfg), nil
}

func newS3Storage(client s3API, presigner presignAPI, cfg config.StorageConfig) *s3Storage {
	baseURL := cfg.PublicBaseURL
	switch {
	case baseURL != "":
	case cfg.S3Endpoint != "":
		baseURL = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	default:
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &s3Storage{
		client:    client,
		presigner: presigner,
		bucket:    cfg.S3Bucket,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Put uploads r under key
func (s *s3Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return &Object{Key: key, URL: s.URL(key), Size: size}, nil
}

// Open downloads the object body
func (s *s3Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return out.Body, nil
}

// Delete removes the object
func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// Presign returns a PUT URL valid for lifetime
func (s *s3Storage) Presign(ctx context.Context, key, contentType string, lifetime time.Duration) (*Presigned, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(lifetime))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload %s: %w", key, err)
	}

	return &Presigned{UploadURL: req.URL, FileURL: s.URL(key)}, nil
}

// URL returns the public URL of key
func (s *s3Storage) URL(key string) string {
	return s.baseURL + "/" + key
}
