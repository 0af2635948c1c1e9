// Package storage keeps uploaded submission files on the local filesystem or in an S3 compatible bucket
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/businesscontrol/portal/libs/config"
)

// ErrPresignUnsupported is returned by drivers that cannot hand out direct upload URLs
var ErrPresignUnsupported = errors.New("presigned uploads are not supported by this storage driver")

// ErrInvalidKey is returned for keys escaping the upload folder
var ErrInvalidKey = errors.New("invalid object key")

// Object describes a stored file
type Object struct {
	Key  string
	URL  string
	Size int64
}

// Presigned holds a direct upload URL and the URL the file will be reachable at
type Presigned struct {
	UploadURL string
	FileURL   string
}

// localStorage keeps files under basePath and serves them through the API
type localStorage struct {
	basePath      string
	publicBaseURL string
}

// NewLocalStorage creates a new localStorage instance.
// publicBaseURL is the URL prefix of the file route, e.g. "http://localhost:8080/api/v1/files".
func NewLocalStorage(basePath, publicBaseURL string) *localStorage {
	return &localStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// generatePath returns the filesystem path of key, rejecting keys outside the upload folder
func (s *localStorage) generatePath(key string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + key))[1:]
	if !strings.HasPrefix(clean, KeyPrefix) || clean != key {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.basePath, filepath.FromSlash(clean)), nil
}

// Put stores r under key
func (s *localStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error) {
	path, err := s.generatePath(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Count bytes while copying
	sw := &sizeWriter{}
	if _, err := io.Copy(file, io.TeeReader(r, sw)); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Object{Key: key, URL: s.URL(key), Size: sw.Size()}, nil
}

// Open opens a stored file for reading
func (s *localStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.generatePath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a file
func (s *localStorage) Delete(ctx context.Context, key string) error {
	path, err := s.generatePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Presign is not available for the local driver, uploads go through POST /submissions
func (s *localStorage) Presign(ctx context.Context, key, contentType string, lifetime time.Duration) (*Presigned, error) {
	return nil, ErrPresignUnsupported
}

// URL returns the public URL of key
func (s *localStorage) URL(key string) string {
	return s.publicBaseURL + "/" + key
}

// Backend is implemented by every storage driver
type Backend interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Presign(ctx context.Context, key, contentType string, lifetime time.Duration) (*Presigned, error)
	URL(key string) string
}

// New returns the backend selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig, apiBaseURL string) (Backend, error) {
	switch cfg.Driver {
	case "", "local":
		base := cfg.PublicBaseURL
		if base == "" {
			base = strings.TrimRight(apiBaseURL, "/") + "/api/v1/files"
		}
		return NewLocalStorage(cfg.MediaBasePath, base), nil
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
