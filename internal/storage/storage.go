// Package storage stores uploaded company logo images in an object
// store (MinIO or GCS) and hands back the public URL that goes into a
// posting's logoUrl field.
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage defines the object operations the logo store needs
// across backends. Serving the assets is left to a CDN or proxy.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Bucket() string
}

// LogoStore wraps an ObjectStorage backend and assigns object keys and
// public URLs for uploaded logos.
type LogoStore struct {
	backend       ObjectStorage
	publicBaseURL string
}

// NewLogoStore constructs a LogoStore. publicBaseURL, when set, is the
// externally reachable prefix for uploaded objects; when empty, URLs
// are bucket-relative paths for a fronting proxy to resolve.
func NewLogoStore(backend ObjectStorage, publicBaseURL string) *LogoStore {
	return &LogoStore{
		backend:       backend,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// EnsureBucket ensures the configured bucket exists.
func (s *LogoStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Upload stores a logo under a fresh key and returns its public URL.
func (s *LogoStore) Upload(ctx context.Context, ext string, r io.Reader, size int64, contentType string) (string, error) {
	key := uuid.NewString()
	if ext != "" {
		key += ext
	}
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return s.url(key), nil
}

func (s *LogoStore) url(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return "/" + s.backend.Bucket() + "/" + key
}
