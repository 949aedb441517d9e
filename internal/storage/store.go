// Package storage keeps raw recordings, serialized note sequences and
// metering data in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrObjectNotFound is returned when a key has no stored object.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore handles file storage operations
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
}

// Backend names accepted by New.
const (
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config holds configuration for the object store
type Config struct {
	Backend   string
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLExpiry time.Duration
}

func (c Config) urlExpiry() time.Duration {
	if c.URLExpiry <= 0 {
		return 15 * time.Minute
	}
	return c.URLExpiry
}

// New returns the store selected by cfg.Backend, defaulting to S3.
func New(cfg Config) (ObjectStore, error) {
	switch cfg.Backend {
	case "", BackendS3:
		return NewS3Store(cfg)
	case BackendMinio:
		return NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Content types used for stored objects.
const (
	ContentTypeNotes    = "text/plain; charset=utf-8"
	ContentTypeMetering = "application/json"
)

var audioContentTypes = map[string]string{
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
}

// AudioContentType returns the MIME type for a supported recording extension.
func AudioContentType(ext string) (string, bool) {
	ct, ok := audioContentTypes[ext]
	return ct, ok
}

// validateContentType validates that the content type is supported
func validateContentType(contentType string) error {
	switch contentType {
	case ContentTypeNotes, ContentTypeMetering:
		return nil
	}
	for _, ct := range audioContentTypes {
		if ct == contentType {
			return nil
		}
	}
	return fmt.Errorf("invalid content type: %s", contentType)
}

// AudioKey is where the raw upload for a sequence lives.
func AudioKey(base, ext string) string {
	return fmt.Sprintf("audio/%s%s", base, ext)
}

// NotesKey is where the serialized note sequence lives.
func NotesKey(base string) string {
	return fmt.Sprintf("notes/%s.txt", base)
}

// MeteringKey is where the level-metering list lives.
func MeteringKey(base string) string {
	return fmt.Sprintf("metering/%s.json", base)
}
