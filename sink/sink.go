// Package sink ships materialized frames to an object store.
//
// All providers implement the Store interface; callers depend only on this
// package, never on a specific provider package.
//
// Usage:
//
//	store, err := minio.New(ctx, sink.DefaultConfig("localhost:9000", "minioadmin", "minioadmin"))
//	if err != nil { ... }
//	defer store.Close()
//
//	err = sink.WriteCSV(ctx, store, "frames", "reports/users.csv", f)
package sink

import (
	"bytes"
	"context"
	"io"

	"github.com/koustreak/sqlframe/frame"
)

// Store is the interface all frame-sink providers implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// EnsureBucket creates the bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error

	// Put uploads an object of the given size and content type.
	Put(ctx context.Context, bucket, key, contentType string, r io.Reader, size int64) error
}

// Config holds the settings shared by sink providers.
type Config struct {
	// Endpoint is the host:port of the storage server.
	Endpoint string

	// AccessKey and SecretKey are the credentials (MinIO / S3 style).
	AccessKey string
	SecretKey string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string
}

// DefaultConfig returns a sensible local-dev config for MinIO.
func DefaultConfig(endpoint, accessKey, secretKey string) *Config {
	return &Config{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
	}
}

// WriteCSV uploads the CSV encoding of f as bucket/key.
// The bucket is created when missing.
func WriteCSV(ctx context.Context, s Store, bucket, key string, f *frame.Frame) error {
	var buf bytes.Buffer
	if err := f.WriteCSV(&buf); err != nil {
		return err
	}
	if err := s.EnsureBucket(ctx, bucket); err != nil {
		return err
	}
	return s.Put(ctx, bucket, key, "text/csv", &buf, int64(buf.Len()))
}
