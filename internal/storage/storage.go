package storage

import (
	"context"
	"fmt"
)

// Store is the minimal blob store the record layer persists through:
// synchronous get/set/remove over string keys with no expiry or eviction.
type Store interface {
	// Get returns the value at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value at key, replacing any prior value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendS3       Backend = "s3"
)

// Config carries the settings for whichever backend is selected; fields for
// other backends are ignored.
type Config struct {
	Backend Backend

	SQLitePath string

	PostgresURL string

	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// Open builds a Store from cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case BackendPostgres:
		return OpenPostgres(ctx, cfg.PostgresURL)
	case BackendS3:
		return OpenS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
