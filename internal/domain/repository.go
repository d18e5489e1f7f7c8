package domain

import (
	"context"
	"time"
)

// LabelExtractor defines the interface for the vision provider that reads
// structured fields off a label photograph
type LabelExtractor interface {
	ExtractLabel(ctx context.Context, imageData []byte, mimeType string) (*ExtractedRecord, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
