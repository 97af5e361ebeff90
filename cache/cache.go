package cache

import (
	"context"
	"errors"
)

// ImageCache holds resolved product image URLs so a cart reload does at most
// one catalog lookup per cold item.
type ImageCache interface {
	Get(ctx context.Context, productID string) (string, error)
	Set(ctx context.Context, productID, imageURL string) error
	Delete(ctx context.Context, productID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Noop is used when no Redis is configured; every lookup is a miss.
type Noop struct{}

func (Noop) Get(ctx context.Context, productID string) (string, error) {
	return "", ErrCacheMiss
}

func (Noop) Set(ctx context.Context, productID, imageURL string) error { return nil }

func (Noop) Delete(ctx context.Context, productID string) error { return nil }
