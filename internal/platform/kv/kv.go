// Package kv is a small key-value abstraction used for short-lived auth state.
// Redis backs it in deployed environments and an in-process map backs it in
// development and tests.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns ErrNotFound for missing keys.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// SetNX reports whether the key was written.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Take atomically reads and deletes key, so only one caller can consume it.
	Take(ctx context.Context, key string) ([]byte, error)
	Close() error
}
