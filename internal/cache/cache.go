// Package cache holds the keyed, expiring blob stores the catalog service and
// the atlas client keep their responses in.
//
// Values are opaque bytes: callers encode before Set and decode after Get, so
// a hit hands back exactly the bytes that were written.
package cache

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultTTL      = time.Hour
	DefaultMaxItems = 1000
)

var ErrClosed = errors.New("cache closed")

// Store is the contract both backends satisfy. Get reports a miss with
// ok=false and a nil error; expired entries are misses.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend named by kind ("ristretto" or "badger").
func Open(kind string, maxItems int64, badgerPath string) (Store, error) {
	switch kind {
	case "", "ristretto":
		return NewRistretto(maxItems)
	case "badger":
		return OpenBadger(BadgerConfig{Path: badgerPath, InMemory: badgerPath == ""})
	default:
		return nil, errors.New("unknown cache backend: " + kind)
	}
}
