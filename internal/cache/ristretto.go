package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Ristretto is a bounded in-memory store. Every entry costs 1, so MaxCost
// is the item limit.
type Ristretto struct {
	c *ristretto.Cache[string, []byte]
}

func NewRistretto(maxItems int64) (*Ristretto, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        maxItems * 10,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c}, nil
}

func (r *Ristretto) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := r.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set is write-through: it waits for ristretto's buffered write to land so
// that an immediate Get sees it. A value rejected by the admission policy is
// simply not cached.
func (r *Ristretto) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if r.c.SetWithTTL(key, value, 1, ttl) {
		r.c.Wait()
	}
	return nil
}

func (r *Ristretto) Ping(context.Context) error { return nil }

func (r *Ristretto) Close() error {
	r.c.Close()
	return nil
}
