package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const (
	pingTimeout = 1 * time.Second
	opTimeout   = 2 * time.Second
)

type BadgerConfig struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// Log receives badger's internal messages. Nil silences them.
	Log *zap.Logger
}

// Badger stores entries in an embedded badger database with a per-entry
// TTL. It has no item bound; expired keys are dropped by compaction.
type Badger struct {
	db *badger.DB
}

func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger path is required unless in memory")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger dir %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Log != nil {
		opts = opts.WithLogger(badgerLogger{cfg.Log.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var out []byte

	err := withTimeout(ctx, opTimeout, func(ctx context.Context) error {
		return b.db.View(func(txn *badger.Txn) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			out, err = item.ValueCopy(nil)
			return err
		})
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, false, nil
	case errors.Is(err, badger.ErrDBClosed):
		return nil, false, ErrClosed
	case err != nil:
		return nil, false, err
	}
	return out, true, nil
}

func (b *Badger) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := withTimeout(ctx, opTimeout, func(ctx context.Context) error {
		return b.db.Update(func(txn *badger.Txn) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e := badger.NewEntry([]byte(key), value)
			if ttl > 0 {
				e = e.WithTTL(ttl)
			}
			return txn.SetEntry(e)
		})
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	return err
}

func (b *Badger) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		if b.db.IsClosed() {
			return ErrClosed
		}
		return ctx.Err()
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, args ...any)   { l.s.Errorf(f, args...) }
func (l badgerLogger) Warningf(f string, args ...any) { l.s.Warnf(f, args...) }
func (l badgerLogger) Infof(f string, args ...any)    { l.s.Debugf(f, args...) }
func (l badgerLogger) Debugf(f string, args ...any)   { l.s.Debugf(f, args...) }
