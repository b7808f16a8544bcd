package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"ParasiteAtlas/internal/wiki"
)

const (
	// searchBias is appended to every query to steer the encyclopedia
	// towards microbiology articles.
	searchBias    = "parasite bacteria microorganism"
	maxSearchHits = 10

	defaultTTL = time.Hour

	categoriesKey = "parasite:categories"
)

// Upstream is the encyclopedia the service reads from.
type Upstream interface {
	Search(ctx context.Context, term string) ([]wiki.SearchHit, error)
	Summary(ctx context.Context, title string) (wiki.Summary, error)
}

// Cache stores encoded responses under request-derived keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type ServiceDeps struct {
	Upstream Upstream
	Cache    Cache
	Log      *zap.Logger
	Metrics  *Metrics
	// TTL applies to every cache write. Zero means one hour.
	TTL time.Duration
}

// Service answers catalog reads. It never returns upstream failures to
// its callers: a failed search degrades to the fallback dataset and a
// failed lookup is reported as not found.
type Service struct {
	upstream Upstream
	cache    Cache
	log      *zap.Logger
	metrics  *Metrics
	ttl      time.Duration
}

func NewService(deps ServiceDeps) *Service {
	s := &Service{
		upstream: deps.Upstream,
		cache:    deps.Cache,
		log:      deps.Log,
		metrics:  deps.Metrics,
		ttl:      deps.TTL,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}
	return s
}

func searchKey(query, category string) string {
	if category == "" {
		category = CategoryAll
	}
	return "parasites:search:" + query + ":" + category
}

func entryKey(id string) string {
	return "parasite:" + id
}

// normalizeCategory folds the "all" sentinel into "no filter".
func normalizeCategory(category string) string {
	if category == CategoryAll {
		return ""
	}
	return category
}

// Search finds entries for query, optionally restricted to one category.
// Summaries are fetched one at a time, and a summary that fails to load is
// skipped rather than failing the search.
func (s *Service) Search(ctx context.Context, query, category string) []Entry {
	category = normalizeCategory(category)
	key := searchKey(query, category)

	var cached []Entry
	if s.load(ctx, opSearch, key, &cached) {
		s.log.Info("returning cached results", zap.String("query", query), zap.String("category", category))
		return cached
	}

	hits, err := s.upstream.Search(ctx, query+" "+searchBias)
	if err != nil {
		s.metrics.upstreamFailure(callSearch)
		s.metrics.fallback()
		s.log.Error("search failed, serving fallback dataset",
			zap.Error(err), zap.String("query", query), zap.String("category", category))
		return Fallback(query, category)
	}

	if len(hits) > maxSearchHits {
		hits = hits[:maxSearchHits]
	}

	out := make([]Entry, 0, len(hits))
	for _, h := range hits {
		e, ok := s.fetch(ctx, h.Title)
		if !ok {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}

	// an aborted request would otherwise pin a truncated result for a whole TTL
	if ctx.Err() != nil {
		return out
	}

	s.store(ctx, key, out)
	s.log.Info("search done",
		zap.String("query", query), zap.String("category", category),
		zap.Int("hits", len(hits)), zap.Int("results", len(out)))
	return out
}

// Get looks up one entry; id doubles as the encyclopedia title.
func (s *Service) Get(ctx context.Context, id string) (Entry, bool) {
	key := entryKey(id)

	var cached Entry
	if s.load(ctx, opGet, key, &cached) {
		return cached, true
	}

	e, ok := s.fetch(ctx, id)
	if !ok {
		return Entry{}, false
	}

	s.store(ctx, key, e)
	return e, true
}

func (s *Service) Categories(ctx context.Context) []string {
	var cached []string
	if s.load(ctx, opCategories, categoriesKey, &cached) {
		return cached
	}

	cats := Categories()
	s.store(ctx, categoriesKey, cats)
	return cats
}

// Ping reports whether the cache backend is usable.
func (s *Service) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func (s *Service) fetch(ctx context.Context, title string) (Entry, bool) {
	sum, err := s.upstream.Summary(ctx, title)
	if err != nil {
		if errors.Is(err, wiki.ErrNotFound) {
			s.log.Debug("summary not found", zap.String("title", title))
		} else {
			s.metrics.upstreamFailure(callSummary)
			s.log.Warn("summary fetch failed", zap.Error(err), zap.String("title", title))
		}
		return Entry{}, false
	}

	e, ok := FromSummary(title, sum)
	if !ok {
		s.log.Debug("skipping non-standard article", zap.String("title", title))
	}
	return e, ok
}

func (s *Service) load(ctx context.Context, op, key string, out any) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", zap.Error(err), zap.String("key", key))
		ok = false
	}
	if ok {
		if err := json.Unmarshal(raw, out); err != nil {
			s.log.Warn("cache entry undecodable", zap.Error(err), zap.String("key", key))
			ok = false
		}
	}

	s.metrics.cacheLookup(op, ok)
	return ok
}

func (s *Service) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("cache encode failed", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("cache write failed", zap.Error(err), zap.String("key", key))
	}
}
