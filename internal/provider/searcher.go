package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/tunematch/internal/match"
	"github.com/llehouerou/tunematch/internal/metadata"
)

// ErrNoProviders is returned when a Searcher has nothing to query.
var ErrNoProviders = errors.New("no metadata providers enabled")

// Searcher fans a search out to every provider and merges the answers.
type Searcher struct {
	providers  []Provider
	cache      Cache
	ttl        time.Duration
	maxResults int
	log        *zap.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithCache stores answers in c and reuses them for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Searcher) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithMaxResults caps the merged result list. Zero means no cap.
func WithMaxResults(n int) Option {
	return func(s *Searcher) { s.maxResults = n }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Searcher) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSearcher creates a Searcher over providers.
func NewSearcher(providers []Provider, opts ...Option) *Searcher {
	s := &Searcher{
		providers: providers,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the names of the queried providers.
func (s *Searcher) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Search looks up candidates for the scanned files.
func (s *Searcher) Search(ctx context.Context, files []metadata.MetadataItem) ([]metadata.ProviderResult, error) {
	return s.run(ctx, BuildQueries(files), files)
}

// SearchManual looks up candidates for a free-form query and scores them
// against the scanned files.
func (s *Searcher) SearchManual(ctx context.Context, input string, files []metadata.MetadataItem) ([]metadata.ProviderResult, error) {
	return s.run(ctx, ManualQueries(input, len(files)), files)
}

// run queries every provider concurrently. Each provider tries the queries
// in order and stops at the first one that returns candidates. The search
// fails only when every provider fails.
func (s *Searcher) run(ctx context.Context, queries []Query, files []metadata.MetadataItem) ([]metadata.ProviderResult, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProviders
	}
	if len(queries) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results []metadata.ProviderResult
		errs    []error
	)

	var g errgroup.Group
	for _, p := range s.providers {
		g.Go(func() error {
			found, err := s.searchProvider(ctx, p, queries)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				return nil
			}
			results = append(results, found...)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(errs) == len(s.providers) {
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		s.log.Warn("provider search failed", zap.Error(err))
	}

	if len(files) > 0 {
		for i := range results {
			results[i].Score = match.ScoreCandidate(files, results[i])
		}
	}
	match.Rank(results)
	if s.maxResults > 0 && len(results) > s.maxResults {
		results = results[:s.maxResults]
	}

	s.log.Debug("search complete",
		zap.Int("queries", len(queries)),
		zap.Int("results", len(results)),
		zap.Int("failed_providers", len(errs)))
	return results, nil
}

// searchProvider returns the first non-empty answer of p. It fails only
// when every query failed.
func (s *Searcher) searchProvider(ctx context.Context, p Provider, queries []Query) ([]metadata.ProviderResult, error) {
	var lastErr error
	failed := 0
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := s.query(ctx, p, q)
		if err != nil {
			s.log.Debug("provider query failed",
				zap.String("provider", p.Name()),
				zap.String("query", q.Key()),
				zap.Error(err))
			lastErr = err
			failed++
			continue
		}
		if len(found) > 0 {
			for i := range found {
				found[i].Provider = p.Name()
			}
			return found, nil
		}
	}
	if failed == len(queries) {
		return nil, lastErr
	}
	return nil, nil
}

func (s *Searcher) query(ctx context.Context, p Provider, q Query) ([]metadata.ProviderResult, error) {
	key := q.Key()
	if s.cache != nil {
		cached, ok, err := s.cache.LoadSearch(p.Name(), key, s.ttl)
		if err != nil {
			s.log.Warn("load cached search", zap.String("provider", p.Name()), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	found, err := q.run(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveSearch(p.Name(), key, found); err != nil {
			s.log.Warn("save cached search", zap.String("provider", p.Name()), zap.Error(err))
		}
	}
	return found, nil
}
