package geocode

import (
	"context"
	"errors"
	"sync"
	"time"

	"solar-forecast-service/models"
)

// Provider is an interface for services that resolve a free-text city query
// to candidate locations.
type Provider interface {
	// Lookup returns zero or more candidates for a query, ranked by
	// provider relevance.
	Lookup(ctx context.Context, query string) ([]models.CityCandidate, error)

	// Name returns the provider's name
	Name() string
}

var (
	// ErrNoResults means the provider answered but found no candidates.
	// Distinct from a transport failure, which is returned wrapped.
	ErrNoResults = errors.New("geocode: no matching cities")

	// ErrSuperseded means a newer query arrived while this one was pending.
	// Callers drop it silently; it is never a user-visible error.
	ErrSuperseded = errors.New("geocode: query superseded")
)

const (
	// MinQueryLength is the shortest query that triggers a lookup.
	MinQueryLength = 2

	defaultDebounce = 300 * time.Millisecond
	defaultCacheTTL = 10 * time.Second
)

// cachedLookup is the single most recent committed result.
type cachedLookup struct {
	query      string
	candidates []models.CityCandidate
	timestamp  time.Time
}

// Resolver turns free-text city input into candidate locations. Rapid
// successive queries collapse to the latest one: earlier pending lookups are
// cancelled during the debounce window or, if already in flight, their
// results are discarded before commit. At most one lookup is logically
// current at any time.
type Resolver struct {
	provider Provider
	debounce time.Duration
	cacheTTL time.Duration

	mu         sync.Mutex
	generation uint64
	cancelPrev context.CancelFunc
	cache      *cachedLookup

	// test hook; nil outside tests
	now func() time.Time
}

// NewResolver creates a resolver with the default 300ms debounce and 10s
// result cache.
func NewResolver(provider Provider) *Resolver {
	return &Resolver{
		provider: provider,
		debounce: defaultDebounce,
		cacheTTL: defaultCacheTTL,
		now:      time.Now,
	}
}

// SetDebounce overrides the debounce window. Zero disables debouncing.
func (r *Resolver) SetDebounce(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debounce = d
}

// Search resolves a query to candidates.
//
// Queries shorter than MinQueryLength return an empty list with no error and
// no network call. A repeat of the cached query inside the freshness window
// short-circuits the network. A query superseded by a newer one returns
// ErrSuperseded. A provider zero-result answer returns ErrNoResults.
func (r *Resolver) Search(ctx context.Context, query string) ([]models.CityCandidate, error) {
	if len(query) < MinQueryLength {
		return []models.CityCandidate{}, nil
	}

	r.mu.Lock()
	if c := r.cache; c != nil && c.query == query && r.now().Sub(c.timestamp) < r.cacheTTL {
		out := make([]models.CityCandidate, len(c.candidates))
		copy(out, c.candidates)
		r.mu.Unlock()
		if len(out) == 0 {
			return nil, ErrNoResults
		}
		return out, nil
	}

	// Become the latest query: bump the generation and cancel whatever
	// lookup was pending before.
	r.generation++
	gen := r.generation
	if r.cancelPrev != nil {
		r.cancelPrev()
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	r.cancelPrev = cancel
	debounce := r.debounce
	r.mu.Unlock()

	defer cancel()

	// Debounce: wait out the window; if a newer query arrives meanwhile our
	// context is cancelled and we never hit the network.
	if debounce > 0 {
		timer := time.NewTimer(debounce)
		select {
		case <-timer.C:
		case <-lookupCtx.Done():
			timer.Stop()
			if r.isSuperseded(gen) {
				return nil, ErrSuperseded
			}
			return nil, lookupCtx.Err()
		}
	}

	candidates, err := r.provider.Lookup(lookupCtx, query)

	// Commit only if still the latest. An older response arriving after a
	// newer query was issued must not overwrite wanted results.
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return nil, ErrSuperseded
	}

	if err != nil {
		if lookupCtx.Err() != nil {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	candidates = dedupe(candidates)
	r.cache = &cachedLookup{
		query:      query,
		candidates: candidates,
		timestamp:  r.now(),
	}

	if len(candidates) == 0 {
		return nil, ErrNoResults
	}

	out := make([]models.CityCandidate, len(candidates))
	copy(out, candidates)
	return out, nil
}

func (r *Resolver) isSuperseded(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen != r.generation
}

// dedupe removes duplicate (name, country) pairs, keeping provider order so
// relevance ranking survives.
func dedupe(in []models.CityCandidate) []models.CityCandidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.CityCandidate, 0, len(in))
	for _, c := range in {
		key := c.Name + "|" + c.Country
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
