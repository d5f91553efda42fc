package geocode

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"solar-forecast-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider counts lookups and serves canned answers per query.
type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	queries []string
	results map[string][]models.CityCandidate
	err     error

	// release, when set, delays every lookup until closed, ignoring
	// context cancellation to simulate a late response.
	release chan struct{}
}

func (f *fakeProvider) Name() string { return "Fake" }

func (f *fakeProvider) Lookup(ctx context.Context, query string) ([]models.CityCandidate, error) {
	f.mu.Lock()
	f.calls++
	f.queries = append(f.queries, query)
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func zagreb() []models.CityCandidate {
	return []models.CityCandidate{
		{Name: "Zagreb", Country: "Croatia", Latitude: 45.815, Longitude: 15.9819},
	}
}

func TestSearchShortQueryNoNetwork(t *testing.T) {
	provider := &fakeProvider{}
	r := NewResolver(provider)

	for _, q := range []string{"", "z"} {
		candidates, err := r.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	}
	assert.Equal(t, 0, provider.callCount())
}

func TestSearchReturnsRankedCandidates(t *testing.T) {
	provider := &fakeProvider{results: map[string][]models.CityCandidate{"zagreb": zagreb()}}
	r := NewResolver(provider)
	r.SetDebounce(0)

	candidates, err := r.Search(context.Background(), "zagreb")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Zagreb", candidates[0].Name)
	assert.Equal(t, "Zagreb, Croatia", candidates[0].Display())
}

func TestSearchDeduplicatesKeepingOrder(t *testing.T) {
	provider := &fakeProvider{results: map[string][]models.CityCandidate{
		"springfield": {
			{Name: "Springfield", Country: "United States", Latitude: 39.8, Longitude: -89.6},
			{Name: "Springfield", Country: "Canada", Latitude: 42.8, Longitude: -80.9},
			{Name: "Springfield", Country: "United States", Latitude: 37.2, Longitude: -93.3},
		},
	}}
	r := NewResolver(provider)
	r.SetDebounce(0)

	candidates, err := r.Search(context.Background(), "springfield")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "United States", candidates[0].Country)
	assert.Equal(t, 39.8, candidates[0].Latitude) // first occurrence wins
	assert.Equal(t, "Canada", candidates[1].Country)
}

func TestSearchCacheShortCircuits(t *testing.T) {
	provider := &fakeProvider{results: map[string][]models.CityCandidate{"zagreb": zagreb()}}
	r := NewResolver(provider)
	r.SetDebounce(0)

	_, err := r.Search(context.Background(), "zagreb")
	require.NoError(t, err)
	_, err = r.Search(context.Background(), "zagreb")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.callCount())
}

func TestSearchCacheExpires(t *testing.T) {
	provider := &fakeProvider{results: map[string][]models.CityCandidate{"zagreb": zagreb()}}
	r := NewResolver(provider)
	r.SetDebounce(0)

	now := time.Now()
	r.now = func() time.Time { return now }

	_, err := r.Search(context.Background(), "zagreb")
	require.NoError(t, err)

	// Step past the freshness window; the same query must hit the network.
	now = now.Add(11 * time.Second)
	_, err = r.Search(context.Background(), "zagreb")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.callCount())
}

func TestSearchNoResults(t *testing.T) {
	provider := &fakeProvider{results: map[string][]models.CityCandidate{}}
	r := NewResolver(provider)
	r.SetDebounce(0)

	_, err := r.Search(context.Background(), "xyzzy")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchTransportErrorDistinctFromNotFound(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	r := NewResolver(provider)
	r.SetDebounce(0)

	_, err := r.Search(context.Background(), "zagreb")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
	assert.NotErrorIs(t, err, ErrSuperseded)
}

func TestSearchDebounceCollapsesBurst(t *testing.T) {
	provider := &fakeProvider{results: map[string][]models.CityCandidate{
		"lo": zagreb(), "lon": zagreb(), "lond": zagreb(),
	}}
	r := NewResolver(provider)
	r.SetDebounce(150 * time.Millisecond)

	type outcome struct {
		query string
		err   error
	}
	results := make(chan outcome, 3)

	// Three queries inside one debounce window; only the last may commit.
	for _, q := range []string{"lo", "lon", "lond"} {
		q := q
		go func() {
			_, err := r.Search(context.Background(), q)
			results <- outcome{query: q, err: err}
		}()
		time.Sleep(20 * time.Millisecond)
	}

	committed := 0
	for i := 0; i < 3; i++ {
		out := <-results
		if out.err == nil {
			committed++
			assert.Equal(t, "lond", out.query)
		} else {
			assert.ErrorIs(t, out.err, ErrSuperseded)
		}
	}
	assert.Equal(t, 1, committed)
	assert.Equal(t, 1, provider.callCount())
}

func TestSearchStaleResponseNotCommitted(t *testing.T) {
	release := make(chan struct{})
	provider := &fakeProvider{
		results: map[string][]models.CityCandidate{
			"old": {{Name: "Oldtown", Country: "Nowhere"}},
			"new": zagreb(),
		},
		release: release,
	}
	r := NewResolver(provider)
	r.SetDebounce(0)

	oldDone := make(chan error, 1)
	go func() {
		_, err := r.Search(context.Background(), "old")
		oldDone <- err
	}()

	// Wait until the old lookup is in flight.
	require.Eventually(t, func() bool { return provider.callCount() == 1 }, time.Second, 5*time.Millisecond)

	// Issue the newer query, then let both lookups respond.
	newDone := make(chan error, 1)
	go func() {
		_, err := r.Search(context.Background(), "new")
		newDone <- err
	}()
	require.Eventually(t, func() bool { return provider.callCount() == 2 }, time.Second, 5*time.Millisecond)
	close(release)

	require.NoError(t, <-newDone)
	assert.ErrorIs(t, <-oldDone, ErrSuperseded)

	// The cache must hold the newer query's results, not the stale ones.
	candidates, err := r.Search(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "Zagreb", candidates[0].Name)
	assert.Equal(t, 2, provider.callCount())
}
