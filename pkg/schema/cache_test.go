package schema

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnumerator struct {
	mu     sync.Mutex
	labels []string
	types  []string
	err    error
	calls  int
}

func (f *fakeEnumerator) Labels(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.labels...), nil
}

func (f *fakeEnumerator) RelationshipTypes(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.types...), nil
}

func (f *fakeEnumerator) set(labels []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labels = labels
}

type memStore struct {
	colors map[string]string
}

func (s *memStore) Load() (map[string]string, error) {
	out := make(map[string]string, len(s.colors))
	for k, v := range s.colors {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) Save(colors map[string]string) error {
	if s.colors == nil {
		s.colors = make(map[string]string)
	}
	for k, v := range colors {
		s.colors[k] = v
	}
	return nil
}

func TestLabelsAssignsDistinctColors(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"Person", "Movie", "Genre"}}
	cache := NewCache(enum)

	labels, err := cache.Labels(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, labels, 3)

	seen := make(map[string]struct{})
	for label, color := range labels {
		assert.NotEmpty(t, color, "label %s has no color", label)
		_, dup := seen[color]
		assert.False(t, dup, "color %s assigned twice", color)
		seen[color] = struct{}{}
	}
}

func TestLabelsColorsStickyAcrossRefreshes(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"Person", "Movie"}}
	cache := NewCache(enum)

	first, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)
	second, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLabelsStickyWhenNewLabelAppears(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"Person", "Movie"}}
	cache := NewCache(enum)

	first, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)

	enum.set([]string{"Person", "Genre", "Movie"})
	second, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, first["Person"], second["Person"])
	assert.Equal(t, first["Movie"], second["Movie"])
	assert.NotEqual(t, second["Genre"], second["Person"])
	assert.NotEqual(t, second["Genre"], second["Movie"])
}

func TestLabelsRetainedAfterDisappearing(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"Person", "Movie"}}
	cache := NewCache(enum)

	first, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)

	enum.set([]string{"Movie"})
	_, err = cache.Labels(context.Background(), true)
	require.NoError(t, err)

	// The label came back: it gets its old color.
	enum.set([]string{"Person", "Movie"})
	third, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, first["Person"], third["Person"])
}

func TestLabelsCachedWithoutRefresh(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"Person"}}
	cache := NewCache(enum)

	_, err := cache.Labels(context.Background(), false)
	require.NoError(t, err)
	_, err = cache.Labels(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, enum.calls, "second non-refresh call should not enumerate")
}

func TestLabelsEnumerationFailurePropagates(t *testing.T) {
	enum := &fakeEnumerator{err: errors.New("engine down")}
	cache := NewCache(enum)

	_, err := cache.Labels(context.Background(), false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "engine down")
}

func TestLabelsFailureKeepsPreviousMapping(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"Person"}}
	cache := NewCache(enum)

	first, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)

	enum.mu.Lock()
	enum.err = errors.New("engine down")
	enum.mu.Unlock()
	_, err = cache.Labels(context.Background(), true)
	require.Error(t, err)

	enum.mu.Lock()
	enum.err = nil
	enum.mu.Unlock()
	again, err := cache.Labels(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestTypes(t *testing.T) {
	enum := &fakeEnumerator{types: []string{"KNOWS", "ACTED_IN", "KNOWS"}}
	cache := NewCache(enum)

	types, err := cache.Types(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACTED_IN", "KNOWS"}, types)
}

func TestTypesEnumerationFailurePropagates(t *testing.T) {
	enum := &fakeEnumerator{err: errors.New("engine down")}
	cache := NewCache(enum)

	_, err := cache.Types(context.Background(), true)
	require.Error(t, err)
}

func TestColorStoreSeedsAndReceivesAssignments(t *testing.T) {
	store := &memStore{colors: map[string]string{"Person": "#123456"}}
	enum := &fakeEnumerator{labels: []string{"Person", "Movie"}}
	cache := NewCache(enum, WithColorStore(store))

	labels, err := cache.Labels(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "#123456", labels["Person"], "stored color should stick")
	assert.Equal(t, labels["Movie"], store.colors["Movie"], "new assignment should be saved")
}

func TestConcurrentRefreshKeepsColorsDistinct(t *testing.T) {
	enum := &fakeEnumerator{labels: []string{"A", "B", "C", "D", "E"}}
	cache := NewCache(enum)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			labels, err := cache.Labels(context.Background(), true)
			if err != nil {
				t.Error(err)
				return
			}
			seen := make(map[string]struct{})
			for _, color := range labels {
				if _, dup := seen[color]; dup {
					t.Errorf("duplicate color %s in one refresh result", color)
				}
				seen[color] = struct{}{}
			}
		}()
	}
	wg.Wait()
}

func TestColorSequenceIsUnbounded(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < len(palette)+50; i++ {
		color := colorAt(i)
		require.Regexp(t, `^#[0-9a-f]{6}$`, color)
		seen[color] = struct{}{}
	}
	// Generated colors may eventually repeat hues, but not this early.
	assert.Len(t, seen, len(palette)+50)
}
