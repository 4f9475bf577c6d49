package source_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richkazz/infinitelist/pagedlist"
	"github.com/richkazz/infinitelist/source"
)

// TestSlice_Paging tests offset arithmetic and the short-page exhaustion
// signal.
func TestSlice_Paging(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	s := source.NewSlice(items, 0)

	tests := []struct {
		name string
		req  pagedlist.PageRequest
		want []int
	}{
		{name: "first full page", req: pagedlist.PageRequest{Key: 0, Size: 3}, want: []int{1, 2, 3}},
		{name: "short last page", req: pagedlist.PageRequest{Key: 1, Size: 3}, want: []int{4, 5}},
		{name: "past the end", req: pagedlist.PageRequest{Key: 2, Size: 3}, want: nil},
		{name: "single page covering everything", req: pagedlist.PageRequest{Key: 0, Size: 10}, want: items},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FetchPage(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSlice_FirstKeyOffset tests a non-zero first page key.
func TestSlice_FirstKeyOffset(t *testing.T) {
	s := source.NewSlice([]string{"a", "b", "c"}, 5)

	got, err := s.FetchPage(context.Background(), pagedlist.PageRequest{Key: 5, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = s.FetchPage(context.Background(), pagedlist.PageRequest{Key: 4, Size: 2})
	require.ErrorIs(t, err, source.ErrPageOutOfRange)
}

// TestSlice_PageIsACopy tests that mutating a returned page leaves the
// backing slice alone.
func TestSlice_PageIsACopy(t *testing.T) {
	s := source.NewSlice([]string{"a", "b"}, 0)

	page, err := s.FetchPage(context.Background(), pagedlist.PageRequest{Key: 0, Size: 2})
	require.NoError(t, err)
	page[0] = "mutated"

	again, err := s.FetchPage(context.Background(), pagedlist.PageRequest{Key: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again)
}

// TestFunc_Adapter tests the function adapter and the Fetch bridge.
func TestFunc_Adapter(t *testing.T) {
	fn := source.Func[string](func(_ context.Context, req pagedlist.PageRequest) ([]string, error) {
		if req.Key > 0 {
			return nil, nil
		}
		return []string{"only"}, nil
	})

	fetch := source.Fetch[string](fn)
	got, err := fetch(context.Background(), pagedlist.PageRequest{Key: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got)
}

// countingSource counts upstream fetches.
type countingSource struct {
	calls atomic.Int64
	fail  bool
}

func (c *countingSource) FetchPage(_ context.Context, req pagedlist.PageRequest) ([]string, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, errors.New("upstream down")
	}
	return []string{"page"}, nil
}

// TestCached_Memoizes tests that repeated fetches of a page hit the upstream
// once.
func TestCached_Memoizes(t *testing.T) {
	upstream := &countingSource{}
	c := source.NewCached[string](upstream)
	req := pagedlist.PageRequest{Key: 3, Size: 10}

	for i := 0; i < 4; i++ {
		got, err := c.FetchPage(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, []string{"page"}, got)
	}

	assert.EqualValues(t, 1, upstream.calls.Load())
	assert.Equal(t, 1, c.Size())
}

// TestCached_ErrorsNotCached tests that a failure is retried against the
// upstream.
func TestCached_ErrorsNotCached(t *testing.T) {
	upstream := &countingSource{fail: true}
	c := source.NewCached[string](upstream)
	req := pagedlist.PageRequest{Key: 0, Size: 10}

	_, err := c.FetchPage(context.Background(), req)
	require.Error(t, err)
	assert.Zero(t, c.Size())

	upstream.fail = false
	got, err := c.FetchPage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"page"}, got)
	assert.EqualValues(t, 2, upstream.calls.Load())
}

// TestCached_Invalidate tests cache clearing.
func TestCached_Invalidate(t *testing.T) {
	upstream := &countingSource{}
	c := source.NewCached[string](upstream)
	req := pagedlist.PageRequest{Key: 0, Size: 10}

	_, err := c.FetchPage(context.Background(), req)
	require.NoError(t, err)
	c.Invalidate()
	assert.Zero(t, c.Size())

	_, err = c.FetchPage(context.Background(), req)
	require.NoError(t, err)
	assert.EqualValues(t, 2, upstream.calls.Load())
}

// TestCached_ConcurrentFetchesCollapse tests singleflight deduplication for
// a slow upstream.
func TestCached_ConcurrentFetchesCollapse(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int64
	slow := source.Func[string](func(_ context.Context, _ pagedlist.PageRequest) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"slow"}, nil
	})
	c := source.NewCached[string](slow)
	req := pagedlist.PageRequest{Key: 7, Size: 5}

	const workers = 8
	var wg sync.WaitGroup
	results := make([][]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := c.FetchPage(context.Background(), req)
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}

	// Give every worker time to join the in-flight call before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load(), "concurrent fetches of one page collapse into one upstream call")
	for _, got := range results {
		assert.Equal(t, []string{"slow"}, got)
	}
}
