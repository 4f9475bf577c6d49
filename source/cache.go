package source

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/richkazz/infinitelist/pagedlist"
)

// Cached memoizes pages by key and collapses concurrent fetches of the same
// page into one upstream call. Failed fetches are not cached, so a retry
// reaches the upstream source again.
//
// Invalidate clears the cache; call it when the upstream data set changes,
// typically alongside a list refresh.
type Cached[T any] struct {
	src   Source[T]
	group singleflight.Group

	mu    sync.RWMutex
	pages map[int][]T
}

// NewCached wraps src with a page cache.
func NewCached[T any](src Source[T]) *Cached[T] {
	return &Cached[T]{src: src, pages: make(map[int][]T)}
}

// FetchPage implements Source.
func (c *Cached[T]) FetchPage(ctx context.Context, req pagedlist.PageRequest) ([]T, error) {
	c.mu.RLock()
	page, ok := c.pages[req.Key]
	c.mu.RUnlock()
	if ok {
		return page, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(req.Key), func() (any, error) {
		fetched, fetchErr := c.src.FetchPage(ctx, req)
		if fetchErr != nil {
			return nil, fetchErr
		}
		c.mu.Lock()
		c.pages[req.Key] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// Invalidate drops all cached pages.
func (c *Cached[T]) Invalidate() {
	c.mu.Lock()
	c.pages = make(map[int][]T)
	c.mu.Unlock()
}

// Size returns the number of cached pages.
func (c *Cached[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
