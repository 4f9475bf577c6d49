package pagedlist

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Defaults applied by Config.withDefaults.
const (
	// DefaultPageSize is the number of items requested per page.
	DefaultPageSize = 20
	// DefaultFirstPageKey is the cursor of the first page.
	DefaultFirstPageKey = 0
	// DefaultScrollThreshold is the distance from the bottom edge, in scroll
	// units (lines for the bundled viewport), below which the next page is
	// prefetched.
	DefaultScrollThreshold = 200.0
)

// Configuration validation errors.
var (
	ErrInvalidPageSize        = errors.New("page size must be positive")
	ErrInvalidScrollThreshold = errors.New("scroll threshold must be non-negative")
)

// PageRequest identifies one page of data to fetch.
type PageRequest struct {
	// Key is the page cursor. It is opaque to the controller beyond being
	// advanced by one after each successful fetch.
	Key int

	// Size is the number of items requested.
	Size int
}

// FetchFunc loads a single page. Returning fewer than req.Size items signals
// that no further pages exist. The error message of a failed fetch is
// surfaced verbatim through the render decision.
type FetchFunc[T any] func(ctx context.Context, req PageRequest) ([]T, error)

// Config holds the construction-time settings of a Controller.
// The zero value is usable: withDefaults fills in the documented defaults.
type Config struct {
	// PageSize is the number of items requested per page. Defaults to
	// DefaultPageSize. Must be positive.
	PageSize int

	// FirstPageKey is the cursor of the first page. Defaults to
	// DefaultFirstPageKey.
	FirstPageKey int

	// ScrollThreshold is the distance from the bottom edge that triggers a
	// prefetch of the next page. Defaults to DefaultScrollThreshold.
	ScrollThreshold float64

	// Logger receives debug-level fetch lifecycle events. Defaults to a
	// no-op logger.
	Logger zerolog.Logger

	haveThreshold bool
	haveLogger    bool
}

// WithScrollThreshold returns a copy of c with the threshold set. A setter is
// needed because zero is a valid threshold distinct from "not set".
func (c Config) WithScrollThreshold(threshold float64) Config {
	c.ScrollThreshold = threshold
	c.haveThreshold = true
	return c
}

// WithLogger returns a copy of c with the fetch lifecycle logger set.
func (c Config) WithLogger(logger zerolog.Logger) Config {
	c.Logger = logger
	c.haveLogger = true
	return c
}

// Validate checks the configuration after defaulting.
func (c Config) Validate() error {
	if c.PageSize < 0 {
		return ErrInvalidPageSize
	}
	if c.ScrollThreshold < 0 {
		return ErrInvalidScrollThreshold
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.ScrollThreshold == 0 && !c.haveThreshold {
		c.ScrollThreshold = DefaultScrollThreshold
	}
	if !c.haveLogger {
		c.Logger = zerolog.Nop()
	}
	return c
}

// Controller owns the pagination state of one list instance: the accumulated
// items, the next page cursor, and the loading/error/exhausted/disposed
// flags. It performs no I/O. Trigger methods (Start, OnScroll, Retry,
// Refresh, Restart) apply the shared begin guard and return the PageRequest
// the caller should dispatch; Complete and Fail apply the fetch outcome.
//
// The controller assumes a single logical writer (the Bubble Tea event loop
// in the bundled Model). The loading flag is the only in-flight guard; there
// are no locks.
type Controller[T any] struct {
	cfg Config
	log zerolog.Logger

	items    []T
	pageKey  int
	loading  bool
	err      error
	hasMore  bool
	disposed bool

	// replacing records that the in-flight fetch was started by Refresh and
	// must replace items instead of appending on completion.
	replacing bool
}

// NewController creates a Controller seeded at cfg.FirstPageKey.
func NewController[T any](cfg Config) (*Controller[T], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller[T]{
		cfg:     cfg,
		log:     cfg.Logger,
		pageKey: cfg.FirstPageKey,
		hasMore: true,
	}, nil
}

// begin applies the shared fetch guard: nothing starts while disposed or
// while another fetch is in flight. On success it clears the error state and
// marks the fetch in flight; this is the single transition visible to the
// renderer before the fetch resolves.
func (c *Controller[T]) begin(replace bool) (PageRequest, bool) {
	if c.disposed || c.loading {
		return PageRequest{}, false
	}
	c.loading = true
	c.err = nil
	c.replacing = replace
	req := PageRequest{Key: c.pageKey, Size: c.cfg.PageSize}
	c.log.Debug().Int("page_key", req.Key).Int("page_size", req.Size).Bool("replace", replace).Msg("fetch started")
	return req, true
}

// Start triggers the initial fetch.
func (c *Controller[T]) Start() (PageRequest, bool) {
	return c.begin(false)
}

// OnScroll evaluates a scroll position change and triggers the next-page
// fetch when the remaining scroll distance is within the threshold. It is a
// no-op while a fetch is in flight, after an error (use Retry), and once the
// list is exhausted, so it is safe to call at arbitrary frequency.
func (c *Controller[T]) OnScroll(maxExtent, offset float64) (PageRequest, bool) {
	if c.disposed || c.loading || c.err != nil || !c.hasMore {
		return PageRequest{}, false
	}
	if maxExtent-offset > c.cfg.ScrollThreshold {
		return PageRequest{}, false
	}
	return c.begin(false)
}

// Retry re-issues the failed fetch. With no items loaded it is a retry of
// the initial fetch: the cursor resets to the first page and the exhaustion
// flag is restored. With items loaded it re-fetches at the current cursor
// without touching the items.
func (c *Controller[T]) Retry() (PageRequest, bool) {
	if c.disposed || c.loading {
		return PageRequest{}, false
	}
	if len(c.items) == 0 {
		c.pageKey = c.cfg.FirstPageKey
		c.items = nil
		c.hasMore = true
	}
	return c.begin(false)
}

// Refresh resets the cursor to the first page and fetches; on success the
// fetched page replaces the items instead of appending. A refresh requested
// while a fetch is in flight (including the initial fetch of an empty list)
// is ignored.
func (c *Controller[T]) Refresh() (PageRequest, bool) {
	if c.disposed || c.loading {
		return PageRequest{}, false
	}
	c.pageKey = c.cfg.FirstPageKey
	c.hasMore = true
	return c.begin(true)
}

// Restart drops all loaded items and starts over from the first page, as if
// the list had just been mounted.
func (c *Controller[T]) Restart() (PageRequest, bool) {
	if c.disposed || c.loading {
		return PageRequest{}, false
	}
	c.items = nil
	c.pageKey = c.cfg.FirstPageKey
	c.hasMore = true
	c.err = nil
	return c.begin(false)
}

// Complete applies a successful fetch result. Short pages (fewer items than
// the page size, including empty ones) mark the list exhausted. Completions
// arriving after Dispose, or without a matching begin, are discarded.
func (c *Controller[T]) Complete(page []T) {
	if c.disposed || !c.loading {
		return
	}
	if c.replacing {
		c.items = nil
	}
	c.items = append(c.items, page...)
	c.pageKey++
	c.hasMore = len(page) == c.cfg.PageSize
	c.loading = false
	c.err = nil
	c.replacing = false
	c.log.Debug().Int("count", len(page)).Int("total", len(c.items)).Bool("has_more", c.hasMore).Msg("fetch completed")
}

// Fail applies a failed fetch. The cursor and items are left untouched.
// Failures arriving after Dispose are discarded.
func (c *Controller[T]) Fail(err error) {
	if c.disposed || !c.loading {
		return
	}
	c.loading = false
	c.replacing = false
	c.err = err
	c.log.Debug().Err(err).Int("page_key", c.pageKey).Msg("fetch failed")
}

// Dispose marks the controller terminal. Every later trigger and every late
// completion of an outstanding fetch becomes a no-op.
func (c *Controller[T]) Dispose() {
	c.disposed = true
}

// Items returns the accumulated items in fetch order. The returned slice is
// owned by the controller and must not be mutated.
func (c *Controller[T]) Items() []T { return c.items }

// Len returns the number of loaded items.
func (c *Controller[T]) Len() int { return len(c.items) }

// PageKey returns the cursor of the next page to request.
func (c *Controller[T]) PageKey() int { return c.pageKey }

// PageSize returns the configured page size after defaulting.
func (c *Controller[T]) PageSize() int { return c.cfg.PageSize }

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool { return c.loading }

// Err returns the error of the last failed fetch, or nil.
func (c *Controller[T]) Err() error { return c.err }

// ErrorMessage returns the last fetch error rendered as text, or "".
func (c *Controller[T]) ErrorMessage() string {
	if c.err == nil {
		return ""
	}
	return c.err.Error()
}

// HasMore reports whether further pages are expected.
func (c *Controller[T]) HasMore() bool { return c.hasMore }

// Disposed reports whether Dispose has been called.
func (c *Controller[T]) Disposed() bool { return c.disposed }
