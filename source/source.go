// Package source provides page-source helpers for pagedlist: a function
// adapter, an in-memory slice source, and a caching decorator that
// deduplicates concurrent fetches of the same page.
package source

import (
	"context"
	"errors"

	"github.com/richkazz/infinitelist/pagedlist"
)

// ErrPageOutOfRange is returned for page keys before the configured first
// page.
var ErrPageOutOfRange = errors.New("page key out of range")

// Source supplies pages of items. Returning fewer than req.Size items
// signals that no further pages exist.
type Source[T any] interface {
	FetchPage(ctx context.Context, req pagedlist.PageRequest) ([]T, error)
}

// Func adapts a plain function to a Source.
type Func[T any] func(ctx context.Context, req pagedlist.PageRequest) ([]T, error)

// FetchPage implements Source.
func (f Func[T]) FetchPage(ctx context.Context, req pagedlist.PageRequest) ([]T, error) {
	return f(ctx, req)
}

// Fetch returns s.FetchPage in the shape pagedlist.New expects.
func Fetch[T any](s Source[T]) pagedlist.FetchFunc[T] {
	return s.FetchPage
}
