package source

import (
	"context"
	"fmt"

	"github.com/richkazz/infinitelist/pagedlist"
)

// Slice pages over a fixed in-memory slice. Page keys map to offsets
// relative to firstKey: page k covers items [(k-firstKey)*size, ...). Useful
// for demos and tests, and as the exhaustion reference: the last page is
// short (or empty) by construction.
type Slice[T any] struct {
	items    []T
	firstKey int
}

// NewSlice creates a Slice source whose first page has key firstKey.
func NewSlice[T any](items []T, firstKey int) *Slice[T] {
	return &Slice[T]{items: items, firstKey: firstKey}
}

// FetchPage implements Source.
func (s *Slice[T]) FetchPage(_ context.Context, req pagedlist.PageRequest) ([]T, error) {
	if req.Key < s.firstKey {
		return nil, fmt.Errorf("%w: %d before first page %d", ErrPageOutOfRange, req.Key, s.firstKey)
	}
	offset := (req.Key - s.firstKey) * req.Size
	if offset >= len(s.items) {
		return nil, nil
	}
	end := offset + req.Size
	if end > len(s.items) {
		end = len(s.items)
	}
	page := make([]T, end-offset)
	copy(page, s.items[offset:end])
	return page, nil
}

// Len returns the total number of items backing the source.
func (s *Slice[T]) Len() int { return len(s.items) }
