// Package demo provides the synthetic page source backing the demo binary:
// generated records, simulated latency, and injected failures so every
// indicator state of the list can be seen.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/richkazz/infinitelist/pagedlist"
)

// Record is one synthetic list entry.
type Record struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// Source generates pages of Records on demand. Every fetch sleeps for the
// configured latency; when failEvery is set, every Nth fetch fails so the
// error indicators can be exercised.
type Source struct {
	total     int
	latency   time.Duration
	failEvery int

	calls atomic.Int64

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewSource creates a Source holding total records.
func NewSource(total int, latency time.Duration, failEvery int) *Source {
	seed := time.Now().UnixNano()
	return &Source{
		total:     total,
		latency:   latency,
		failEvery: failEvery,
		entropy:   ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// FetchPage implements source.Source. Page keys start at 0.
func (s *Source) FetchPage(ctx context.Context, req pagedlist.PageRequest) ([]Record, error) {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := s.calls.Add(1)
	if s.failEvery > 0 && call%int64(s.failEvery) == 0 {
		return nil, fmt.Errorf("synthetic failure on fetch #%d", call)
	}

	offset := req.Key * req.Size
	if offset >= s.total {
		return nil, nil
	}
	end := offset + req.Size
	if end > s.total {
		end = s.total
	}

	records := make([]Record, 0, end-offset)
	now := time.Now()
	for i := offset; i < end; i++ {
		records = append(records, Record{
			ID:        s.newID(now),
			Title:     fmt.Sprintf("Record #%04d", i+1),
			CreatedAt: now,
		})
	}
	return records, nil
}

// Calls returns the number of fetches issued so far.
func (s *Source) Calls() int64 {
	return s.calls.Load()
}

func (s *Source) newID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
}
