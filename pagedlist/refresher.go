package pagedlist

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is a command delivered through a Refresher.
type Event int

const (
	// EventRefresh asks the list to re-fetch from the first page and replace
	// its items on success.
	EventRefresh Event = iota
	// EventRestart asks the list to drop its items and start over, as if it
	// had just been mounted.
	EventRestart
)

// Listener receives Refresher events. Listeners are invoked synchronously on
// the goroutine calling Refresh or Restart.
type Listener func(Event)

// Refresher is a narrow command channel an external owner can hold to
// refresh or restart a mounted list without re-creating it. Subscribing,
// unsubscribing, and notifying are all safe to call repeatedly and after
// Close; they never fail.
type Refresher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
	closed    bool
}

// NewRefresher creates an empty Refresher.
func NewRefresher() *Refresher {
	return &Refresher{listeners: make(map[int]Listener)}
}

// Subscribe registers fn and returns a cancel function. Cancelling twice is
// a no-op, as is subscribing after Close (the listener is never invoked).
func (r *Refresher) Subscribe(fn Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || fn == nil {
		return func() {}
	}
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Refresh broadcasts EventRefresh to all listeners.
func (r *Refresher) Refresh() {
	r.notify(EventRefresh)
}

// Restart broadcasts EventRestart to all listeners.
func (r *Refresher) Restart() {
	r.notify(EventRestart)
}

// Close drops all listeners. Later notifications and subscriptions are
// no-ops. Closing twice is safe.
func (r *Refresher) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.listeners = nil
}

func (r *Refresher) notify(ev Event) {
	r.mu.Lock()
	fns := make([]Listener, 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	// Invoke outside the lock so a listener may unsubscribe itself.
	for _, fn := range fns {
		fn(ev)
	}
}

// RefreshMsg is the tea.Msg form of EventRefresh, handled by Model.Update.
type RefreshMsg struct{}

// RestartMsg is the tea.Msg form of EventRestart, handled by Model.Update.
type RestartMsg struct{}

// Bind forwards Refresher events into a running Bubble Tea program as
// RefreshMsg/RestartMsg. The returned cancel function detaches the program
// from the refresher.
func Bind(r *Refresher, p *tea.Program) func() {
	return r.Subscribe(func(ev Event) {
		switch ev {
		case EventRefresh:
			p.Send(RefreshMsg{})
		case EventRestart:
			p.Send(RestartMsg{})
		}
	})
}
