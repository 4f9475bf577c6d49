// Package pagedlist provides an infinitely-scrolling paged list component for
// Bubble Tea applications.
//
// The package separates pagination state from rendering:
//   - Controller is a synchronous state machine that owns the loaded items,
//     the page cursor, and the loading/error/exhausted flags. Triggers return
//     a PageRequest to dispatch instead of performing I/O, so every state
//     transition is testable without a running program.
//   - RenderDecision is a pure derivation of the controller state describing
//     what should be on screen (initial loading, initial error, empty, or a
//     populated list with a trailing loading/error/no-more-items slot).
//   - Model wraps a Controller in a tea.Model with a bubbles viewport as the
//     scroll container. Page fetches run as tea.Cmd closures and complete
//     through messages, keeping the controller single-writer.
//
// A Refresher provides a narrow command channel that external owners can use
// to refresh or restart a mounted list without re-creating it.
package pagedlist
