package pagedlist

// Mode is the top-level render decision for a list.
type Mode int

const (
	// ModeInitialLoading means no items are loaded and the initial fetch is
	// in flight.
	ModeInitialLoading Mode = iota
	// ModeInitialError means no items are loaded and the last fetch failed.
	ModeInitialError
	// ModeEmpty means the source returned no items at all.
	ModeEmpty
	// ModePopulated means loaded items are on screen, optionally with a
	// trailing indicator slot.
	ModePopulated
)

// String implements fmt.Stringer for log output.
func (m Mode) String() string {
	switch m {
	case ModeInitialLoading:
		return "initial-loading"
	case ModeInitialError:
		return "initial-error"
	case ModeEmpty:
		return "empty"
	case ModePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// TrailingSlot is the single extra child appended after the list items of a
// populated list.
type TrailingSlot int

const (
	// TrailingNone renders no trailing slot.
	TrailingNone TrailingSlot = iota
	// TrailingLoading shows the next-page fetch in flight.
	TrailingLoading
	// TrailingError shows the next-page fetch failure with the items above
	// it untouched.
	TrailingError
	// TrailingNoMore shows that the list is exhausted.
	TrailingNoMore
)

// String implements fmt.Stringer for log output.
func (s TrailingSlot) String() string {
	switch s {
	case TrailingNone:
		return "none"
	case TrailingLoading:
		return "loading"
	case TrailingError:
		return "error"
	case TrailingNoMore:
		return "no-more"
	default:
		return "unknown"
	}
}

// RenderDecision describes what a renderer should display for the current
// controller state. It carries no rendering detail itself.
type RenderDecision struct {
	Mode         Mode
	ItemCount    int
	Trailing     TrailingSlot
	ErrorMessage string
}

// Decide derives the render decision from the controller state. It is pure:
// calling it has no effect on the controller.
//
// Priority with no items loaded: loading, then error, then empty (exhausted
// without items). Anything else renders as a populated list whose trailing
// slot prefers loading over error over the no-more-items marker.
func (c *Controller[T]) Decide() RenderDecision {
	if len(c.items) == 0 {
		switch {
		case c.loading:
			return RenderDecision{Mode: ModeInitialLoading}
		case c.err != nil:
			return RenderDecision{Mode: ModeInitialError, ErrorMessage: c.err.Error()}
		case !c.hasMore:
			return RenderDecision{Mode: ModeEmpty}
		}
		// Not started yet: an empty populated list with no trailing slot.
		return RenderDecision{Mode: ModePopulated}
	}

	d := RenderDecision{Mode: ModePopulated, ItemCount: len(c.items)}
	switch {
	case c.loading:
		d.Trailing = TrailingLoading
	case c.err != nil:
		d.Trailing = TrailingError
		d.ErrorMessage = c.err.Error()
	case !c.hasMore:
		d.Trailing = TrailingNoMore
	}
	return d
}
