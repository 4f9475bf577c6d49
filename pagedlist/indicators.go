package pagedlist

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Indicator colors.
const (
	colorSpinner = lipgloss.Color("205")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("241")
	colorAccent  = lipgloss.Color("39")
)

// Shared indicator styles.
var (
	spinnerStyle   = lipgloss.NewStyle().Foreground(colorSpinner)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	separatorStyle = lipgloss.NewStyle().Foreground(colorMuted)
	footerStyle    = lipgloss.NewStyle().Foreground(colorAccent)
)

// countPrinter formats item counts with locale-aware grouping ("1,204").
var countPrinter = message.NewPrinter(language.English)

// Indicators is the set of optional render hooks of a Model. Nil fields fall
// back to the built-in lipgloss renderers, so a caller overrides only what
// it needs.
//
// The spinner argument of the loading hooks is the current animation frame.
type Indicators struct {
	// InitialLoading renders the full-surface indicator while the first
	// page is in flight.
	InitialLoading func(spinner string) string

	// InitialError renders the full-surface failure of the first page.
	InitialError func(msg string) string

	// Empty renders the state where the source returned no items at all.
	Empty func() string

	// NextPageLoading renders the trailing slot while a further page is in
	// flight.
	NextPageLoading func(spinner string) string

	// NextPageError renders the trailing slot after a further page failed,
	// with the loaded items untouched above it.
	NextPageError func(msg string) string

	// NoMoreItems renders the trailing slot once the list is exhausted.
	// count is the number of loaded items.
	NoMoreItems func(count int) string

	// Separator, when set, is rendered between adjacent items. index is the
	// position of the item above the separator.
	Separator func(index int) string

	// Padding is the number of columns of left padding applied to the list
	// body.
	Padding int
}

// DefaultIndicators returns the built-in indicator set.
func DefaultIndicators() Indicators {
	return Indicators{
		InitialLoading:  renderInitialLoading,
		InitialError:    renderInitialError,
		Empty:           renderEmpty,
		NextPageLoading: renderNextPageLoading,
		NextPageError:   renderNextPageError,
		NoMoreItems:     renderNoMoreItems,
	}
}

// merged fills nil hooks with the defaults. Separator stays nil unless set:
// absence means no separators.
func (ind Indicators) merged() Indicators {
	def := DefaultIndicators()
	if ind.InitialLoading == nil {
		ind.InitialLoading = def.InitialLoading
	}
	if ind.InitialError == nil {
		ind.InitialError = def.InitialError
	}
	if ind.Empty == nil {
		ind.Empty = def.Empty
	}
	if ind.NextPageLoading == nil {
		ind.NextPageLoading = def.NextPageLoading
	}
	if ind.NextPageError == nil {
		ind.NextPageError = def.NextPageError
	}
	if ind.NoMoreItems == nil {
		ind.NoMoreItems = def.NoMoreItems
	}
	return ind
}

func renderInitialLoading(spinner string) string {
	return spinnerStyle.Render(spinner) + " " + mutedStyle.Render("Loading…")
}

func renderInitialError(msg string) string {
	return errorStyle.Render("Error: "+msg) + "\n" + mutedStyle.Render("press r to retry")
}

func renderEmpty() string {
	return mutedStyle.Render("Nothing here yet.")
}

func renderNextPageLoading(spinner string) string {
	return spinnerStyle.Render(spinner) + " " + mutedStyle.Render("Loading more…")
}

func renderNextPageError(msg string) string {
	return errorStyle.Render("Could not load more: "+msg) + " " + mutedStyle.Render("(r to retry)")
}

func renderNoMoreItems(count int) string {
	return mutedStyle.Render(countPrinter.Sprintf("no more items · %d loaded", count))
}
