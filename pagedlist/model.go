package pagedlist

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// ItemRenderFunc renders one item at its list index to a (possibly
// multi-line) string.
type ItemRenderFunc[T any] func(item T, index int) string

// pageResultMsg carries the outcome of one page fetch back into Update.
type pageResultMsg[T any] struct {
	req   PageRequest
	items []T
	err   error
}

// Model is a tea.Model that embeds a Controller in a bubbles viewport. The
// viewport is the scroll container; after every movement the remaining
// scroll distance is evaluated against the configured threshold and the next
// page is prefetched when close to the bottom.
//
// Keys: the viewport's default bindings scroll; "r" retries after a failure
// and "R" refreshes. Quitting is left to the embedding application.
type Model[T any] struct {
	ctx        context.Context
	ctrl       *Controller[T]
	fetch      FetchFunc[T]
	renderItem ItemRenderFunc[T]
	ind        Indicators
	log        zerolog.Logger

	vp        viewport.Model
	spin      spinner.Model
	pager     paginator.Model
	showPager bool

	width  int
	height int
	ready  bool
}

// New creates a paged list model. fetch loads pages on demand and renderItem
// turns each loaded item into its on-screen representation.
func New[T any](ctx context.Context, fetch FetchFunc[T], renderItem ItemRenderFunc[T], cfg Config) (*Model[T], error) {
	ctrl, err := NewController[T](cfg)
	if err != nil {
		return nil, err
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = footerStyle.Render("•")
	pager.InactiveDot = mutedStyle.Render("◦")

	return &Model[T]{
		ctx:        ctx,
		ctrl:       ctrl,
		fetch:      fetch,
		renderItem: renderItem,
		ind:        DefaultIndicators(),
		log:        ctrl.log,
		vp:         viewport.New(0, 0),
		spin:       spin,
		pager:      pager,
	}, nil
}

// SetIndicators overrides the indicator hooks. Nil fields keep the built-in
// renderers.
func (m *Model[T]) SetIndicators(ind Indicators) {
	m.ind = ind.merged()
	m.refreshContent()
}

// ShowPagePosition toggles the paginator dots in the footer.
func (m *Model[T]) ShowPagePosition(show bool) {
	m.showPager = show
}

// Controller exposes the underlying state machine, mainly for embedding
// applications that want to inspect or dispose it.
func (m *Model[T]) Controller() *Controller[T] { return m.ctrl }

// Dispose marks the list terminal; late fetch completions are discarded.
// Call it when the embedding program shuts down.
func (m *Model[T]) Dispose() {
	m.ctrl.Dispose()
}

// Init triggers the initial fetch.
func (m *Model[T]) Init() tea.Cmd {
	return m.dispatch(m.ctrl.Start())
}

// Update handles viewport movement, fetch completions, spinner ticks, and
// the refresh/restart command messages.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-footerHeight, 1)
		m.ready = true
		m.refreshContent()
		return m, m.maybeFetch()

	case pageResultMsg[T]:
		return m.handlePageResult(msg)

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.refreshContent() // advance the trailing slot's spinner frame
		return m, cmd

	case RefreshMsg:
		return m, m.dispatch(m.ctrl.Refresh())

	case RestartMsg:
		return m, m.dispatch(m.ctrl.Restart())

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.dispatch(m.ctrl.Retry())
		case "R":
			return m, m.dispatch(m.ctrl.Refresh())
		}
	}

	// Everything else (scroll keys, mouse wheel) belongs to the viewport.
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	if fetch := m.maybeFetch(); fetch != nil {
		return m, tea.Batch(cmd, fetch)
	}
	return m, cmd
}

// footerHeight is the number of lines reserved below the viewport.
const footerHeight = 1

// View renders the current decision: one of the full-surface indicators, or
// the viewport with the item-count footer.
func (m *Model[T]) View() string {
	d := m.ctrl.Decide()
	switch d.Mode {
	case ModeInitialLoading:
		return m.pad(m.ind.InitialLoading(m.spin.View()))
	case ModeInitialError:
		return m.pad(m.ind.InitialError(d.ErrorMessage))
	case ModeEmpty:
		return m.pad(m.ind.Empty())
	case ModePopulated:
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.vp.View(), m.footerView(d))
}

// handlePageResult applies a fetch outcome and immediately prefetches again
// when the new content still ends within the threshold (short viewport).
func (m *Model[T]) handlePageResult(msg pageResultMsg[T]) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.ctrl.Fail(msg.err)
	} else {
		m.ctrl.Complete(msg.items)
		m.syncPager()
	}
	m.refreshContent()
	return m, m.maybeFetch()
}

// dispatch turns a trigger result into the fetch command, paired with a
// spinner tick so the loading indicator animates.
func (m *Model[T]) dispatch(req PageRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	m.refreshContent()
	return tea.Batch(m.fetchCmd(req), m.spin.Tick)
}

// fetchCmd runs the page fetch off the event loop. Only the resulting
// message mutates state, keeping the controller single-writer.
func (m *Model[T]) fetchCmd(req PageRequest) tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		items, err := fetch(ctx, req)
		return pageResultMsg[T]{req: req, items: items, err: err}
	}
}

// maybeFetch evaluates the scroll position against the threshold.
func (m *Model[T]) maybeFetch() tea.Cmd {
	maxExtent := float64(m.vp.TotalLineCount() - m.vp.Height)
	if maxExtent < 0 {
		maxExtent = 0
	}
	return m.dispatch(m.ctrl.OnScroll(maxExtent, float64(m.vp.YOffset)))
}

// refreshContent rebuilds the viewport body: items, optional separators, and
// the trailing slot.
func (m *Model[T]) refreshContent() {
	d := m.ctrl.Decide()
	if d.Mode != ModePopulated {
		m.vp.SetContent("")
		return
	}

	var b strings.Builder
	items := m.ctrl.Items()
	for i, item := range items {
		if i > 0 && m.ind.Separator != nil {
			b.WriteString(separatorStyle.Render(m.ind.Separator(i - 1)))
			b.WriteString("\n")
		}
		b.WriteString(m.renderItem(item, i))
		b.WriteString("\n")
	}

	switch d.Trailing {
	case TrailingNone:
	case TrailingLoading:
		b.WriteString(m.ind.NextPageLoading(m.spin.View()))
	case TrailingError:
		b.WriteString(m.ind.NextPageError(d.ErrorMessage))
	case TrailingNoMore:
		b.WriteString(m.ind.NoMoreItems(d.ItemCount))
	}

	m.vp.SetContent(m.pad(strings.TrimRight(b.String(), "\n")))
}

// footerView renders the item count and, when enabled, the page dots.
func (m *Model[T]) footerView(d RenderDecision) string {
	label := footerStyle.Render(countPrinter.Sprintf("%d items", d.ItemCount))
	if m.showPager && len(m.ctrl.Items()) > 0 {
		return label + "  " + m.pager.View()
	}
	return label
}

// syncPager keeps the paginator dots in step with the number of loaded pages.
func (m *Model[T]) syncPager() {
	pages := (m.ctrl.Len() + m.ctrl.PageSize() - 1) / m.ctrl.PageSize()
	if pages < 1 {
		pages = 1
	}
	m.pager.SetTotalPages(pages)
	m.pager.Page = pages - 1
}

func (m *Model[T]) pad(s string) string {
	if m.ind.Padding <= 0 {
		return s
	}
	return lipgloss.NewStyle().PaddingLeft(m.ind.Padding).Render(s)
}
