package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/richkazz/infinitelist/internal/demo"
	"github.com/richkazz/infinitelist/pagedlist"
	"github.com/richkazz/infinitelist/source"
)

// App chrome styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// appModel wraps the list component with application chrome: a title bar, a
// help line, and quit handling. It embeds the list the way any consumer of
// the library would.
type appModel struct {
	list *pagedlist.Model[demo.Record]
	src  *source.Cached[demo.Record]

	width    int
	height   int
	quitting bool
}

func newAppModel(list *pagedlist.Model[demo.Record], src *source.Cached[demo.Record]) *appModel {
	return &appModel{list: list, src: src}
}

// Init starts the list's initial fetch.
func (a *appModel) Init() tea.Cmd {
	return a.list.Init()
}

// Update handles quit keys and forwards everything else to the list.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Reserve the title and help lines; the list gets the rest.
		listMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - chromeHeight}
		_, cmd := a.list.Update(listMsg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.quitting = true
			a.list.Dispose()
			return a, tea.Quit
		case "R":
			// Refreshing should see fresh data, not cached pages.
			a.src.Invalidate()
		}
	}

	_, cmd := a.list.Update(msg)
	return a, cmd
}

// chromeHeight is the number of lines used by the title and help bars.
const chromeHeight = 2

// View renders the title bar, the list, and the help line.
func (a *appModel) View() string {
	if a.quitting {
		return ""
	}
	title := titleStyle.Render("infinitelist demo")
	help := helpStyle.Render("↑/↓ scroll · r retry · R refresh · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, a.list.View(), help)
}

// renderRecord is the demo's item renderer.
func renderRecord(rec demo.Record, index int) string {
	return fmt.Sprintf("%3d  %s  %s", index+1, rec.Title, idStyle.Render(rec.ID))
}
