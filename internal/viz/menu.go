package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/config"
)

const (
	stateMenu = iota
	stateLive
)

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Back, k.Quit}}
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to presets"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// App is the preset picker that opens a live view and returns to the list
// when the view is left with esc.
type App struct {
	state  int
	base   Options
	table  table.Model
	keys   menuKeyMap
	help   help.Model
	live   Model
	width  int
	height int
}

func NewApp(base Options) App {
	h := help.New()
	h.ShowAll = false
	return App{
		state: stateMenu,
		base:  base,
		table: presetTable(),
		keys:  defaultMenuKeyMap(),
		help:  h,
	}
}

func presetTable() table.Model {
	columns := []table.Column{
		{Title: "Preset", Width: 12},
		{Title: "T (s)", Width: 8},
		{Title: "Description", Width: 44},
	}

	rows := make([]table.Row, 0, len(config.Presets))
	for _, p := range config.Presets {
		T := noTimeToBottom
		if ref, ok := analysis.Reference(p.Params); ok {
			T = fmt.Sprintf("%.3f", ref.FallTime)
		}
		rows = append(rows, table.Row{p.Name, T, p.Description})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
		a.help.Width = ws.Width
	}

	if a.state == stateLive {
		if km, ok := msg.(tea.KeyMsg); ok && !a.live.Editing() && key.Matches(km, a.keys.Back) {
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(km, a.keys.Select):
			return a.open(a.table.Cursor())
		}
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a App) open(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(config.Presets) {
		return a, nil
	}
	p := config.Presets[i]
	opts := a.base
	opts.Title = p.Name
	opts.Params = p.Params

	a.live = NewModel(opts)
	a.state = stateLive
	cmds := []tea.Cmd{a.live.Init()}
	if a.width > 0 {
		// the live view sizes its canvas from the terminal
		size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	if a.state == stateLive {
		return a.live.View()
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n  " + title.Render("MAXWELL'S WHEEL") + "\n")
	b.WriteString("  " + sub.Render("pick a preset, tune it live") + "\n\n")
	b.WriteString(a.table.View() + "\n\n")
	b.WriteString("  " + a.help.View(a.keys) + "\n")
	return b.String()
}

// Run starts the preset menu in the alternate screen.
func Run(base Options) error {
	_, err := tea.NewProgram(NewApp(base), tea.WithAltScreen()).Run()
	return err
}

// RunLive opens the live view directly.
func RunLive(opts Options) error {
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	return err
}
