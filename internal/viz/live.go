package viz

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/export"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/sim"
)

const (
	canvasWidth    = 30
	canvasHeight   = 22
	minCanvasRows  = 12
	maxCanvasRows  = 40
	chartWindow    = 1500 // records shown in the live charts
	chartWidth     = 40
	chartHeight    = 5
	noTimeToBottom = "—"
)

// Options configure a live view.
type Options struct {
	Title      string
	Params     physics.Params
	Floor      physics.FloorMode
	Dt         float64
	FPS        int
	MaxCatchUp int
	HistoryCap int
	PlotsDir   string
	Theme      string
	Logger     *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Title:      "maxwell",
		Params:     physics.DefaultParams(),
		Dt:         config.DefaultDt,
		FPS:        config.DefaultFPS,
		MaxCatchUp: config.DefaultMaxCatchUp,
		PlotsDir:   config.DefaultPlotsDir,
	}
}

// OptionsFromConfig takes a resolved configuration.
func OptionsFromConfig(c *config.Config) Options {
	o := DefaultOptions()
	if c.Preset != "" {
		o.Title = c.Preset
	}
	o.Params = c.Params
	o.Floor = c.FloorMode()
	o.Dt = c.Dt
	o.FPS = c.FPS
	o.MaxCatchUp = c.MaxCatchUp
	o.HistoryCap = c.HistoryCap
	o.PlotsDir = c.PlotsDir
	return o
}

type TickMsg time.Time

// exportDoneMsg reports the outcome of a background chart export.
type exportDoneMsg struct {
	paths []string
	err   error
}

// Model is the live view. It owns the wheel and drives it from the frame
// ticks through a fixed-step clock.
type Model struct {
	opts   Options
	wheel  *physics.Wheel
	clock  *sim.Clock
	frame  time.Duration
	last   time.Time
	canvas *Canvas
	panel  paramPanel
	keys   KeyMap
	help   help.Model
	theme  Theme
	styles styles
	logger *log.Logger

	status    string
	statusErr bool
	exporting bool
	width     int
	height    int
}

func NewModel(opts Options) Model {
	if opts.Dt <= 0 {
		opts.Dt = config.DefaultDt
	}
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.PlotsDir == "" {
		opts.PlotsDir = config.DefaultPlotsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := GetTheme(opts.Theme)

	h := help.New()
	h.ShowAll = false
	h.Width = statsWidth - 6

	return Model{
		opts: opts,
		wheel: physics.NewWheel(opts.Params,
			physics.WithFloor(opts.Floor),
			physics.WithHistoryCapacity(opts.HistoryCap),
		),
		clock:  sim.NewClock(opts.Dt, opts.MaxCatchUp),
		frame:  time.Second / time.Duration(opts.FPS),
		canvas: NewCanvas(canvasWidth, canvasHeight),
		panel:  newParamPanel(),
		keys:   DefaultKeyMap(),
		help:   h,
		theme:  theme,
		styles: newStyles(theme),
		logger: logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Wheel exposes the simulated wheel, mainly for tests.
func (m Model) Wheel() *physics.Wheel { return m.wheel }

// Editing reports whether a parameter value is being typed.
func (m Model) Editing() bool { return m.panel.editing }

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.panel.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := msg.Height - 6
		if rows < minCanvasRows {
			rows = minCanvasRows
		}
		if rows > maxCanvasRows {
			rows = maxCanvasRows
		}
		m.canvas = NewCanvas(canvasWidth, rows)
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		if m.wheel.Running() && !m.last.IsZero() {
			m.clock.Drive(now.Sub(m.last), m.wheel)
		}
		m.last = now
		return m, m.tick()

	case exportDoneMsg:
		m.exporting = false
		switch {
		case errors.Is(msg.err, dynamo.ErrTooFewSamples):
			m.setStatus("export skipped: not enough samples", true)
			m.logger.Warn("export skipped", "err", msg.err)
		case msg.err != nil:
			m.setStatus("export failed: "+msg.err.Error(), true)
			m.logger.Error("export failed", "err", msg.err)
		default:
			m.setStatus(fmt.Sprintf("exported %d plots to %s", len(msg.paths), m.opts.PlotsDir), false)
			m.logger.Info("plots exported", "dir", m.opts.PlotsDir, "files", len(msg.paths))
		}
		return m, nil
	}

	if m.panel.editing {
		return m, m.panel.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		m.start()
	case key.Matches(msg, m.keys.Pause):
		m.wheel.Pause()
	case key.Matches(msg, m.keys.Toggle):
		if m.wheel.Running() {
			m.wheel.Pause()
		} else {
			m.start()
		}
	case key.Matches(msg, m.keys.Reset):
		m.wheel.Reset(true)
		m.clock.Reset()
		m.setStatus("", false)

	case key.Matches(msg, m.keys.Next):
		m.panel.next()
	case key.Matches(msg, m.keys.Prev):
		m.panel.prev()
	case key.Matches(msg, m.keys.Inc):
		m.panel.nudge(m.wheel, 1)
		m.clock.Reset()
	case key.Matches(msg, m.keys.Dec):
		m.panel.nudge(m.wheel, -1)
		m.clock.Reset()
	case key.Matches(msg, m.keys.Edit):
		return m, m.panel.beginEdit(m.wheel)

	case key.Matches(msg, m.keys.Export):
		return m.export()
	case key.Matches(msg, m.keys.Floor):
		next := physics.FloorAbsorb
		if m.wheel.Floor() == physics.FloorAbsorb {
			next = physics.FloorReflect
		}
		m.wheel.SetFloor(next)
		m.clock.Reset()
		m.setStatus("floor: "+next.String(), false)
	case key.Matches(msg, m.keys.Theme):
		m.theme = nextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.panel.current()
		applied, err := m.panel.commit(m.wheel)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.clock.Reset()
		m.setStatus(fmt.Sprintf("%s = %s", name, FormatParam(applied)), false)
		return m, nil
	case tea.KeyEsc:
		m.panel.cancel()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, m.panel.update(msg)
}

func (m *Model) start() {
	// a stopped wheel should not replay the time it spent paused
	m.clock.Reset()
	m.last = time.Time{}
	m.wheel.Start()
}

// export renders the charts on a background goroutine over a snapshot, so
// the simulation keeps stepping meanwhile.
func (m Model) export() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	snap := m.wheel.History()
	if snap.Len() < 2 {
		m.setStatus("export skipped: not enough samples", true)
		return m, nil
	}
	m.exporting = true
	m.setStatus("exporting…", false)
	dir := m.opts.PlotsDir
	return m, func() tea.Msg {
		paths, err := export.SavePlots(snap, dir)
		return exportDoneMsg{paths: paths, err: err}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// Readouts formats the numeric readouts shown next to the wheel.
func Readouts(w *physics.Wheel) [][2]string {
	s := w.State()
	T := "T = " + noTimeToBottom
	if t, ok := w.TimeToBottom(); ok {
		T = fmt.Sprintf("T = %.4f s", t)
	}
	return [][2]string{
		{"h", fmt.Sprintf("%.4f m", s.Height)},
		{"v", fmt.Sprintf("%.4f m/s", s.Velocity)},
		{"ω", fmt.Sprintf("%.2f rad/s", s.AngularVelocity)},
		{"t", fmt.Sprintf("%.3f s", s.Time)},
		{"T", T},
	}
}

// View renders the live view.
func (m Model) View() string {
	st := m.styles
	s := m.wheel.State()
	drawScene(m.canvas, s, m.wheel.Params())
	canvasView := st.canvas.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(st.header.Render(strings.ToUpper(m.opts.Title)) + "\n")

	status := st.paused.Render("PAUSED")
	if m.wheel.Running() {
		status = st.running.Render("RUNNING")
	}
	b.WriteString(fmt.Sprintf("%s  floor: %s\n\n", status, m.wheel.Floor()))

	for _, r := range Readouts(m.wheel) {
		b.WriteString(st.label.Render(r[0]) + st.value.Render(r[1]) + "\n")
	}
	ep, ekt, ekr := m.wheel.Energies()
	b.WriteString(st.label.Render("Ep / Ek") + st.value.Render(fmt.Sprintf("%.4f / %.4f J", ep, ekt+ekr)) + "\n")

	if charts := m.charts(); charts != "" {
		b.WriteString(st.graph.Render(charts) + "\n")
	}

	b.WriteString("\nPARAMETERS\n")
	b.WriteString(m.panel.view(m.wheel.Params(), st))

	if m.status != "" {
		line := st.value.Render(m.status)
		if m.statusErr {
			line = st.errText.Render(m.status)
		}
		b.WriteString("\n" + line + "\n")
	}
	b.WriteString(st.help.Render(st.separator(30) + "\n" + m.help.View(m.keys)))

	statsView := st.stats.Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// charts plots the recent height/velocity and energy traces.
func (m Model) charts() string {
	snap := m.wheel.Recent(chartWindow)
	if snap.Len() < 2 {
		return ""
	}
	kinetic := make([]float64, snap.Len())
	for i := range kinetic {
		kinetic[i] = snap.KineticTrans[i] + snap.KineticRot[i]
	}

	hv := asciigraph.PlotMany([][]float64{snap.Height, snap.Velocity},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow),
		asciigraph.Caption("h (m), v (m/s)"),
	)
	energy := asciigraph.PlotMany([][]float64{snap.Potential, kinetic, snap.KineticRot},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("Ep, Ek, Ek rot (J)"),
	)
	return hv + "\n\n" + energy
}
