package viz

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/maxwell/internal/physics"
)

// sliderSteps is the number of arrow presses from one end of a slider to the
// other. Log-scale parameters step evenly in decades.
const sliderSteps = 50

var ErrInvalidInput = errors.New("viz: not a finite number")

// ParseParamInput parses a typed parameter value. A comma is accepted as the
// decimal separator.
func ParseParamInput(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return v, nil
}

func FormatParam(v float64) string {
	return fmt.Sprintf("%.5g", v)
}

type paramPanel struct {
	names    []string
	selected int
	editing  bool
	input    textinput.Model
}

func newParamPanel() paramPanel {
	ti := textinput.New()
	ti.Prompt = "= "
	ti.CharLimit = 16
	ti.Width = 12
	return paramPanel{names: physics.ParamNames(), input: ti}
}

func (p *paramPanel) current() string { return p.names[p.selected] }

func (p *paramPanel) next() { p.selected = (p.selected + 1) % len(p.names) }

func (p *paramPanel) prev() {
	p.selected--
	if p.selected < 0 {
		p.selected = len(p.names) - 1
	}
}

// nudge moves the selected slider one step in dir and applies the result to
// the wheel, which resets it.
func (p *paramPanel) nudge(w *physics.Wheel, dir int) float64 {
	name := p.current()
	b := physics.ParamBounds[name]
	v, _ := w.Params().Get(name)
	pos := b.Normalize(v) + float64(dir)/sliderSteps
	applied, _ := w.SetParam(name, b.Denormalize(pos))
	return applied
}

func (p *paramPanel) beginEdit(w *physics.Wheel) tea.Cmd {
	v, _ := w.Params().Get(p.current())
	p.input.SetValue(FormatParam(v))
	p.input.CursorEnd()
	p.editing = true
	return p.input.Focus()
}

// commit applies the typed value. On a parse failure the wheel keeps its
// current value and the error is returned.
func (p *paramPanel) commit(w *physics.Wheel) (float64, error) {
	p.editing = false
	p.input.Blur()
	v, err := ParseParamInput(p.input.Value())
	if err != nil {
		return 0, err
	}
	return w.SetParam(p.current(), v)
}

func (p *paramPanel) cancel() {
	p.editing = false
	p.input.Blur()
}

func (p *paramPanel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p paramPanel) view(params physics.Params, st styles) string {
	var b strings.Builder
	for i, name := range p.names {
		bounds := physics.ParamBounds[name]
		v, _ := params.Get(name)
		bar := st.sliderBar(bounds.Normalize(v), 10)
		val := FormatParam(v) + " " + bounds.Unit
		if i == p.selected && p.editing {
			val = p.input.View()
		}
		line := fmt.Sprintf("%-14s %s %s", name, bar, val)
		if i == p.selected {
			b.WriteString(st.activeParam.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + st.label.UnsetWidth().Render(line) + "\n")
		}
	}
	return b.String()
}
