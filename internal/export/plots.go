package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/maxwell/internal/dynamo"
)

const (
	PlotWidth  = 720
	PlotHeight = 480
)

func HeightChart(s dynamo.Snapshot) Chart {
	return Chart{
		Title:  "Height h(t)",
		XLabel: "t, s",
		YLabel: "h, m",
		X:      s.Time,
		Series: []Series{{Label: "h(t)", Color: "#ff4444", Y: s.Height}},
	}
}

func VelocityChart(s dynamo.Snapshot) Chart {
	return Chart{
		Title:  "Velocity v(t)",
		XLabel: "t, s",
		YLabel: "v, m/s",
		X:      s.Time,
		Series: []Series{{Label: "v(t)", Color: "#4488ff", Y: s.Velocity}},
	}
}

func EnergyChart(s dynamo.Snapshot) Chart {
	return Chart{
		Title:  "Energies",
		XLabel: "t, s",
		YLabel: "E, J",
		X:      s.Time,
		Series: []Series{
			{Label: "Ep", Color: "#44ff44", Y: s.Potential},
			{Label: "Ek trans", Color: "#ffff44", Y: s.KineticTrans},
			{Label: "Ek rot", Color: "#ff8844", Y: s.KineticRot},
		},
	}
}

// SavePlots writes height.svg, velocity.svg and energy.svg into dir and
// returns their paths. It writes nothing when the snapshot has fewer than
// two samples.
func SavePlots(s dynamo.Snapshot, dir string) ([]string, error) {
	if s.Len() < 2 {
		return nil, dynamo.ErrTooFewSamples
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: cannot create %s: %w", dir, err)
	}

	charts := []struct {
		name  string
		chart Chart
	}{
		{"height.svg", HeightChart(s)},
		{"velocity.svg", VelocityChart(s)},
		{"energy.svg", EnergyChart(s)},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		svg, err := RenderSVG(c.chart, PlotWidth, PlotHeight)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, c.name)
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return paths, fmt.Errorf("export: cannot write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
