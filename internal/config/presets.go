package config

import "github.com/san-kum/maxwell/internal/physics"

type Preset struct {
	Name        string
	Description string
	Params      physics.Params
	Duration    float64
}

// Presets are listed in menu order.
var Presets = []Preset{
	{
		Name:        "classic",
		Description: "toy wheel on a 4 mm axle, half a metre of cord",
		Params:      physics.DefaultParams(),
	},
	{
		Name:        "lab",
		Description: "teaching-lab wheel, 24 cm drop",
		Params: physics.Params{
			Mass: 0.045, AxleRadius: 0.0075, Inertia: 5.25e-5, InitialHeight: 0.24, Gravity: 9.81,
		},
		Duration: 5,
	},
	{
		Name:        "heavy",
		Description: "brass disk, fast and mostly translational",
		Params: physics.Params{
			Mass: 0.4, AxleRadius: 0.01, Inertia: 2e-4, InitialHeight: 0.5, Gravity: 9.81,
		},
	},
	{
		Name:        "thin-axle",
		Description: "thin axle, slow descent, nearly all energy in spin",
		Params: physics.Params{
			Mass: 0.045, AxleRadius: 0.002, Inertia: 5e-5, InitialHeight: 0.5, Gravity: 9.81,
		},
		Duration: 30,
	},
	{
		Name:        "tall",
		Description: "default wheel on a one metre cord",
		Params: physics.Params{
			Mass: 0.045, AxleRadius: 0.004, Inertia: 5e-5, InitialHeight: 1.0, Gravity: 9.81,
		},
		Duration: 15,
	},
}

func GetPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for _, p := range Presets {
		names = append(names, p.Name)
	}
	return names
}
