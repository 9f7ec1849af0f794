package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/maxwell/internal/physics"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != brailleBlank|0x1|0x80 {
		t.Errorf("cell = %U", got)
	}
	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != brailleBlank|0x80 {
		t.Errorf("cell after unset = %U", got)
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if strings.Trim(c.String(), string(rune(brailleBlank))) != "" {
		t.Error("clear left dots behind")
	}
}

func TestCanvasCircleStaysOnRadius(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)
	if c.Grid[5][10] != brailleBlank {
		t.Error("circle filled its centre")
	}
	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != brailleBlank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("circle drew nothing")
	}
}

func TestRingMatchesMath(t *testing.T) {
	for _, a := range []float64{0, 0.3, 1.7, -2.5, 9.1} {
		sin, cos := unitRing.SinCos(a)
		ws, wc := math.Sincos(a)
		if d := sin - ws; d > 1e-4 || d < -1e-4 {
			t.Errorf("sin(%v) = %v, want %v", a, sin, ws)
		}
		if d := cos - wc; d > 1e-4 || d < -1e-4 {
			t.Errorf("cos(%v) = %v, want %v", a, cos, wc)
		}
	}
}

func TestCameraKeepsWheelOnCanvas(t *testing.T) {
	c := NewCanvas(canvasWidth, canvasHeight)
	cam := newCamera(c)
	_, h := c.Pixels()

	top := cam.axleY(0)
	bottom := cam.axleY(physics.ParamBounds[physics.ParamInitialHeight].Max)
	if top-cam.radius < cam.top {
		t.Errorf("wheel at rest pokes above the ceiling: %d < %d", top-cam.radius, cam.top)
	}
	if bottom+cam.radius >= h {
		t.Errorf("wheel at lowest height leaves the canvas: %d >= %d", bottom+cam.radius, h)
	}
	if cam.axleY(0.1) >= cam.axleY(0.2) {
		t.Error("axle should move down as height grows")
	}
}

func TestDrawSceneMovesWithHeight(t *testing.T) {
	p := physics.DefaultParams()
	a := NewCanvas(canvasWidth, canvasHeight)
	b := NewCanvas(canvasWidth, canvasHeight)
	drawScene(a, physics.State{}, p)
	drawScene(b, physics.State{Height: p.InitialHeight}, p)
	if a.String() == b.String() {
		t.Error("scene did not change with height")
	}
}
