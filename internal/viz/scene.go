package viz

import (
	"math"

	"github.com/san-kum/maxwell/internal/physics"
)

const (
	sceneMargin = 3 // dots above the ceiling and below the lowest rim position
	spokeCount  = 3
)

// camera maps wheel height to canvas rows. The scale is fixed by the largest
// height a wheel may be released from, so changing the release height moves
// the bottom marker instead of rescaling the picture.
type camera struct {
	top      int     // ceiling row in dots
	radius   int     // wheel radius in dots
	perMeter float64 // dots per meter of travel
	cx       int
}

func newCamera(c *Canvas) camera {
	w, h := c.Pixels()
	radius := w / 5
	if limit := h / 6; radius > limit {
		radius = limit
	}
	if radius < 2 {
		radius = 2
	}
	top := sceneMargin
	travel := float64(h - 2*sceneMargin - 2*radius)
	if travel < 1 {
		travel = 1
	}
	return camera{
		top:      top,
		radius:   radius,
		perMeter: travel / physics.ParamBounds[physics.ParamInitialHeight].Max,
		cx:       w / 2,
	}
}

// axleY returns the axle row for height h below the release point.
func (cam camera) axleY(h float64) int {
	if math.IsNaN(h) {
		h = 0
	}
	return cam.top + cam.radius + int(math.Round(h*cam.perMeter))
}

// drawScene renders the ceiling, cords, wheel and bottom marker.
func drawScene(c *Canvas, s physics.State, p physics.Params) {
	c.Clear()
	cam := newCamera(c)
	w, _ := c.Pixels()

	c.DrawLine(0, cam.top, w-1, cam.top)

	// lowest axle position for this release height
	bottom := cam.axleY(p.InitialHeight) + cam.radius
	c.DrawDashed(0, w-1, bottom, 2)

	ay := cam.axleY(s.Height)
	cord := cam.radius / 3
	if cord < 1 {
		cord = 1
	}
	c.DrawLine(cam.cx-cord, cam.top, cam.cx-cord, ay)
	c.DrawLine(cam.cx+cord, cam.top, cam.cx+cord, ay)

	c.DrawCircle(cam.cx, ay, cam.radius)
	c.DrawCircle(cam.cx, ay, 1)
	for i := 0; i < spokeCount; i++ {
		a := s.Angle + float64(i)*2*math.Pi/spokeCount
		c.DrawSpoke(cam.cx, ay, cam.radius-1, a)
	}
}
