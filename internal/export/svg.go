package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/maxwell/internal/dynamo"
)

const (
	background = "#1a1a1a"
	foreground = "#e0e0e0"
	gridColor  = "#444444"

	// maxPoints caps the vertices per polyline; longer series are decimated.
	maxPoints = 2000
)

type Series struct {
	Label string
	Color string
	Y     []float64
}

// Chart is a set of series sharing one time axis.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (c Chart) bounds() bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, x := range c.X {
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
	}
	for _, s := range c.Series {
		for _, y := range s.Y {
			b.minY = math.Min(b.minY, y)
			b.maxY = math.Max(b.maxY, y)
		}
	}
	if b.maxX == b.minX {
		b.maxX = b.minX + 1
	}
	if b.maxY == b.minY {
		b.minY -= 0.5
		b.maxY += 0.5
	}
	pad := (b.maxY - b.minY) * 0.05
	b.minY -= pad
	b.maxY += pad
	return b
}

// RenderSVG draws the chart as a standalone SVG document.
func RenderSVG(c Chart, width, height int) (string, error) {
	if len(c.X) < 2 {
		return "", dynamo.ErrTooFewSamples
	}
	for _, s := range c.Series {
		if len(s.Y) != len(c.X) {
			return "", fmt.Errorf("export: series %q has %d points, want %d", s.Label, len(s.Y), len(c.X))
		}
	}

	const left, right, top, bottom = 64.0, 16.0, 32.0, 44.0
	w, h := float64(width), float64(height)
	plotW, plotH := w-left-right, h-top-bottom
	b := c.bounds()

	px := func(x float64) float64 { return left + (x-b.minX)/(b.maxX-b.minX)*plotW }
	py := func(y float64) float64 { return top + plotH - (y-b.minY)/(b.maxY-b.minY)*plotH }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="11">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	fmt.Fprintf(&sb, `<text x="%.1f" y="20" fill="%s" font-size="14" text-anchor="middle">%s</text>
`, w/2, foreground, escape(c.Title))

	const ticks = 5
	for i := 0; i <= ticks; i++ {
		f := float64(i) / ticks
		xv := b.minX + f*(b.maxX-b.minX)
		yv := b.minY + f*(b.maxY-b.minY)
		x, y := px(xv), py(yv)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>
`, x, top, x, top+plotH, gridColor)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>
`, left, y, left+plotW, y, gridColor)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" text-anchor="middle">%.3g</text>
`, x, top+plotH+14, foreground, xv)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" text-anchor="end">%.3g</text>
`, left-4, y+4, foreground, yv)
	}

	fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, left, top, plotW, plotH, foreground)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" text-anchor="middle">%s</text>
`, left+plotW/2, h-8, foreground, escape(c.XLabel))
	fmt.Fprintf(&sb, `<text x="14" y="%.1f" fill="%s" text-anchor="middle" transform="rotate(-90 14 %.1f)">%s</text>
`, top+plotH/2, foreground, top+plotH/2, escape(c.YLabel))

	stride := 1
	if n := len(c.X); n > maxPoints {
		stride = (n + maxPoints - 1) / maxPoints
	}
	for _, s := range c.Series {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Color)
		last := len(c.X) - 1
		for i := 0; i <= last; i += stride {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(c.X[i]), py(s.Y[i]))
			if i+stride > last && i != last {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px(c.X[last]), py(s.Y[last]))
			}
		}
		sb.WriteString("\"/>\n")
	}

	if len(c.Series) > 1 {
		for i, s := range c.Series {
			y := top + 14 + float64(i)*16
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
`, left+plotW-110, y-4, left+plotW-92, y-4, s.Color)
			fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, left+plotW-86, y, foreground, escape(s.Label))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
