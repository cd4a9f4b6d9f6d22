package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/motionlab/internal/kinematics"
)

// Labels are the caption texts drawn around a plot.
type Labels struct {
	Title  string
	XLabel string
	YLabel string
}

// DefaultLabels are the English captions of the projectile plot.
var DefaultLabels = Labels{
	Title:  "Projectile Motion",
	XLabel: "Distance (m)",
	YLabel: "Height (m)",
}

const svgMargin = 40

// TrajectoryToSVG creates an SVG line plot of a trajectory. A single-sample
// trajectory is drawn as a dot.
func TrajectoryToSVG(points []kinematics.Point, width, height int, strokeColor string, labels Labels) string {
	if len(points) == 0 {
		return ""
	}

	b := boundsOf(points)
	plotW := float64(width - 2*svgMargin)
	plotH := float64(height - 2*svgMargin)
	if plotW <= 0 || plotH <= 0 {
		return ""
	}
	project := func(p kinematics.Point) (float64, float64) {
		x := svgMargin + (p.X-b.minX)/b.rangeX()*plotW
		y := float64(height-svgMargin) - (p.Y-b.minY)/b.rangeY()*plotH
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// axes
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#666666" stroke-width="1" d="M%d,%d L%d,%d L%d,%d"/>
`, svgMargin, svgMargin, svgMargin, height-svgMargin, width-svgMargin, height-svgMargin))

	if len(points) == 1 {
		x, y := project(points[0])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, strokeColor))
	} else {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
		for i, p := range points {
			x, y := project(p)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(fmt.Sprintf(`<g fill="#e0e0e0" font-family="sans-serif" font-size="12" text-anchor="middle">
<text x="%d" y="%d" font-size="14">%s</text>
<text x="%d" y="%d">%s</text>
<text x="%d" y="%d" transform="rotate(-90 %d %d)">%s</text>
</g>
`,
		width/2, svgMargin/2+5, html.EscapeString(labels.Title),
		width/2, height-svgMargin/4, html.EscapeString(labels.XLabel),
		svgMargin/3, height/2, svgMargin/3, height/2, html.EscapeString(labels.YLabel)))

	sb.WriteString("</svg>")
	return sb.String()
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b bounds) rangeX() float64 { return b.maxX - b.minX }
func (b bounds) rangeY() float64 { return b.maxY - b.minY }

// boundsOf returns the extent of points, widened to at least one unit per axis
// so a flat or single-point trajectory still has a drawable range.
func boundsOf(points []kinematics.Point) bounds {
	b := bounds{minX: points[0].X, maxX: points[0].X, minY: points[0].Y, maxY: points[0].Y}
	for _, p := range points[1:] {
		b.minX = min(b.minX, p.X)
		b.maxX = max(b.maxX, p.X)
		b.minY = min(b.minY, p.Y)
		b.maxY = max(b.maxY, p.Y)
	}
	if b.rangeX() == 0 {
		b.maxX = b.minX + 1
	}
	if b.rangeY() == 0 {
		b.maxY = b.minY + 1
	}
	return b
}
