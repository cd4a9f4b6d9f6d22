package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/wcharczuk/go-chart/v2"
)

var ErrEmptyTrajectory = errors.New("export: trajectory has no points")

// TrajectoryPNG renders the trajectory as a PNG line chart.
func TrajectoryPNG(w io.Writer, points []kinematics.Point, width, height int, labels Labels) error {
	if len(points) == 0 {
		return ErrEmptyTrajectory
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	// go-chart needs two samples to draw a line
	if len(points) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}
	b := boundsOf(points)

	graph := chart.Chart{
		Title:  labels.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  labels.XLabel,
			Range: &chart.ContinuousRange{Min: b.minX, Max: b.maxX},
		},
		YAxis: chart.YAxis{
			Name:  labels.YLabel,
			Range: &chart.ContinuousRange{Min: b.minY, Max: b.maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    labels.Title,
				XValues: xs,
				YValues: ys,
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("export: render png: %w", err)
	}
	return nil
}
