package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectoryToSVG(t *testing.T) {
	points := kinematics.TrajectorySamples(20, 45)
	svg := TrajectoryToSVG(points, 640, 480, "#00ff00", DefaultLabels)

	require.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Contains(t, svg, "Projectile Motion")
	assert.Contains(t, svg, "Distance (m)")
	assert.Contains(t, svg, "Height (m)")
	assert.Equal(t, len(points)-1, strings.Count(svg, " L")-2)
}

func TestTrajectoryToSVG_SinglePoint(t *testing.T) {
	points := kinematics.TrajectorySamples(20, 0)
	require.Len(t, points, 1)

	svg := TrajectoryToSVG(points, 320, 240, "red", DefaultLabels)
	assert.Contains(t, svg, "<circle")
}

func TestTrajectoryToSVG_Degenerate(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG(nil, 640, 480, "red", DefaultLabels))
	assert.Empty(t, TrajectoryToSVG(kinematics.TrajectorySamples(20, 45), 50, 50, "red", DefaultLabels))
}

func TestTrajectoryToSVG_EscapesLabels(t *testing.T) {
	labels := Labels{Title: "a < b", XLabel: "x", YLabel: "y"}
	svg := TrajectoryToSVG(kinematics.TrajectorySamples(10, 30), 320, 240, "red", labels)
	assert.Contains(t, svg, "a &lt; b")
}

func TestTrajectoryPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrajectoryPNG(&buf, kinematics.TrajectorySamples(20, 45), 640, 480, DefaultLabels))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestTrajectoryPNG_SinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrajectoryPNG(&buf, kinematics.TrajectorySamples(0, 45), 320, 240, DefaultLabels))
	assert.NotZero(t, buf.Len())
}

func TestTrajectoryPNG_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, TrajectoryPNG(&buf, nil, 320, 240, DefaultLabels), ErrEmptyTrajectory)
}
