package viz

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

// SliderBar renders a slider track with the knob at value within [lo, hi].
func SliderBar(value, lo, hi float64, width int) string {
	if width < 2 {
		width = 2
	}
	frac := 0.0
	if hi > lo {
		frac = (value - lo) / (hi - lo)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	pos := int(frac * float64(width-1))
	return strings.Repeat("━", pos) + "●" + strings.Repeat("─", width-1-pos)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// newest values win when the series is wider than the chart
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

// Separator is a decorative horizontal rule.
func Separator(width int) string {
	if width < 8 {
		return subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return subtle.Render(left + " ◆ " + right)
}

// Snowfall is the welcome animation: flakes drift down one row per frame.
type Snowfall struct {
	width, height int
	flakes        []flake
	rng           *rand.Rand
}

type flake struct {
	x, y int
	r    rune
}

// NewSnowfall seeds count flakes over a width x height field.
func NewSnowfall(width, height, count int, seed int64) *Snowfall {
	s := &Snowfall{
		width:  max(width, 1),
		height: max(height, 1),
		rng:    rand.New(rand.NewSource(seed)),
	}
	runes := []rune{'*', '·', '❄'}
	for range count {
		s.flakes = append(s.flakes, flake{
			x: s.rng.Intn(s.width),
			y: -s.rng.Intn(s.height),
			r: runes[s.rng.Intn(len(runes))],
		})
	}
	return s
}

// Step advances every flake. It reports false once all flakes have left the
// field.
func (s *Snowfall) Step() bool {
	alive := false
	for i := range s.flakes {
		f := &s.flakes[i]
		f.y++
		if s.rng.Intn(3) == 0 {
			f.x = (f.x + s.rng.Intn(3) - 1 + s.width) % s.width
		}
		if f.y < s.height {
			alive = true
		}
	}
	return alive
}

// Render draws the visible flakes.
func (s *Snowfall) Render() string {
	grid := make([][]rune, s.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", s.width))
	}
	for _, f := range s.flakes {
		if f.y >= 0 && f.y < s.height {
			grid[f.y][f.x] = f.r
		}
	}
	lines := make([]string, s.height)
	for y, row := range grid {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

var rainbow = []lipgloss.Color{"#ff5f5f", "#ffaf5f", "#ffff5f", "#5fff87", "#5fafff", "#af87ff"}

// Rainbow colors each rune of text in turn.
func Rainbow(text string) string {
	var b strings.Builder
	i := 0
	for _, r := range text {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(rainbow[i%len(rainbow)]).Render(string(r)))
		i++
	}
	return b.String()
}
