// Package screen renders the output of the active view of a session.
//
// Rendering is read-only: it never records trials or commits forms. The
// interactive surface and the CLI both draw through a Renderer so the two
// show the same text.
package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/glamour"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/i18n"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/session"
	"github.com/san-kum/motionlab/internal/viz"
)

type Renderer struct {
	p       *i18n.Printer
	styles  viz.Styles
	plotW   int
	plotH   int
	wrap    int
	mdStyle string

	md     *glamour.TermRenderer
	mdWrap int
}

type Option func(*Renderer)

func WithStyles(s viz.Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

// WithPlotSize sets the terminal plot size in cells.
func WithPlotSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.plotW = width
		}
		if height > 0 {
			r.plotH = height
		}
	}
}

// WithMarkdownStyle selects a glamour style ("dark", "light", "notty", ...).
func WithMarkdownStyle(style string) Option {
	return func(r *Renderer) { r.mdStyle = style }
}

func New(p *i18n.Printer, opts ...Option) *Renderer {
	r := &Renderer{
		p:       p,
		styles:  viz.NewStyles(viz.GetTheme(config.DefaultTheme)),
		plotW:   config.DefaultPlotWidth,
		plotH:   config.DefaultPlotHeight,
		wrap:    80,
		mdStyle: "dark",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Printer() *i18n.Printer { return r.p }
func (r *Renderer) Styles() viz.Styles     { return r.styles }

// SetWidth changes the help text wrap width, e.g. on terminal resize.
func (r *Renderer) SetWidth(n int) {
	if n > 0 {
		r.wrap = n
	}
}

// Header is the title line of a view.
func (r *Renderer) Header(v session.View) string {
	var key string
	switch v {
	case session.Home:
		key = "home.header"
	case session.FreeFall:
		key = "freefall.header"
	case session.LinearMotion:
		key = "linear.header"
	case session.ProjectileMotion:
		key = "projectile.header"
	default:
		return ""
	}
	return r.styles.Header.Render(r.p.T(key))
}

// Render draws the header and output of the session's current view.
func (r *Renderer) Render(s *session.Session) string {
	return r.Header(s.View()) + "\n\n" + r.Body(s)
}

// Body dispatches on the session's current view.
func (r *Renderer) Body(s *session.Session) string {
	switch s.View() {
	case session.Home:
		return r.Home()
	case session.FreeFall:
		return r.FreeFall(s, r.TrialTable(s.Trials(), 0).View())
	case session.LinearMotion:
		return r.Linear(s)
	case session.ProjectileMotion:
		return r.Projectile(s)
	}
	return ""
}

// Home renders the help text. Markdown falls back to plain text when glamour
// cannot render it.
func (r *Renderer) Home() string {
	return r.markdown(r.p.Home())
}

func (r *Renderer) markdown(src string) string {
	if r.md == nil || r.mdWrap != r.wrap {
		md, err := glamour.NewTermRenderer(
			glamour.WithStylePath(r.mdStyle),
			glamour.WithWordWrap(r.wrap),
		)
		if err != nil {
			return src
		}
		r.md, r.mdWrap = md, r.wrap
	}
	out, err := r.md.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}

// FreeFallLines are the velocity and distance lines for the current slider
// value.
func (r *Renderer) FreeFallLines(s *session.Session) string {
	v, d := kinematics.FreeFall(s.FallTime())
	return r.styles.Value.Render(r.p.T("freefall.velocity", v)) + "\n" +
		r.styles.Value.Render(r.p.T("freefall.distance", d))
}

// FreeFall renders the result lines followed by table, the already drawn
// trial log.
func (r *Renderer) FreeFall(s *session.Session, table string) string {
	var b strings.Builder
	b.WriteString(r.FreeFallLines(s))
	b.WriteString("\n")
	b.WriteString(viz.Separator(r.plotW))
	b.WriteString("\n")
	b.WriteString(r.styles.Label.Render(r.p.T("freefall.accumulated")))
	b.WriteString("\n")
	b.WriteString(table)
	return b.String()
}

// TrialTable builds the trial log table. A height of zero fits every row.
func (r *Renderer) TrialTable(trials []session.TrialRecord, height int) table.Model {
	rows := make([]table.Row, len(trials))
	for i, tr := range trials {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f", tr.FallTime),
			fmt.Sprintf("%.3f", tr.Velocity),
			fmt.Sprintf("%.3f", tr.Distance),
		}
	}
	if height <= 0 {
		height = len(rows) + 1
	}
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: r.p.T("freefall.col.time"), Width: 16},
			{Title: r.p.T("freefall.col.velocity"), Width: 16},
			{Title: r.p.T("freefall.col.distance"), Width: 16},
		}),
		table.WithRows(rows),
		table.WithHeight(height),
	)
}

// Linear renders the committed linear-motion result, or a hint before the
// first submit.
func (r *Renderer) Linear(s *session.Session) string {
	out, ok := s.LinearResult()
	if !ok {
		return r.styles.Muted.Render(r.p.T("linear.pending"))
	}
	return r.styles.Value.Render(r.p.T("linear.result", out.FinalPosition))
}

// Projectile renders apex height, range and the trajectory plot.
func (r *Renderer) Projectile(s *session.Session) string {
	in := s.ProjectileInputs()
	var b strings.Builder
	b.WriteString(r.ProjectileLines(s.Projectile()))
	b.WriteString("\n\n")
	b.WriteString(r.Plot(kinematics.TrajectorySamples(in.InitialVelocity, float64(in.Angle))))
	return b.String()
}

func (r *Renderer) ProjectileLines(res kinematics.ProjectileResult) string {
	return r.styles.Value.Render(r.p.T("projectile.height", res.MaxHeight)) + "\n" +
		r.styles.Value.Render(r.p.T("projectile.range", res.Range))
}

// Plot draws height against distance. Samples are evenly spaced in time and
// horizontal speed is constant, so the column index is proportional to
// distance.
func (r *Renderer) Plot(points []kinematics.Point) string {
	if len(points) == 0 {
		return ""
	}
	ys := make([]float64, len(points))
	maxX := 0.0
	for i, p := range points {
		ys[i] = p.Y
		maxX = max(maxX, p.X)
	}
	if len(ys) == 1 {
		ys = append(ys, ys[0])
	}

	graph := asciigraph.Plot(ys,
		asciigraph.Height(r.plotH),
		asciigraph.Width(r.plotW),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("%s: 0 - %.2f", r.p.T("plot.x"), maxX)),
	)

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(r.p.T("plot.title")))
	b.WriteString("\n")
	b.WriteString(r.styles.Label.Render(r.p.T("plot.y")))
	b.WriteString("\n")
	b.WriteString(graph)
	return b.String()
}
