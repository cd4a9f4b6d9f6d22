package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/session"
	"github.com/san-kum/motionlab/internal/viz"
)

const sidebarWidth = 28

var navKeys = map[session.View]string{
	session.Home:             "nav.home",
	session.FreeFall:         "nav.freefall",
	session.LinearMotion:     "nav.linear",
	session.ProjectileMotion: "nav.projectile",
}

func (m model) contentWidth() int {
	return max(m.width-sidebarWidth-4, 20)
}

func (m model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), "  ", m.viewContent())

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.p.T("app.title")) + "\n\n")
	b.WriteString(m.styles.Label.Render(m.p.T("app.select")) + "\n\n")

	current := m.sess.View()
	for i, v := range session.Views() {
		radio := "○"
		if v == current {
			radio = "●"
		}
		label := m.p.T(navKeys[v])
		switch {
		case v == session.Home:
			label = viz.Rainbow(label)
		case v == current:
			label = m.styles.Selected.Render(label)
		}
		pointer := "  "
		if i == m.cursor && m.focus == focusSidebar {
			pointer = m.styles.Selected.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", pointer, radio, label))
		b.WriteString("    " + m.styles.Muted.Render(m.p.T(navKeys[v]+".caption")) + "\n")
	}

	style := m.styles.Panel.Width(sidebarWidth)
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) viewContent() string {
	var b strings.Builder
	if m.fx.snow != nil {
		b.WriteString(m.styles.Muted.Render(m.fx.snow.Render()))
		b.WriteString("\n")
	}

	view := m.sess.View()
	b.WriteString(m.r.Header(view))
	b.WriteString("\n\n")

	switch view {
	case session.Home:
		b.WriteString(m.r.Home())
	case session.FreeFall:
		b.WriteString(m.viewFreeFallControls())
		b.WriteString("\n\n")
		b.WriteString(m.r.FreeFall(m.sess, m.trials.View()))
	case session.LinearMotion:
		b.WriteString(m.viewLinearControls())
		b.WriteString("\n\n")
		b.WriteString(m.r.Linear(m.sess))
	case session.ProjectileMotion:
		b.WriteString(m.viewProjectileControls())
		b.WriteString("\n\n")
		b.WriteString(m.r.Projectile(m.sess))
	}
	return lipgloss.NewStyle().Width(m.contentWidth()).Render(b.String())
}

func (m model) controlLabel(text string, active bool) string {
	if active {
		return m.styles.Selected.Render("▸ " + text)
	}
	return "  " + m.styles.Label.Render(text)
}

func (m model) viewFreeFallControls() string {
	t := m.sess.FallTime()
	bar := viz.SliderBar(t, kinematics.FallTimeMin, kinematics.FallTimeMax, 30)
	return m.controlLabel(m.p.T("freefall.slider"), m.focus == focusContent) + "\n" +
		fmt.Sprintf("  %s %s", bar, m.styles.Value.Render(fmt.Sprintf("%.1f", t))) + "\n" +
		"  " + m.styles.Muted.Render(viz.SparklineChart(velocities(m.sess.Trials()), 30))
}

func velocities(trials []session.TrialRecord) []float64 {
	out := make([]float64, len(trials))
	for i, tr := range trials {
		out[i] = tr.Velocity
	}
	return out
}

func (m model) viewLinearControls() string {
	labels := [3]string{m.p.T("linear.x0"), m.p.T("linear.v"), m.p.T("linear.t")}
	active := m.focus == focusContent

	var b strings.Builder
	for i, in := range m.linear {
		b.WriteString(m.controlLabel(labels[i], active && m.linSlot == i))
		b.WriteString("\n    [" + in.View() + "]\n")
	}
	button := "[ " + m.p.T("linear.submit") + " ]"
	if active && m.linSlot == slotCalc {
		b.WriteString(m.styles.Selected.Render("▸ " + button))
	} else {
		b.WriteString("  " + m.styles.Label.Render(button))
	}
	return b.String()
}

func (m model) viewProjectileControls() string {
	active := m.focus == focusContent
	angle := m.sess.ProjectileInputs().Angle
	bar := viz.SliderBar(float64(angle), kinematics.AngleMin, kinematics.AngleMax, 30)

	var b strings.Builder
	b.WriteString(m.controlLabel(m.p.T("projectile.v0"), active && m.projSlot == slotV0))
	b.WriteString("\n    [" + m.v0.View() + "]\n")
	b.WriteString(m.controlLabel(m.p.T("projectile.angle"), active && m.projSlot == slotAngle))
	b.WriteString(fmt.Sprintf("\n  %s %s", bar, m.styles.Value.Render(fmt.Sprintf("%d°", angle))))
	return b.String()
}
