package tui

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/motionlab/internal/i18n"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/screen"
	"github.com/san-kum/motionlab/internal/session"
	"github.com/san-kum/motionlab/internal/storage"
	"github.com/san-kum/motionlab/internal/viz"
	"go.uber.org/zap"
)

const (
	fallStep     = 0.1
	fallBigStep  = 1.0
	angleStep    = 1
	angleBigStep = 5

	tableHeight = 8
	snowRows    = 4
	snowFlakes  = 24
)

type focus int

const (
	focusSidebar focus = iota
	focusContent
)

// linear form slots: three inputs then the calculate button
const (
	slotX0 = iota
	slotV
	slotT
	slotCalc
)

// projectile slots
const (
	slotV0 = iota
	slotAngle
)

var linearFields = [3]session.LinearField{
	session.FieldInitialPosition,
	session.FieldVelocity,
	session.FieldTime,
}

// effects is shared by every copy of the model so the transition hook can
// start the welcome snowfall.
type effects struct {
	snow    *viz.Snowfall
	pending bool
	ticking bool
	width   int
}

func (fx *effects) kick() tea.Cmd {
	if !fx.pending {
		return nil
	}
	fx.pending = false
	if fx.ticking {
		return nil
	}
	fx.ticking = true
	return snowTick()
}

type snowTickMsg time.Time

func snowTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return snowTickMsg(t) })
}

type exportedMsg struct {
	runID string
	count int
	err   error
}

// Options configure the interactive app.
type Options struct {
	Session  *session.Session
	Renderer *screen.Renderer
	// Store receives trial exports; nil disables the export key.
	Store  *storage.Store
	Logger *zap.Logger
	Start  session.View
}

type model struct {
	sess   *session.Session
	r      *screen.Renderer
	p      *i18n.Printer
	styles viz.Styles
	store  *storage.Store
	logger *zap.Logger

	keys     keyMap
	help     help.Model
	showHelp bool

	focus  focus
	cursor int

	trials    table.Model
	linear    [3]textinput.Model
	linSlot   int
	v0        textinput.Model
	projSlot  int
	status    string
	statusErr bool

	fx *effects

	width  int
	height int
}

// NewInteractiveApp builds the app model around an existing session.
func NewInteractiveApp(opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := model{
		sess:   opts.Session,
		r:      opts.Renderer,
		p:      opts.Renderer.Printer(),
		styles: opts.Renderer.Styles(),
		store:  opts.Store,
		logger: logger,
		keys:   defaultKeys(),
		help:   help.New(),
		fx:     &effects{width: 60},
		width:  100,
		height: 30,
	}
	for i := range m.linear {
		m.linear[i] = numberInput("0")
	}
	m.v0 = numberInput("20")
	m.syncInputs()

	fx := m.fx
	m.sess.OnTransition(func(tr session.Transition) {
		fx.snow = viz.NewSnowfall(fx.width, snowRows, snowFlakes, int64(tr.Seq))
		fx.pending = true
	})

	m.cursor = int(m.sess.View())
	if opts.Start != session.Home && opts.Start.Valid() {
		m = m.selectView(opts.Start)
	}
	m.refreshTrials()
	return m
}

func numberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Width = 12
	ti.Prompt = ""
	return ti
}

func formatInput(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseInput reads a number field; blank or malformed text is not a value.
func parseInput(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// syncInputs copies session values into the text fields.
func (m *model) syncInputs() {
	d := m.sess.LinearDraft()
	m.linear[slotX0].SetValue(formatInput(d.InitialPosition))
	m.linear[slotV].SetValue(formatInput(d.Velocity))
	m.linear[slotT].SetValue(formatInput(d.Time))
	m.v0.SetValue(formatInput(m.sess.ProjectileInputs().InitialVelocity))
}

func (m *model) refreshTrials() {
	t := m.r.TrialTable(m.sess.Trials(), tableHeight)
	if m.focus == focusContent && m.sess.View() == session.FreeFall {
		t.Focus()
	}
	t.GotoBottom()
	m.trials = t
}

func (m model) Init() tea.Cmd { return m.fx.kick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next, tea.Batch(cmd, next.fx.kick())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fx.width = max(m.contentWidth(), 1)
		m.r.SetWidth(m.contentWidth())
		return m, nil
	case snowTickMsg:
		if m.fx.snow == nil || !m.fx.snow.Step() {
			m.fx.snow = nil
			m.fx.ticking = false
			return m, nil
		}
		return m, snowTick()
	case exportedMsg:
		return m.handleExported(msg), nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.typing() {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Focus):
			m.setFocus(focusSidebar)
			return m, nil
		}
		return m.contentKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		n, _ := strconv.Atoi(msg.String())
		return m.selectView(session.View(n - 1)), m.focusCmd()
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusSidebar {
			m.setFocus(focusContent)
			return m, m.focusCmd()
		}
		m.setFocus(focusSidebar)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.setFocus(focusSidebar)
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.sidebarKey(msg)
	}
	return m.contentKey(msg)
}

// typing reports whether a text field has the keyboard.
func (m model) typing() bool {
	if m.focus != focusContent {
		return false
	}
	switch m.sess.View() {
	case session.LinearMotion:
		return m.linSlot != slotCalc
	case session.ProjectileMotion:
		return m.projSlot == slotV0
	}
	return false
}

func (m model) sidebarKey(msg tea.KeyMsg) (model, tea.Cmd) {
	views := session.Views()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(views)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		return m.selectView(views[m.cursor]), m.focusCmd()
	}
	return m, nil
}

// selectView is the selection event: every call, including re-selecting the
// current view, goes through the session.
func (m model) selectView(v session.View) model {
	m.sess.Select(v)
	m.cursor = int(v)
	m.status = m.p.T("welcome")
	m.statusErr = false
	m.linSlot = slotX0
	m.projSlot = slotV0
	m.setFocus(focusContent)
	m.refreshTrials()
	return m
}

func (m *model) setFocus(f focus) {
	m.focus = f
	for i := range m.linear {
		m.linear[i].Blur()
	}
	m.v0.Blur()
	m.trials.Blur()
	if f != focusContent {
		return
	}
	switch m.sess.View() {
	case session.FreeFall:
		m.trials.Focus()
	case session.LinearMotion:
		if m.linSlot != slotCalc {
			m.linear[m.linSlot].Focus()
		}
	case session.ProjectileMotion:
		if m.projSlot == slotV0 {
			m.v0.Focus()
		}
	}
}

func (m model) focusCmd() tea.Cmd {
	if m.typing() {
		return textinput.Blink
	}
	return nil
}

func (m model) contentKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.sess.View() {
	case session.FreeFall:
		return m.freeFallKey(msg)
	case session.LinearMotion:
		return m.linearKey(msg)
	case session.ProjectileMotion:
		return m.projectileKey(msg)
	}
	return m, nil
}

func (m model) freeFallKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.nudgeFallTime(-fallStep)
	case key.Matches(msg, m.keys.Right):
		m.nudgeFallTime(fallStep)
	case key.Matches(msg, m.keys.BigLeft):
		m.nudgeFallTime(-fallBigStep)
	case key.Matches(msg, m.keys.BigRight):
		m.nudgeFallTime(fallBigStep)
	case key.Matches(msg, m.keys.Enter):
		m.sess.RecomputeFreeFall()
		m.refreshTrials()
	default:
		var cmd tea.Cmd
		m.trials, cmd = m.trials.Update(msg)
		return m, cmd
	}
	return m, nil
}

// nudgeFallTime is the slider change event. Values stay on the 0.1 grid.
func (m *model) nudgeFallTime(delta float64) {
	t := math.Round((m.sess.FallTime()+delta)*10) / 10
	t = kinematics.Clamp(t, kinematics.FallTimeMin, kinematics.FallTimeMax)
	m.sess.ChangeFallTime(t)
	m.refreshTrials()
}

func (m model) linearKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		if m.linSlot > slotX0 {
			m.linSlot--
		}
		m.setFocus(focusContent)
		return m, m.focusCmd()
	case tea.KeyDown:
		if m.linSlot < slotCalc {
			m.linSlot++
		}
		m.setFocus(focusContent)
		return m, m.focusCmd()
	case tea.KeyEnter:
		m.submitLinear()
		return m, nil
	}
	if m.linSlot == slotCalc {
		return m, nil
	}

	var cmd tea.Cmd
	m.linear[m.linSlot], cmd = m.linear[m.linSlot].Update(msg)
	if v, ok := parseInput(m.linear[m.linSlot].Value()); ok {
		_ = m.sess.EditLinear(linearFields[m.linSlot], v)
	}
	return m, cmd
}

// submitLinear commits the form. Fields that do not parse count as zero.
func (m *model) submitLinear() {
	for i, field := range linearFields {
		v, _ := parseInput(m.linear[i].Value())
		_ = m.sess.EditLinear(field, v)
	}
	m.sess.SubmitLinear()
}

func (m model) projectileKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		m.projSlot = slotV0
		m.setFocus(focusContent)
		return m, m.focusCmd()
	case tea.KeyDown:
		m.projSlot = slotAngle
		m.setFocus(focusContent)
		return m, nil
	}

	in := m.sess.ProjectileInputs()
	if m.projSlot == slotAngle {
		switch {
		case key.Matches(msg, m.keys.Left):
			in.Angle -= angleStep
		case key.Matches(msg, m.keys.Right):
			in.Angle += angleStep
		case key.Matches(msg, m.keys.BigLeft):
			in.Angle -= angleBigStep
		case key.Matches(msg, m.keys.BigRight):
			in.Angle += angleBigStep
		default:
			return m, nil
		}
		in.Angle = kinematics.ClampInt(in.Angle, kinematics.AngleMin, kinematics.AngleMax)
		m.sess.ChangeProjectile(in)
		return m, nil
	}

	var cmd tea.Cmd
	m.v0, cmd = m.v0.Update(msg)
	// the field and the computation always agree; text that does not parse
	// counts as zero, like a linear field on submit
	v, _ := parseInput(m.v0.Value())
	if v != in.InitialVelocity {
		in.InitialVelocity = v
		m.sess.ChangeProjectile(in)
	}
	return m, cmd
}

func (m *model) reset() {
	m.sess.Reset()
	m.syncInputs()
	m.refreshTrials()
	m.status = m.p.T("reset.done")
	m.statusErr = false
}

func (m model) exportCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	id, started := m.sess.ID(), m.sess.StartedAt()
	locale := m.p.Locale()
	trials := m.sess.Trials()
	return func() tea.Msg {
		runID, err := store.Save(id, started, locale, trials)
		return exportedMsg{runID: runID, count: len(trials), err: err}
	}
}

func (m model) handleExported(msg exportedMsg) model {
	switch {
	case errors.Is(msg.err, storage.ErrNoTrials):
		m.status = m.p.T("export.empty")
		m.statusErr = false
	case msg.err != nil:
		m.logger.Error("export failed", zap.Error(msg.err))
		m.status = m.p.T("export.failed", msg.err.Error())
		m.statusErr = true
	default:
		m.logger.Info("trials exported",
			zap.String("run", msg.runID),
			zap.Int("count", msg.count))
		m.status = m.p.T("export.done", msg.count, msg.runID)
		m.statusErr = false
	}
	return m
}

// RunInteractive runs the app until the user quits.
func RunInteractive(opts Options) error {
	p := tea.NewProgram(NewInteractiveApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
