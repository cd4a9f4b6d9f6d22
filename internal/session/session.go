package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/motionlab/internal/kinematics"
	"go.uber.org/zap"
)

// LinearInputs are the three linear-motion form fields.
type LinearInputs struct {
	InitialPosition float64 `yaml:"initial_position" json:"initial_position"`
	Velocity        float64 `yaml:"velocity" json:"velocity"`
	Time            float64 `yaml:"time" json:"time"`
}

// LinearField names one field of the linear-motion form.
type LinearField int

const (
	FieldInitialPosition LinearField = iota
	FieldVelocity
	FieldTime
)

// LinearOutcome is a committed linear-motion computation.
type LinearOutcome struct {
	Inputs        LinearInputs
	FinalPosition float64
	Submits       int
}

// ProjectileInputs are the projectile controls. Angle is whole degrees.
type ProjectileInputs struct {
	InitialVelocity float64 `yaml:"initial_velocity" json:"initial_velocity"`
	Angle           int     `yaml:"angle" json:"angle"`
}

// Inputs is the starting value of every control.
type Inputs struct {
	FallTime   float64          `yaml:"fall_time" json:"fall_time"`
	Linear     LinearInputs     `yaml:"linear" json:"linear"`
	Projectile ProjectileInputs `yaml:"projectile" json:"projectile"`
}

// DefaultInputs mirrors the control defaults of the interactive surface.
func DefaultInputs() Inputs {
	return Inputs{
		FallTime:   1.0,
		Projectile: ProjectileInputs{InitialVelocity: 20.0, Angle: 45},
	}
}

// Session is the state owned by one user: current view, trial log and the
// values of every control.
type Session struct {
	id        string
	startedAt time.Time
	logger    *zap.Logger
	selector  *Selector
	trials    TrialLog
	defaults  Inputs

	fallTime    float64
	linearDraft LinearInputs
	linear      *LinearOutcome
	projectile  ProjectileInputs
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInputs overrides the control defaults.
func WithInputs(in Inputs) Option {
	return func(s *Session) { s.defaults = in }
}

// WithID fixes the session id instead of generating one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates an independent session on the Home view.
func New(opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		startedAt: time.Now(),
		logger:    zap.NewNop(),
		selector:  NewSelector(),
		defaults:  DefaultInputs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	s.applyDefaults()
	s.selector.OnTransition(func(tr Transition) {
		s.logger.Debug("view selected",
			zap.Stringer("from", tr.From),
			zap.Stringer("to", tr.To),
			zap.Int("seq", tr.Seq))
	})
	s.logger.Info("session started")
	return s
}

func (s *Session) applyDefaults() {
	s.fallTime = s.defaults.FallTime
	s.linearDraft = s.defaults.Linear
	s.linear = nil
	s.projectile = s.defaults.Projectile
}

func (s *Session) ID() string           { return s.id }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) View() View           { return s.selector.Current() }

// OnTransition registers a hook fired once per selection event.
func (s *Session) OnTransition(fn func(Transition)) {
	s.selector.OnTransition(fn)
}

// Transitions returns the number of selection events so far.
func (s *Session) Transitions() int {
	return s.selector.Transitions()
}

// Select switches the active view. Selecting FreeFall computes the screen
// with the current slider value, which records a trial.
func (s *Session) Select(v View) Transition {
	tr := s.selector.Select(v)
	if v == FreeFall {
		s.recordTrial()
	}
	return tr
}

// FallTime returns the current free-fall slider value.
func (s *Session) FallTime() float64 {
	return s.fallTime
}

// ChangeFallTime is the free-fall slider change event. The caller clamps t to
// the slider domain. Every call records a trial, even for an unchanged value.
func (s *Session) ChangeFallTime(t float64) TrialRecord {
	s.fallTime = t
	return s.recordTrial()
}

// RecomputeFreeFall re-runs the free-fall screen with the current value.
func (s *Session) RecomputeFreeFall() TrialRecord {
	return s.recordTrial()
}

func (s *Session) recordTrial() TrialRecord {
	rec := s.trials.Record(s.fallTime)
	s.logger.Debug("trial recorded",
		zap.Int("index", s.trials.Len()),
		zap.Float64("fall_time", rec.FallTime),
		zap.Float64("velocity", rec.Velocity),
		zap.Float64("distance", rec.Distance))
	return rec
}

// Trials returns the trial log in insertion order.
func (s *Session) Trials() []TrialRecord {
	return s.trials.Snapshot()
}

// TrialCount returns the number of trials recorded.
func (s *Session) TrialCount() int {
	return s.trials.Len()
}

// TrialsStarted reports whether the trial log has been created.
func (s *Session) TrialsStarted() bool {
	return s.trials.Started()
}

// LastTrial returns the newest trial, if any.
func (s *Session) LastTrial() (TrialRecord, bool) {
	return s.trials.Last()
}

// LinearDraft returns the uncommitted form values.
func (s *Session) LinearDraft() LinearInputs {
	return s.linearDraft
}

// EditLinear updates one form field without computing anything.
func (s *Session) EditLinear(field LinearField, value float64) error {
	switch field {
	case FieldInitialPosition:
		s.linearDraft.InitialPosition = value
	case FieldVelocity:
		s.linearDraft.Velocity = value
	case FieldTime:
		s.linearDraft.Time = value
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}
	return nil
}

// SubmitLinear commits the draft and computes the final position.
func (s *Session) SubmitLinear() LinearOutcome {
	in := s.linearDraft
	submits := 1
	if s.linear != nil {
		submits = s.linear.Submits + 1
	}
	s.linear = &LinearOutcome{
		Inputs:        in,
		FinalPosition: kinematics.LinearMotion(in.InitialPosition, in.Velocity, in.Time),
		Submits:       submits,
	}
	s.logger.Debug("linear submitted",
		zap.Float64("x0", in.InitialPosition),
		zap.Float64("v", in.Velocity),
		zap.Float64("t", in.Time),
		zap.Float64("x", s.linear.FinalPosition))
	return *s.linear
}

// LinearResult returns the last committed outcome; false before any submit.
func (s *Session) LinearResult() (LinearOutcome, bool) {
	if s.linear == nil {
		return LinearOutcome{}, false
	}
	return *s.linear, true
}

// ProjectileInputs returns the current projectile controls.
func (s *Session) ProjectileInputs() ProjectileInputs {
	return s.projectile
}

// ChangeProjectile is the projectile change event. The caller clamps the angle.
func (s *Session) ChangeProjectile(in ProjectileInputs) kinematics.ProjectileResult {
	s.projectile = in
	return s.Projectile()
}

// Projectile evaluates the current projectile controls.
func (s *Session) Projectile() kinematics.ProjectileResult {
	return kinematics.Projectile(s.projectile.InitialVelocity, float64(s.projectile.Angle))
}

// Reset clears the trial log and restores every control to its default.
// The active view and registered hooks are kept.
func (s *Session) Reset() {
	s.trials.Reset()
	s.applyDefaults()
	s.logger.Info("session reset")
}
