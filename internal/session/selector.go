package session

import "fmt"

// Transition describes one selection event. Seq counts selection events
// within the selector's lifetime, starting at 1.
type Transition struct {
	From View
	To   View
	Seq  int
}

// Selector is the view state machine. Every call to Select is a transition,
// including re-selecting the current view, and fires each hook exactly once.
type Selector struct {
	current View
	seq     int
	hooks   []func(Transition)
}

// NewSelector returns a selector positioned on Home.
func NewSelector() *Selector {
	return &Selector{current: Home}
}

// Current returns the active view.
func (s *Selector) Current() View {
	return s.current
}

// Transitions returns the number of selection events so far.
func (s *Selector) Transitions() int {
	return s.seq
}

// OnTransition registers a hook run after every selection.
func (s *Selector) OnTransition(fn func(Transition)) {
	if fn != nil {
		s.hooks = append(s.hooks, fn)
	}
}

// Select moves to target. target must be a valid View; anything else is a
// programming error in the caller and panics.
func (s *Selector) Select(target View) Transition {
	if !target.Valid() {
		panic(fmt.Sprintf("session: select of undefined view %d", int(target)))
	}
	s.seq++
	tr := Transition{From: s.current, To: target, Seq: s.seq}
	s.current = target
	for _, fn := range s.hooks {
		fn(tr)
	}
	return tr
}
