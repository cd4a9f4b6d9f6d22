package session

import "github.com/san-kum/motionlab/internal/kinematics"

// TrialRecord is one completed free-fall computation.
type TrialRecord struct {
	FallTime float64 `json:"fall_time"`
	Velocity float64 `json:"velocity"`
	Distance float64 `json:"distance"`
}

// NewTrialRecord evaluates free fall for t seconds.
func NewTrialRecord(t float64) TrialRecord {
	v, d := kinematics.FreeFall(t)
	return TrialRecord{FallTime: t, Velocity: v, Distance: d}
}

// TrialLog is an append-only sequence of trials in computation order.
// The zero value is an empty, not yet started log.
type TrialLog struct {
	records []TrialRecord
}

// Record computes a trial for fallTime, appends it and returns it.
// Identical fall times produce separate entries.
func (l *TrialLog) Record(fallTime float64) TrialRecord {
	if l.records == nil {
		l.records = make([]TrialRecord, 0, 16)
	}
	rec := NewTrialRecord(fallTime)
	l.records = append(l.records, rec)
	return rec
}

// Snapshot returns a copy of every trial in insertion order.
func (l *TrialLog) Snapshot() []TrialRecord {
	out := make([]TrialRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of recorded trials.
func (l *TrialLog) Len() int {
	return len(l.records)
}

// Started reports whether a trial has ever been recorded since the last reset.
func (l *TrialLog) Started() bool {
	return l.records != nil
}

// Last returns the most recent trial.
func (l *TrialLog) Last() (TrialRecord, bool) {
	if len(l.records) == 0 {
		return TrialRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Reset discards the log. Only a session reset may call this.
func (l *TrialLog) Reset() {
	l.records = nil
}
