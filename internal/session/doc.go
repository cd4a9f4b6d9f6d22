// Package session holds the per-user state of a motionlab session.
//
// A [Session] owns exactly one view selector and one trial log:
//
//   - [Selector]: single-choice [View] state machine with transition hooks
//   - [TrialLog]: append-only record of free-fall computations
//
// Input arrives as two kinds of events. Change events (the free-fall slider,
// projectile inputs) compute immediately; the free-fall change event is the
// only place a trial is appended. Submit events (the linear-motion form)
// commit a draft and compute only then.
//
// # Thread Safety
//
// A Session is owned by a single interaction loop and is NOT safe for
// concurrent use. Independent sessions created with [New] share nothing.
package session
