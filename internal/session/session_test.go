package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motionlab/internal/session"
)

var _ = Describe("TrialLog", func() {
	var log session.TrialLog

	BeforeEach(func() {
		log = session.TrialLog{}
	})

	It("is empty and unstarted until the first record", func() {
		Expect(log.Started()).To(BeFalse())
		Expect(log.Snapshot()).To(BeEmpty())
		_, ok := log.Last()
		Expect(ok).To(BeFalse())
	})

	It("computes velocity and distance", func() {
		rec := log.Record(1.0)
		Expect(rec.FallTime).To(Equal(1.0))
		Expect(rec.Velocity).To(BeNumerically("~", 9.81, 1e-9))
		Expect(rec.Distance).To(BeNumerically("~", 4.905, 1e-9))
	})

	It("keeps every record in call order, duplicates included", func() {
		times := []float64{1.0, 1.0, 2.5, 0, 1.0}
		for _, t := range times {
			log.Record(t)
		}
		snap := log.Snapshot()
		Expect(snap).To(HaveLen(len(times)))
		for i, t := range times {
			Expect(snap[i].FallTime).To(Equal(t))
		}
		Expect(log.Started()).To(BeTrue())
	})

	It("hands out copies", func() {
		log.Record(3)
		snap := log.Snapshot()
		snap[0].FallTime = 99
		Expect(log.Snapshot()[0].FallTime).To(Equal(3.0))
	})

	It("empties on reset", func() {
		log.Record(1)
		log.Reset()
		Expect(log.Len()).To(BeZero())
		Expect(log.Started()).To(BeFalse())
	})
})

var _ = Describe("Session", func() {
	var s *session.Session

	BeforeEach(func() {
		s = session.New()
	})

	It("starts on Home with an unstarted log and default controls", func() {
		Expect(s.View()).To(Equal(session.Home))
		Expect(s.TrialsStarted()).To(BeFalse())
		Expect(s.FallTime()).To(Equal(1.0))
		Expect(s.ProjectileInputs()).To(Equal(session.ProjectileInputs{InitialVelocity: 20, Angle: 45}))
		Expect(s.LinearDraft()).To(Equal(session.LinearInputs{}))
		Expect(s.ID()).NotTo(BeEmpty())
	})

	Context("free fall", func() {
		It("records a trial when the screen is selected", func() {
			s.Select(session.FreeFall)
			Expect(s.TrialCount()).To(Equal(1))
			last, ok := s.LastTrial()
			Expect(ok).To(BeTrue())
			Expect(last.FallTime).To(Equal(1.0))
		})

		It("records one trial per change event", func() {
			s.Select(session.FreeFall)
			s.ChangeFallTime(2)
			s.ChangeFallTime(2)
			s.RecomputeFreeFall()
			trials := s.Trials()
			Expect(trials).To(HaveLen(4))
			Expect(trials[1]).To(Equal(trials[2]))
			Expect(trials[3].FallTime).To(Equal(2.0))
		})

		It("does not record from other views", func() {
			s.Select(session.LinearMotion)
			s.SubmitLinear()
			s.Select(session.ProjectileMotion)
			s.ChangeProjectile(session.ProjectileInputs{InitialVelocity: 10, Angle: 30})
			s.Select(session.Home)
			Expect(s.TrialsStarted()).To(BeFalse())
		})
	})

	Context("linear motion", func() {
		It("produces nothing until submit", func() {
			Expect(s.EditLinear(session.FieldInitialPosition, 5)).To(Succeed())
			Expect(s.EditLinear(session.FieldVelocity, 2)).To(Succeed())
			Expect(s.EditLinear(session.FieldTime, 3)).To(Succeed())
			_, ok := s.LinearResult()
			Expect(ok).To(BeFalse())

			out := s.SubmitLinear()
			Expect(out.FinalPosition).To(Equal(11.0))
			Expect(out.Submits).To(Equal(1))
		})

		It("keeps the committed output while the draft changes", func() {
			Expect(s.EditLinear(session.FieldVelocity, 1)).To(Succeed())
			Expect(s.EditLinear(session.FieldTime, 4)).To(Succeed())
			first := s.SubmitLinear()

			Expect(s.EditLinear(session.FieldTime, 100)).To(Succeed())
			got, ok := s.LinearResult()
			Expect(ok).To(BeTrue())
			Expect(got.FinalPosition).To(Equal(first.FinalPosition))
		})

		It("is idempotent across repeated submits", func() {
			Expect(s.EditLinear(session.FieldInitialPosition, -2)).To(Succeed())
			Expect(s.EditLinear(session.FieldVelocity, 0.5)).To(Succeed())
			a := s.SubmitLinear()
			b := s.SubmitLinear()
			Expect(b.FinalPosition).To(Equal(a.FinalPosition))
			Expect(b.Submits).To(Equal(2))
		})

		It("rejects unknown fields", func() {
			Expect(s.EditLinear(session.LinearField(7), 1)).To(MatchError(session.ErrUnknownField))
		})
	})

	Context("projectile motion", func() {
		It("evaluates on change", func() {
			res := s.ChangeProjectile(session.ProjectileInputs{InitialVelocity: 20, Angle: 0})
			Expect(res.MaxHeight).To(BeZero())
			Expect(res.Range).To(BeZero())
			Expect(s.Projectile()).To(Equal(res))
		})
	})

	It("fires exactly one hook call per selection", func() {
		calls := 0
		s.OnTransition(func(session.Transition) { calls++ })
		for _, v := range session.Views() {
			s.Select(v)
		}
		s.Select(session.Home)
		Expect(calls).To(Equal(5))
		Expect(s.Transitions()).To(Equal(5))
	})

	It("shares nothing between sessions", func() {
		other := session.New()
		s.Select(session.FreeFall)
		s.ChangeFallTime(4)
		Expect(other.View()).To(Equal(session.Home))
		Expect(other.TrialCount()).To(BeZero())
		Expect(other.ID()).NotTo(Equal(s.ID()))
	})

	It("applies custom defaults and resets to them", func() {
		in := session.DefaultInputs()
		in.FallTime = 3
		s = session.New(session.WithInputs(in), session.WithID("fixed"))
		Expect(s.ID()).To(Equal("fixed"))

		s.Select(session.FreeFall)
		s.ChangeFallTime(7)
		s.Reset()
		Expect(s.FallTime()).To(Equal(3.0))
		Expect(s.TrialCount()).To(BeZero())
		Expect(s.View()).To(Equal(session.FreeFall))
	})
})
