package session_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motionlab/internal/session"
)

var _ = Describe("Selector", func() {
	var (
		sel   *session.Selector
		fired []session.Transition
	)

	BeforeEach(func() {
		sel = session.NewSelector()
		fired = nil
		sel.OnTransition(func(tr session.Transition) {
			fired = append(fired, tr)
		})
	})

	It("starts on Home without firing", func() {
		Expect(sel.Current()).To(Equal(session.Home))
		Expect(sel.Transitions()).To(BeZero())
		Expect(fired).To(BeEmpty())
	})

	DescribeTable("lands on the selected view and fires once",
		func(target session.View) {
			tr := sel.Select(target)
			Expect(sel.Current()).To(Equal(target))
			Expect(fired).To(HaveLen(1))
			Expect(fired[0]).To(Equal(tr))
			Expect(tr.From).To(Equal(session.Home))
			Expect(tr.To).To(Equal(target))
			Expect(tr.Seq).To(Equal(1))
		},
		Entry("home", session.Home),
		Entry("free fall", session.FreeFall),
		Entry("linear motion", session.LinearMotion),
		Entry("projectile motion", session.ProjectileMotion),
	)

	It("fires again when the current view is re-selected", func() {
		sel.Select(session.LinearMotion)
		sel.Select(session.LinearMotion)
		Expect(fired).To(HaveLen(2))
		Expect(fired[1].From).To(Equal(session.LinearMotion))
		Expect(fired[1].To).To(Equal(session.LinearMotion))
		Expect(fired[1].Seq).To(Equal(2))
	})

	It("runs every hook exactly once per selection", func() {
		second := 0
		sel.OnTransition(func(session.Transition) { second++ })
		sel.OnTransition(nil)

		sel.Select(session.FreeFall)
		sel.Select(session.Home)
		Expect(fired).To(HaveLen(2))
		Expect(second).To(Equal(2))
	})

	It("panics on an undefined view", func() {
		Expect(func() { sel.Select(session.View(42)) }).To(Panic())
		Expect(sel.Current()).To(Equal(session.Home))
		Expect(fired).To(BeEmpty())
	})
})

var _ = Describe("View", func() {
	It("round-trips names", func() {
		for _, v := range session.Views() {
			parsed, err := session.ParseView(v.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(v))
		}
	})

	It("accepts aliases", func() {
		v, err := session.ParseView("  Free-Fall ")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(session.FreeFall))
	})

	It("rejects unknown names", func() {
		_, err := session.ParseView("orbit")
		Expect(errors.Is(err, session.ErrUnknownView)).To(BeTrue())
	})

	It("decodes from text", func() {
		var v session.View
		Expect(v.UnmarshalText([]byte("projectile"))).To(Succeed())
		Expect(v).To(Equal(session.ProjectileMotion))

		_, err := session.View(9).MarshalText()
		Expect(err).To(MatchError(session.ErrUnknownView))
	})
})
