package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

const dt = 0.001

func labParams() physics.Params {
	return physics.Params{
		Mass:          0.045,
		AxleRadius:    0.0075,
		Inertia:       5.25e-5,
		InitialHeight: 0.24,
		Gravity:       9.81,
	}
}

func run(w *physics.Wheel, steps int) {
	for i := 0; i < steps; i++ {
		w.Step(dt)
	}
}

var _ = Describe("Wheel", func() {
	var w *physics.Wheel

	BeforeEach(func() {
		w = physics.NewWheel(labParams())
	})

	Describe("a fresh wheel", func() {
		It("is paused at rest at the top", func() {
			Expect(w.Running()).To(BeFalse())
			Expect(w.State()).To(Equal(physics.State{}))
			Expect(w.HistoryLen()).To(BeZero())
			_, ok := w.TimeToBottom()
			Expect(ok).To(BeFalse())
		})

		It("has zero energies", func() {
			ep, ekt, ekr := w.Energies()
			Expect(ep).To(BeZero())
			Expect(ekt).To(BeZero())
			Expect(ekr).To(BeZero())
		})
	})

	Describe("Step", func() {
		It("is a fixed point while paused", func() {
			before := w.State()
			Expect(w.Step(dt)).To(BeFalse())
			Expect(w.State()).To(Equal(before))
			Expect(w.HistoryLen()).To(BeZero())
		})

		DescribeTable("ignores unusable timesteps",
			func(step float64) {
				w.Start()
				Expect(w.Step(step)).To(BeFalse())
				Expect(w.State()).To(Equal(physics.State{}))
				Expect(w.HistoryLen()).To(BeZero())
			},
			Entry("zero", 0.0),
			Entry("negative", -dt),
			Entry("NaN", math.NaN()),
			Entry("+Inf", math.Inf(1)),
		)

		It("updates velocity before height", func() {
			w.Start()
			Expect(w.Step(dt)).To(BeTrue())

			a, _ := labParams().Acceleration()
			s := w.State()
			Expect(s.Velocity).To(BeNumerically("~", a*dt, 1e-15))
			Expect(s.Height).To(BeNumerically("~", a*dt*dt, 1e-15))
			Expect(s.AngularVelocity).To(BeNumerically("~", s.Velocity/0.0075, 1e-12))
			Expect(s.Time).To(BeNumerically("~", dt, 1e-15))
		})

		It("appends exactly one record per accepted step", func() {
			w.Start()
			run(w, 10)
			w.Pause()
			run(w, 5)

			Expect(w.HistoryLen()).To(Equal(10))
			snap := w.History()
			Expect(snap.Aligned()).To(BeTrue())
			Expect(snap.Len()).To(Equal(10))
		})

		It("records energies consistent with the state", func() {
			w.Start()
			run(w, 100)

			last, ok := w.Last()
			Expect(ok).To(BeTrue())
			ep, ekt, ekr := w.Energies()
			Expect(last.Potential).To(Equal(ep))
			Expect(last.KineticTrans).To(Equal(ekt))
			Expect(last.KineticRot).To(Equal(ekr))

			p := labParams()
			s := w.State()
			Expect(ep).To(BeNumerically("~", p.Mass*p.Gravity*s.Height, 1e-15))
		})

		It("keeps height inside the travel range over many bounces", func() {
			w.Start()
			for i := 0; i < 20000; i++ {
				w.Step(dt)
				s := w.State()
				Expect(s.Height).To(BeNumerically(">=", 0))
				Expect(s.Height).To(BeNumerically("<=", 0.24))
				Expect(math.IsNaN(s.Velocity) || math.IsInf(s.Velocity, 0)).To(BeFalse())
			}
		})

		It("clamps and reverses velocity within the step that passes the bottom", func() {
			w.Start()
			for w.State().Velocity >= 0 {
				Expect(w.Step(dt)).To(BeTrue())
			}
			s := w.State()
			Expect(s.Height).To(Equal(0.24))
			Expect(s.Velocity).To(BeNumerically("<", 0))
		})

		It("conserves Ek - Ep up to the step error", func() {
			w.Start()
			run(w, 900)
			last, _ := w.Last()
			Expect(last.Kinetic() - last.Potential).To(BeNumerically("~", 0, 2e-3*last.Potential))
		})
	})

	Describe("time to bottom", func() {
		It("matches the closed form within one step", func() {
			p := labParams()
			a, _ := p.Acceleration()
			want := math.Sqrt(2 * p.InitialHeight / a)
			Expect(want).To(BeNumerically("~", 1.031390872, 1e-8))

			w.Start()
			run(w, 1100)

			got, ok := w.TimeToBottom()
			Expect(ok).To(BeTrue())
			Expect(got).To(BeNumerically("~", want, dt))
		})

		It("is set once per run and never altered", func() {
			w.Start()
			run(w, 1100)
			first, ok := w.TimeToBottom()
			Expect(ok).To(BeTrue())

			run(w, 5000)
			again, _ := w.TimeToBottom()
			Expect(again).To(Equal(first))
		})

		It("is cleared by reset", func() {
			w.Start()
			run(w, 1100)
			w.Reset(false)
			_, ok := w.TimeToBottom()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		BeforeEach(func() {
			w.Start()
			run(w, 50)
		})

		It("returns to rest and pauses", func() {
			w.Reset(true)
			Expect(w.Running()).To(BeFalse())
			Expect(w.State()).To(Equal(physics.State{}))
			ep, ekt, ekr := w.Energies()
			Expect(ep + ekt + ekr).To(BeZero())
		})

		It("empties history when asked", func() {
			w.Reset(true)
			Expect(w.HistoryLen()).To(BeZero())
		})

		It("keeps history otherwise", func() {
			w.Reset(false)
			Expect(w.HistoryLen()).To(Equal(50))
		})
	})

	Describe("parameters", func() {
		It("clamps, applies and resets", func() {
			w.Start()
			run(w, 10)

			applied, err := w.SetParam(physics.ParamMass, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(Equal(1.0))
			Expect(w.Params().Mass).To(Equal(1.0))
			Expect(w.Running()).To(BeFalse())
			Expect(w.HistoryLen()).To(BeZero())
		})

		It("rejects unknown names", func() {
			_, err := w.SetParam("friction", 1)
			Expect(err).To(MatchError(dynamo.ErrUnknownParam))
		})

		It("reports every parameter", func() {
			params := w.GetParams()
			Expect(params).To(HaveLen(len(physics.ParamNames())))
			Expect(params).To(HaveKeyWithValue(physics.ParamInitialHeight, 0.24))
		})

		It("resets when the floor mode changes", func() {
			w.Start()
			run(w, 10)
			w.SetFloor(physics.FloorAbsorb)
			Expect(w.Floor()).To(Equal(physics.FloorAbsorb))
			Expect(w.HistoryLen()).To(BeZero())
		})
	})

	Describe("floor modes", func() {
		climb := func(m physics.FloorMode) *physics.Wheel {
			w := physics.NewWheel(labParams(), physics.WithFloor(m))
			w.Start()
			// bottom at ~1.03 s, back at the top at ~2.06 s
			run(w, 2300)
			return w
		}

		It("stays inside the range with either mode", func() {
			for _, m := range []physics.FloorMode{physics.FloorReflect, physics.FloorAbsorb} {
				w := climb(m)
				Expect(w.State().Height).To(BeNumerically(">=", 0))
				Expect(w.State().Height).To(BeNumerically("<=", 0.24))
			}
		})
	})

	It("is deterministic", func() {
		a := physics.NewWheel(labParams())
		b := physics.NewWheel(labParams())
		a.Start()
		b.Start()
		run(a, 3000)
		run(b, 3000)

		Expect(a.State()).To(Equal(b.State()))
		Expect(a.History()).To(Equal(b.History()))
	})

	It("honours a bounded history", func() {
		w := physics.NewWheel(labParams(), physics.WithHistoryCapacity(100))
		w.Start()
		run(w, 500)
		Expect(w.HistoryLen()).To(Equal(100))
		last, _ := w.Last()
		Expect(last.Time).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("copies a recent window", func() {
		w.Start()
		run(w, 40)
		tail := w.Recent(10)
		Expect(tail.Len()).To(Equal(10))
		Expect(tail.Time[9]).To(BeNumerically("~", 0.040, 1e-9))
		Expect(tail.Time[0]).To(BeNumerically("~", 0.031, 1e-9))
		Expect(w.Recent(0).Len()).To(Equal(40))
	})
})
