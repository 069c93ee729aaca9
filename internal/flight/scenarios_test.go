package flight_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
)

var _ = Describe("Step", func() {
	var p flight.Params

	BeforeEach(func() {
		p = flight.DefaultParams()
	})

	Context("full-throttle start from rest", func() {
		It("accelerates along the nose while the gear holds it on the ground", func() {
			s := flight.Reset(p)
			s.Throttle = 1

			next, report := flight.Step(s, flight.Controls{}, 0.1, p, nil)

			Expect(report.Forces.Thrust.Z()).To(BeNumerically("~", -5000, 1e-9))
			Expect(report.Forces.LiftMagnitude).To(BeZero())
			Expect(report.Forces.Drag).To(Equal(geom.Zero))
			Expect(report.Forces.Net.Y()).To(BeNumerically("~", -9810, 1e-9))
			Expect(report.Contact.Grounded).To(BeTrue())

			Expect(next.Velocity.X()).To(BeNumerically("~", 0, 1e-12))
			Expect(next.Velocity.Y()).To(BeNumerically("~", -0.981, 1e-9))
			Expect(next.Velocity.Z()).To(BeNumerically("~", -0.5, 1e-9))
			Expect(next.Position.Y()).To(Equal(p.GroundLevel))
			Expect(next.Position.Z()).To(BeNumerically("~", -0.05, 1e-9))
		})

		It("rests the gear on the following tick", func() {
			s := flight.Reset(p)
			s.Throttle = 1
			s, _ = flight.Step(s, flight.Controls{}, 0.1, p, nil)

			grounded, _, contact := flight.ResolveGround(s, flight.ComputeForces(s, p), 0.1, p)
			Expect(contact.Grounded).To(BeTrue())
			Expect(contact.Bounced).To(BeFalse())
			Expect(grounded.Velocity.Y()).To(BeZero())
		})
	})

	Context("nose high at low speed", func() {
		lift := func(pitch float64) flight.Forces {
			s := flight.Reset(p)
			s.Position = geom.V(0, 200, 0)
			s.Orientation = geom.AxisAngle(geom.UnitX, pitch)
			s.Velocity = s.Forward().Mul(20)
			return flight.ComputeForces(s, p)
		}

		It("stalls above the threshold angle", func() {
			stalled := lift(20 * math.Pi / 180)
			clean := lift(p.StallAngleThresholdRad - 0.01)

			Expect(stalled.Stalled).To(BeTrue())
			Expect(clean.Stalled).To(BeFalse())
			Expect(stalled.LiftMagnitude).To(BeNumerically("<", clean.LiftMagnitude*0.5))

			aoa := 1 + math.Min(20*math.Pi/180*p.AoALiftGain, p.AoALiftBonusMax)
			Expect(stalled.LiftMagnitude).To(BeNumerically("~", 400*p.LiftCoefficient*aoa*p.StallLiftMultiplier, 1e-6))
		})
	})

	Context("climbing into the ceiling", func() {
		It("pins altitude and stops the climb", func() {
			s := flight.Reset(p)
			s.Position = geom.V(0, p.Ceiling()-1, 0)
			s.Velocity = geom.V(0, 50, 0)

			next, _ := flight.Step(s, flight.Controls{}, 0.1, p, nil)

			Expect(next.Position.Y()).To(Equal(p.Ceiling()))
			Expect(next.Velocity.Y()).To(BeZero())
		})

		It("keeps a descent that starts above the ceiling", func() {
			s := flight.Reset(p)
			s.Position = geom.V(0, p.Ceiling()+5, 0)
			s.Velocity = geom.V(0, -3, 0)

			next := flight.Integrate(s, geom.Zero, false, 0.1, p)

			Expect(next.Position.Y()).To(Equal(p.Ceiling()))
			Expect(next.Velocity.Y()).To(BeNumerically("~", -3, 1e-12))
		})
	})

	Context("centered inside an obstacle", func() {
		It("separates along world up without NaN", func() {
			field := flight.Field{{Position: geom.V(0, 100, 0), Radius: 50}}
			s := flight.Reset(p)
			s.Position = geom.V(0, 100, 0)
			s.Velocity = geom.V(0, -10, 0)

			next, hits := flight.ResolveObstacles(s, field, p)

			Expect(hits).To(HaveLen(1))
			Expect(hits[0].Normal).To(Equal(geom.Up))
			Expect(next.Validate()).To(Succeed())
			Expect(next.Position.Sub(field[0].Position).Len()).To(BeNumerically(">=", p.PlaneCollisionRadius+50))
			Expect(next.Velocity.Y()).To(BeNumerically("~", 10*p.MountainCollisionElasticity, 1e-9))
		})
	})

	Context("reset", func() {
		It("replaces any prior state with the canonical start", func() {
			s := flight.Reset(p)
			s.Position = geom.V(123, 456, 789)
			s.Velocity = geom.V(10, 20, 30)
			s.Orientation = geom.AxisAngle(geom.UnitZ, 1.2)
			s.Throttle = 0.7
			s.YawInput = 1

			once, report := flight.Step(s, flight.Controls{Reset: true, Pitch: 1}, 0.05, p, nil)
			twice, _ := flight.Step(once, flight.Controls{Reset: true}, 0.05, p, nil)

			Expect(report.Reset).To(BeTrue())
			Expect(once).To(Equal(flight.Reset(p)))
			Expect(twice).To(Equal(once))
		})
	})

	Context("under adversarial input", func() {
		It("keeps every invariant tick after tick", func() {
			rng := rand.New(rand.NewSource(7))
			field := flight.Field{
				{Position: geom.V(0, 40, -300), Radius: 120},
				{Position: geom.V(60, 80, -420), Radius: 90},
				{Position: geom.V(-200, 10, 100), Radius: 200},
			}
			axis := func() float64 { return float64(rng.Intn(3) - 1) }

			s := flight.Reset(p)
			s.Throttle = 1
			for i := 0; i < 5000; i++ {
				c := flight.Controls{
					ThrottleDelta: axis(),
					Pitch:         axis(),
					Roll:          axis(),
					Yaw:           axis(),
				}
				dt := rng.Float64() * flight.DefaultMaxDt
				s, _ = flight.Step(s, c, dt, p, field)

				Expect(s.Validate()).To(Succeed())
				Expect(s.Orientation.Len()).To(BeNumerically("~", 1, 1e-5))
				Expect(s.Speed()).To(BeNumerically("<=", p.MaxSpeed+1e-9))
				Expect(s.Position.Y()).To(BeNumerically("<=", p.Ceiling()+1e-9))
				Expect(s.Throttle).To(BeNumerically(">=", 0))
				Expect(s.Throttle).To(BeNumerically("<=", 1))
			}
		})
	})
})
