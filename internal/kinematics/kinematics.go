package kinematics

import (
	"iter"
	"math"
)

// Gravity is the standard gravitational acceleration in m/s^2.
const Gravity = 9.81

// Input domains enforced by the interactive controls.
const (
	FallTimeMin = 0.0
	FallTimeMax = 10.0
	AngleMin    = 0
	AngleMax    = 90

	// TrajectoryLen is the number of samples in a non-degenerate trajectory.
	TrajectoryLen = 100
)

// Point is one trajectory sample in metres.
type Point struct {
	T float64
	X float64
	Y float64
}

// ProjectileResult holds the summary values of a launch.
type ProjectileResult struct {
	InitialVelocity float64
	Angle           float64
	MaxHeight       float64
	Range           float64
	FlightTime      float64
}

// FreeFall returns the speed and fallen distance of a body dropped from rest
// after t seconds.
func FreeFall(t float64) (velocity, distance float64) {
	velocity = Gravity * t
	distance = 0.5 * Gravity * t * t
	return velocity, distance
}

// LinearMotion returns x0 + v*t.
func LinearMotion(x0, v, t float64) float64 {
	return x0 + v*t
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FlightTime is the time until a projectile launched from the ground returns
// to launch height.
func FlightTime(v0, angleDeg float64) float64 {
	return 2 * v0 * math.Sin(Radians(angleDeg)) / Gravity
}

// Projectile computes apex height, horizontal range and flight time.
func Projectile(v0, angleDeg float64) ProjectileResult {
	a := Radians(angleDeg)
	sin := math.Sin(a)
	return ProjectileResult{
		InitialVelocity: v0,
		Angle:           angleDeg,
		MaxHeight:       v0 * v0 * sin * sin / (2 * Gravity),
		Range:           v0 * v0 * math.Sin(2*a) / Gravity,
		FlightTime:      FlightTime(v0, angleDeg),
	}
}

// Trajectory yields the projectile path sampled at TrajectoryLen evenly
// spaced instants over the flight time, endpoints included. When the flight
// time is zero (flat launch or zero speed) it yields a single point at the
// origin.
func Trajectory(v0, angleDeg float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		a := Radians(angleDeg)
		vx, vy := v0*math.Cos(a), v0*math.Sin(a)
		tEnd := FlightTime(v0, angleDeg)
		if tEnd == 0 {
			yield(Point{})
			return
		}
		step := tEnd / float64(TrajectoryLen-1)
		for i := 0; i < TrajectoryLen; i++ {
			t := float64(i) * step
			if i == TrajectoryLen-1 {
				t = tEnd
			}
			p := Point{T: t, X: vx * t, Y: vy*t - 0.5*Gravity*t*t}
			if !yield(p) {
				return
			}
		}
	}
}

// TrajectorySamples collects Trajectory into a slice.
func TrajectorySamples(v0, angleDeg float64) []Point {
	pts := make([]Point, 0, TrajectoryLen)
	for p := range Trajectory(v0, angleDeg) {
		pts = append(pts, p)
	}
	return pts
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
