package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestPairAccelNewtonThirdLaw(t *testing.T) {
	posB := r3.Vec{X: -3, Y: 2, Z: 1}
	posC := r3.Vec{X: 5, Y: -1, Z: 4}
	massB, massC := 2.5, 7.0
	g, soft := 1.0, 0.01

	// F = m*a on each side; the forces must be equal and opposite.
	forceB := r3.Scale(massB, PairAccel(posB, posC, massC, g, soft))
	forceC := r3.Scale(massC, PairAccel(posC, posB, massB, g, soft))

	sum := r3.Add(forceB, forceC)
	if r3.Norm(sum) > 1e-9 {
		t.Errorf("forces not equal and opposite: B=%v C=%v", forceB, forceC)
	}
}

func TestPairAccelTwoBodyScenario(t *testing.T) {
	// Masses 1 and 1 at (-10,0,0) and (10,0,0), G=1, no softening: each
	// feels a = 1/400 toward the other.
	left := r3.Vec{X: -10}
	right := r3.Vec{X: 10}

	aLeft := PairAccel(left, right, 1, 1, 0)
	aRight := PairAccel(right, left, 1, 1, 0)

	if aLeft.X <= 0 || aRight.X >= 0 {
		t.Fatalf("bodies not accelerating toward each other: left=%v right=%v", aLeft, aRight)
	}
	if math.Abs(aLeft.X-1.0/400) > tol {
		t.Errorf("left accel = %v, want %v", aLeft.X, 1.0/400)
	}
	if math.Abs(aLeft.X+aRight.X) > tol {
		t.Errorf("accelerations not equal magnitude: %v vs %v", aLeft.X, aRight.X)
	}

	// One dt=1 step: velocities move toward each other with equal magnitude.
	_, velLeft := Integrate(left, r3.Vec{}, aLeft, 1)
	_, velRight := Integrate(right, r3.Vec{}, aRight, 1)
	if velLeft.X <= 0 || velRight.X >= 0 {
		t.Errorf("velocities after one step: left=%v right=%v", velLeft.X, velRight.X)
	}
	if math.Abs(velLeft.X+velRight.X) > tol {
		t.Errorf("velocity magnitudes differ: %v vs %v", velLeft.X, velRight.X)
	}
}

func TestPairAccelSofteningBoundsForce(t *testing.T) {
	pos := r3.Vec{}
	src := r3.Vec{X: MinDistance * 2}

	soft := PairAccel(pos, src, 1e6, 1, 100)
	hard := PairAccel(pos, src, 1e6, 1, 0)

	if r3.Norm(soft) >= r3.Norm(hard) {
		t.Errorf("softened accel %v not below unsoftened %v", r3.Norm(soft), r3.Norm(hard))
	}
	// With softening s^2 the magnitude can never exceed G*m/s^2.
	if r3.Norm(soft) > 1e6/100+tol {
		t.Errorf("softened accel %v exceeds G*m/s^2 bound", r3.Norm(soft))
	}
}

func TestPairAccelDegenerateInputs(t *testing.T) {
	origin := r3.Vec{}

	if got := PairAccel(origin, origin, 1, 1, 0); got != (r3.Vec{}) {
		t.Errorf("coincident bodies: got %v, want zero", got)
	}
	if got := PairAccel(origin, r3.Vec{X: 1}, 0, 1, 0); got != (r3.Vec{}) {
		t.Errorf("massless source: got %v, want zero", got)
	}
	if got := PairAccel(origin, r3.Vec{X: 1}, -5, 1, 0); got != (r3.Vec{}) {
		t.Errorf("negative mass source: got %v, want zero", got)
	}
	if got := PairAccel(origin, r3.Vec{X: math.NaN()}, 1, 1, 0); got != (r3.Vec{}) {
		t.Errorf("non-finite source position: got %v, want zero", got)
	}
	if got := PairAccel(origin, r3.Vec{X: 1}, math.Inf(1), 1, 0); got != (r3.Vec{}) {
		t.Errorf("infinite mass: got %v, want zero", got)
	}
}

func TestDamp(t *testing.T) {
	vel := r3.Vec{X: 10, Y: -4, Z: 2}

	if got := Damp(vel, 0.1, 0); got != vel {
		t.Errorf("dt=0 damping changed velocity: %v", got)
	}

	got := Damp(vel, 0.5, 1)
	want := r3.Scale(0.5, vel)
	if r3.Norm(r3.Sub(got, want)) > tol {
		t.Errorf("Damp = %v, want %v", got, want)
	}

	// Huge dt floors the factor at zero instead of reversing the body.
	if got := Damp(vel, 0.5, 100); got != (r3.Vec{}) {
		t.Errorf("overdamped velocity = %v, want zero", got)
	}
}

func TestIntegrateSemiImplicit(t *testing.T) {
	pos := r3.Vec{X: 1}
	vel := r3.Vec{X: 2}
	accel := r3.Vec{X: 3}

	gotPos, gotVel := Integrate(pos, vel, accel, 0.5)

	// Velocity updates first, then position uses the new velocity.
	wantVel := 2 + 3*0.5
	wantPos := 1 + wantVel*0.5
	if math.Abs(gotVel.X-wantVel) > tol || math.Abs(gotPos.X-wantPos) > tol {
		t.Errorf("Integrate = pos %v vel %v, want pos %v vel %v", gotPos.X, gotVel.X, wantPos, wantVel)
	}
}

func TestContainClampsToBoundary(t *testing.T) {
	pos := r3.Vec{X: 300, Y: 400} // norm 500
	vel := r3.Vec{X: 8, Y: -6}    // speed 10

	gotPos, gotVel, clamped := Contain(pos, vel, 250)
	if !clamped {
		t.Fatal("body past boundary not clamped")
	}
	if math.Abs(r3.Norm(gotPos)-250) > 1e-9 {
		t.Errorf("clamped position norm = %v, want 250", r3.Norm(gotPos))
	}
	if math.Abs(r3.Norm(gotVel)-5) > 1e-9 {
		t.Errorf("clamped speed = %v, want half of 10", r3.Norm(gotVel))
	}

	// Inside the boundary nothing changes.
	gotPos, gotVel, clamped = Contain(pos, vel, 1e6)
	if clamped || gotPos != pos || gotVel != vel {
		t.Errorf("in-bounds body modified: pos=%v vel=%v clamped=%v", gotPos, gotVel, clamped)
	}
}

func TestSanitize(t *testing.T) {
	v := Sanitize(r3.Vec{X: math.NaN(), Y: math.Inf(1), Z: 3})
	if v.X != 0 || v.Y != 0 || v.Z != 3 {
		t.Errorf("Sanitize = %v, want {0 0 3}", v)
	}
}
