package halfcar

import (
	"math"
	"testing"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"GR86", "LexusLS", "Samber"} {
		p, err := ByName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if p.Name != name {
			t.Errorf("expected name %s, got %s", name, p.Name)
		}
		if p.SprungMass <= 0 || p.PitchInertia <= 0 {
			t.Errorf("%s: non-positive inertial parameters", name)
		}
	}

	if _, err := ByName("Miata"); err == nil {
		t.Error("expected error for unknown vehicle")
	}
}

func TestModelMatricesSymmetric(t *testing.T) {
	m := NewModel(GR86())
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m.k[i][j]-m.k[j][i]) > 1e-9 {
				t.Errorf("stiffness matrix not symmetric at (%d,%d)", i, j)
			}
			if math.Abs(m.c[i][j]-m.c[j][i]) > 1e-9 {
				t.Errorf("damping matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestDerivativeAtRest(t *testing.T) {
	m := NewModel(GR86())

	// At rest with no forcing nothing moves.
	d := m.Derivative(State{}, 0)
	for i, v := range d {
		if v != 0 {
			t.Errorf("expected zero derivative at rest, got %f at index %d", v, i)
		}
	}

	// Forward acceleration pitches the body nose-up (positive moment).
	d = m.Derivative(State{}, 3.3)
	if d[5] <= 0 {
		t.Errorf("expected positive pitch acceleration under throttle, got %f", d[5])
	}
}

func TestStepDecays(t *testing.T) {
	m := NewModel(GR86())

	// An unforced initial heave displacement must decay under damping.
	x := State{0.05}
	for i := 0; i < 2000; i++ {
		x = m.Step(x, 0.001, 0)
	}
	if math.Abs(x[0]) >= 0.05 {
		t.Errorf("heave did not decay: %f", x[0])
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("state diverged at index %d: %f", i, v)
		}
	}
}
