package halfcar

// State is the half-car state vector:
// [ys, theta, yu1, yu2, dys, dtheta, dyu1, dyu2].
type State [8]float64

// Model holds the assembled matrices of M q" + C q' + K q = F for a
// parameter set. M is diagonal, so only its diagonal is stored.
type Model struct {
	p Params
	m [4]float64
	c [4][4]float64
	k [4][4]float64
}

func NewModel(p Params) *Model {
	l1, l2 := p.FrontOffset, p.RearOffset
	ks1, ks2 := p.FrontSpring, p.RearSpring
	cs1, cs2 := p.FrontDamper, p.RearDamper

	m := &Model{p: p}
	m.m = [4]float64{p.SprungMass, p.PitchInertia, p.FrontUnsprungMass, p.RearUnsprungMass}

	m.k = [4][4]float64{
		{ks1 + ks2, -ks1*l1 + ks2*l2, -ks1, -ks2},
		{-ks1*l1 + ks2*l2, ks1*l1*l1 + ks2*l2*l2, ks1 * l1, -ks2 * l2},
		{-ks1, ks1 * l1, ks1 + p.FrontTire, 0},
		{-ks2, -ks2 * l2, 0, ks2 + p.RearTire},
	}
	m.c = [4][4]float64{
		{cs1 + cs2, -cs1*l1 + cs2*l2, -cs1, -cs2},
		{-cs1*l1 + cs2*l2, cs1*l1*l1 + cs2*l2*l2, cs1 * l1, -cs2 * l2},
		{-cs1, cs1 * l1, cs1, 0},
		{-cs2, -cs2 * l2, 0, cs2},
	}
	return m
}

// Derivative evaluates dx/dt given the longitudinal acceleration, which
// enters as a pitch moment ms*a*h about the CG.
func (m *Model) Derivative(x State, accel float64) State {
	q := [4]float64{x[0], x[1], x[2], x[3]}
	dq := [4]float64{x[4], x[5], x[6], x[7]}
	f := [4]float64{0, m.p.SprungMass * accel * m.p.CGHeight, 0, 0}

	var out State
	for i := 0; i < 4; i++ {
		out[i] = dq[i]
		sum := f[i]
		for j := 0; j < 4; j++ {
			sum -= m.c[i][j]*dq[j] + m.k[i][j]*q[j]
		}
		out[i+4] = sum / m.m[i]
	}
	return out
}

// Step advances the state by one RK4 step.
func (m *Model) Step(x State, dt, accel float64) State {
	k1 := m.Derivative(x, accel)
	k2 := m.Derivative(axpy(x, dt*0.5, k1), accel)
	k3 := m.Derivative(axpy(x, dt*0.5, k2), accel)
	k4 := m.Derivative(axpy(x, dt, k3), accel)

	dt6 := dt / 6.0
	var out State
	for i := range out {
		out[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func axpy(x State, a float64, y State) State {
	var out State
	for i := range out {
		out[i] = x[i] + a*y[i]
	}
	return out
}
