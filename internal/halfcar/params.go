package halfcar

import "fmt"

// Params are the physical constants of the half-car ride model: a sprung
// mass with pitch inertia riding on two unsprung masses through
// spring/damper pairs, with tire stiffness below each wheel.
type Params struct {
	Name string

	SprungMass        float64 // ms [kg]
	PitchInertia      float64 // Is [kg*m^2]
	FrontUnsprungMass float64 // mu1 [kg]
	RearUnsprungMass  float64 // mu2 [kg]

	FrontSpring float64 // ks1 [N/m]
	RearSpring  float64 // ks2 [N/m]
	FrontTire   float64 // kt1 [N/m]
	RearTire    float64 // kt2 [N/m]
	FrontDamper float64 // cs1 [N*s/m]
	RearDamper  float64 // cs2 [N*s/m]

	FrontOffset float64 // l1, CG to front axle [m]
	RearOffset  float64 // l2, CG to rear axle [m]
	CGHeight    float64 // h [m]
}

func GR86() Params {
	return Params{
		Name:       "GR86",
		SprungMass: 1150.0, PitchInertia: 1400.0,
		FrontUnsprungMass: 45.0, RearUnsprungMass: 45.0,
		FrontSpring: 30000.0, RearSpring: 35000.0,
		FrontTire: 200000.0, RearTire: 200000.0,
		FrontDamper: 2500.0, RearDamper: 2800.0,
		FrontOffset: 1.28, RearOffset: 1.29, CGHeight: 0.45,
	}
}

func LexusLS() Params {
	return Params{
		Name:       "LexusLS",
		SprungMass: 2000.0, PitchInertia: 3500.0,
		FrontUnsprungMass: 65.0, RearUnsprungMass: 65.0,
		FrontSpring: 20000.0, RearSpring: 22000.0,
		FrontTire: 220000.0, RearTire: 220000.0,
		FrontDamper: 3500.0, RearDamper: 3800.0,
		FrontOffset: 1.55, RearOffset: 1.57, CGHeight: 0.55,
	}
}

func Samber() Params {
	return Params{
		Name:       "Samber",
		SprungMass: 650.0, PitchInertia: 750.0,
		FrontUnsprungMass: 35.0, RearUnsprungMass: 35.0,
		FrontSpring: 15000.0, RearSpring: 25000.0,
		FrontTire: 160000.0, RearTire: 160000.0,
		FrontDamper: 1200.0, RearDamper: 1500.0,
		FrontOffset: 0.95, RearOffset: 0.95, CGHeight: 0.70,
	}
}

func All() []Params {
	return []Params{GR86(), LexusLS(), Samber()}
}

func ByName(name string) (Params, error) {
	for _, p := range All() {
		if p.Name == name {
			return p, nil
		}
	}
	return Params{}, fmt.Errorf("halfcar: unknown vehicle: %s", name)
}
