package vehicle

import "fmt"

// Profile holds the geometry constants needed to place a car on screen:
// the horizontal offsets from the center of gravity to each axle.
type Profile struct {
	Name        string
	FrontOffset float64 // L1, CG to front axle [m]
	RearOffset  float64 // L2, CG to rear axle [m]
}

// Builtin profiles match the vehicles shipped with the half-car simulator.
func Builtin() []Profile {
	return []Profile{
		{Name: "GR86", FrontOffset: 1.28, RearOffset: 1.29},
		{Name: "LexusLS", FrontOffset: 1.55, RearOffset: 1.57},
		{Name: "Samber", FrontOffset: 0.95, RearOffset: 0.95},
	}
}

// Registry is a fixed, name-keyed set of vehicle profiles. Profiles are
// registered once at startup; there is no runtime mutation beyond Add.
type Registry struct {
	order  []string
	byName map[string]Profile
}

func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Profile)}
	for _, p := range Builtin() {
		r.order = append(r.order, p.Name)
		r.byName[p.Name] = p
	}
	return r
}

func (r *Registry) Add(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("vehicle: profile name must not be empty")
	}
	if p.FrontOffset <= 0 || p.RearOffset <= 0 {
		return fmt.Errorf("vehicle %s: wheelbase offsets must be positive", p.Name)
	}
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("vehicle %s: already registered", p.Name)
	}
	r.order = append(r.order, p.Name)
	r.byName[p.Name] = p
	return nil
}

func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.byName[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown vehicle: %s", name)
	}
	return p, nil
}

// Names returns profile names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
