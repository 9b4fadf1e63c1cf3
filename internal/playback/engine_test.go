package playback

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rideview/internal/telemetry"
	"github.com/san-kum/rideview/internal/vehicle"
)

func testOptions() Options {
	return Options{
		DisplayPeriod:    0.002,
		SimStep:          0.001,
		GroundOffset:     0.5,
		WheelRadius:      0.25,
		CameraHalfWidth:  5.0,
		CameraYMin:       -1.0,
		CameraYMax:       3.0,
		BrakingThreshold: -1.0,
	}
}

func rampSeries(n int) *telemetry.Series {
	rows := make([]telemetry.Row, n)
	for i := range rows {
		rows[i] = telemetry.Row{
			Time:  float64(i) * 0.001,
			X:     float64(i) * 0.01,
			Speed: float64(i) * 0.1,
			Pitch: 0.001 * float64(i%5),
		}
	}
	return telemetry.NewSeries(rows)
}

func newTestEngine(t *testing.T, opts Options, s *telemetry.Series) *Engine {
	t.Helper()
	e, err := New(opts, vehicle.NewRegistry(), func(string) (*telemetry.Series, error) {
		return s, nil
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	e.Reset(vehicle.Profile{Name: "Test", FrontOffset: 1.2, RearOffset: 1.3}, s)
	return e
}

func TestStride(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		step   float64
		want   int
	}{
		{"60 fps rounds up", 1.0 / 60.0, 0.001, 17},
		{"30 fps", 1.0 / 30.0, 0.001, 33},
		{"exact multiple", 0.02, 0.01, 2},
		{"equal rates", 0.001, 0.001, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.DisplayPeriod = tt.period
			opts.SimStep = tt.step
			e, err := New(opts, vehicle.NewRegistry(), nil)
			if err != nil {
				t.Fatalf("new failed: %v", err)
			}
			if e.Stride() != tt.want {
				t.Errorf("expected stride %d, got %d", tt.want, e.Stride())
			}
		})
	}
}

func TestStrideConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		step   float64
	}{
		{"display faster than sampling", 0.0004, 0.001},
		{"zero period", 0, 0.001},
		{"negative step", 0.02, -0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.DisplayPeriod = tt.period
			opts.SimStep = tt.step
			if _, err := New(opts, vehicle.NewRegistry(), nil); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}
}

func TestTickGeometry(t *testing.T) {
	rows := []telemetry.Row{
		{Time: 0.0, X: 9.9},
		{Time: 1.0, X: 10.0},
	}
	opts := testOptions()
	opts.DisplayPeriod = 0.001 // stride 1
	e := newTestEngine(t, opts, telemetry.NewSeries(rows))

	e.Tick() // row 0
	f := e.Tick()

	// Zero pitch collapses front and rear body heights to the ground offset.
	if f.Body.A.X != 8.7 || f.Body.A.Y != 0.5 {
		t.Errorf("unexpected rear body point: %+v", f.Body.A)
	}
	if f.Body.B.X != 11.2 || f.Body.B.Y != 0.5 {
		t.Errorf("unexpected front body point: %+v", f.Body.B)
	}
	if f.FrontStrut.A.X != 11.2 || f.FrontStrut.A.Y != 0.0 || f.FrontStrut.B.Y != 0.5 {
		t.Errorf("unexpected front strut: %+v", f.FrontStrut)
	}
	if f.RearStrut.A.X != 8.7 {
		t.Errorf("unexpected rear strut: %+v", f.RearStrut)
	}
	if f.FrontWheel != (Point{11.2, 0.5}) || f.RearWheel != (Point{8.7, 0.5}) {
		t.Errorf("unexpected wheel centers: %+v, %+v", f.FrontWheel, f.RearWheel)
	}
	if f.Time != 1.0 {
		t.Errorf("expected time 1.0, got %f", f.Time)
	}
}

func TestCameraTracksPosition(t *testing.T) {
	s := rampSeries(20)
	e := newTestEngine(t, testOptions(), s)

	for i := 0; i < 8; i++ {
		f := e.Tick()
		if w := f.Camera.Width(); math.Abs(w-10.0) > 1e-12 {
			t.Fatalf("tick %d: expected camera width 10, got %f", i, w)
		}
		center := (f.Camera.XMin + f.Camera.XMax) / 2
		row, _ := s.Row(i * e.Stride())
		if math.Abs(center-row.X) > 1e-12 {
			t.Fatalf("tick %d: camera center %f does not track x %f", i, center, row.X)
		}
		if f.Camera.YMin != -1.0 || f.Camera.YMax != 3.0 {
			t.Fatalf("tick %d: vertical range changed: %+v", i, f.Camera)
		}
	}
}

func TestTickHoldsOnLastRow(t *testing.T) {
	e := newTestEngine(t, testOptions(), rampSeries(5)) // stride 2, rows 0..4

	var last Frame
	for i := 0; i < 3; i++ {
		last = e.Tick() // rows 0, 2, 4
	}
	if last.Time != 0.004 {
		t.Fatalf("expected final row at t=0.004, got %f", last.Time)
	}

	for i := 0; i < 5; i++ {
		f := e.Tick()
		if f.Empty || f.Done {
			t.Fatalf("hold tick %d: unexpected empty/done frame", i)
		}
		if f != last {
			t.Fatalf("hold tick %d: frame changed: %+v", i, f)
		}
	}
}

func TestTickLoopPolicy(t *testing.T) {
	opts := testOptions()
	opts.Policy = Loop
	e := newTestEngine(t, opts, rampSeries(5))

	times := make([]float64, 0, 6)
	for i := 0; i < 6; i++ {
		times = append(times, e.Tick().Time)
	}
	want := []float64{0, 0.002, 0.004, 0, 0.002, 0.004}
	for i := range want {
		if math.Abs(times[i]-want[i]) > 1e-12 {
			t.Fatalf("expected times %v, got %v", want, times)
		}
	}
}

func TestTickStopPolicy(t *testing.T) {
	opts := testOptions()
	opts.Policy = Stop
	e := newTestEngine(t, opts, rampSeries(5))

	for i := 0; i < 3; i++ {
		if f := e.Tick(); f.Done {
			t.Fatalf("tick %d: done before overrun", i)
		}
	}
	f := e.Tick()
	if !f.Done {
		t.Fatal("expected done frame after overrun")
	}
	if f.Time != 0.004 {
		t.Errorf("stop should hold the final row, got t=%f", f.Time)
	}
}

func TestTickEmptySeries(t *testing.T) {
	e := newTestEngine(t, testOptions(), telemetry.NewSeries(nil))

	f := e.Tick()
	if !f.Empty {
		t.Fatal("expected empty frame for zero-length series")
	}
	if f.Summary() != "" {
		t.Errorf("expected blank summary, got %q", f.Summary())
	}
}

func TestBrakingClassification(t *testing.T) {
	// meanDt = 0.001; speed drop of 0.01 per row is -10 m/s^2.
	rows := []telemetry.Row{
		{Time: 0.000, Speed: 10.00},
		{Time: 0.001, Speed: 9.99},
		{Time: 0.002, Speed: 9.98},
	}
	opts := testOptions()
	opts.DisplayPeriod = 0.001
	e := newTestEngine(t, opts, telemetry.NewSeries(rows))

	if f := e.Tick(); f.Braking {
		t.Error("row 0 must never classify as braking")
	}
	if f := e.Tick(); !f.Braking {
		t.Error("expected braking at row 1")
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want OverrunPolicy
		ok   bool
	}{
		{"", Hold, true},
		{"hold", Hold, true},
		{"loop", Loop, true},
		{"stop", Stop, true},
		{"bounce", Hold, false},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParsePolicy(%q): expected error", tt.in)
		}
	}
}

func TestSwitchVehicleResets(t *testing.T) {
	seriesA := rampSeries(10)
	rowsB := []telemetry.Row{
		{Time: 0.0, X: 100.0},
		{Time: 0.001, X: 100.5},
	}
	seriesB := telemetry.NewSeries(rowsB)

	reg := vehicle.NewRegistry()
	loader := func(name string) (*telemetry.Series, error) {
		if name == "Samber" {
			return seriesB, nil
		}
		return seriesA, nil
	}
	e, err := New(testOptions(), reg, loader)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := e.SwitchVehicle("GR86"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	e.Tick()
	e.Tick()

	if err := e.SwitchVehicle("Samber"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	f := e.Tick()
	if f.Vehicle != "Samber" {
		t.Errorf("expected Samber frame, got %s", f.Vehicle)
	}
	if f.Time != 0.0 || f.Camera.XMin != 95.0 {
		t.Errorf("expected row 0 of the new series, got %+v", f)
	}
}

func TestSwitchVehicleFailureAtomic(t *testing.T) {
	s := rampSeries(10)
	loadErr := errors.New("no such file")
	loader := func(name string) (*telemetry.Series, error) {
		if name == "LexusLS" {
			return nil, loadErr
		}
		return s, nil
	}

	run := func(failMidway bool) Frame {
		e, err := New(testOptions(), vehicle.NewRegistry(), loader)
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		if err := e.SwitchVehicle("GR86"); err != nil {
			t.Fatalf("switch failed: %v", err)
		}
		e.Tick()
		e.Tick()
		if failMidway {
			err := e.SwitchVehicle("LexusLS")
			if !errors.Is(err, loadErr) {
				t.Fatalf("expected load error, got %v", err)
			}
		}
		return e.Tick()
	}

	want := run(false)
	got := run(true)
	if got != want {
		t.Errorf("failed switch disturbed playback: got %+v, want %+v", got, want)
	}
}

func TestSwitchVehicleUnknown(t *testing.T) {
	e, err := New(testOptions(), vehicle.NewRegistry(), func(string) (*telemetry.Series, error) {
		t.Fatal("loader must not run for unknown vehicles")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := e.SwitchVehicle("Miata"); err == nil {
		t.Error("expected error for unknown vehicle")
	}
}
