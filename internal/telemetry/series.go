package telemetry

import "math"

// Row is one timestamped sample of the half-car simulation output.
type Row struct {
	Time          float64 // [s]
	X             float64 // longitudinal position x_abs [m]
	BodyHeight    float64 // sprung mass heave ys [m]
	Pitch         float64 // body pitch theta [rad]
	FrontUnsprung float64 // front wheel assembly height yu1 [m]
	RearUnsprung  float64 // rear wheel assembly height yu2 [m]
	Speed         float64 // v_abs [m/s]
}

// ChartBounds are the fixed axes of the pitch strip chart, computed once
// per series. The pitch range carries a one degree margin on each side.
type ChartBounds struct {
	TimeMin     float64
	TimeMax     float64
	PitchDegMin float64
	PitchDegMax float64
}

// Series is one loaded simulation record plus channels derived from it.
// A series is immutable after construction and is replaced wholesale when
// the active vehicle changes.
type Series struct {
	rows     []Row
	accel    []float64
	pitchDeg []float64
	bounds   ChartBounds
}

// NewSeries derives the acceleration channel and chart bounds from rows.
//
// Acceleration uses a single series-wide mean timestep rather than
// per-step deltas: accel[i] = (v[i] - v[i-1]) / meanDt, with accel[0]
// left at zero.
func NewSeries(rows []Row) *Series {
	s := &Series{
		rows:     rows,
		accel:    make([]float64, len(rows)),
		pitchDeg: make([]float64, len(rows)),
	}
	if len(rows) == 0 {
		return s
	}

	n := len(rows)
	meanDt := 0.0
	if n > 1 {
		meanDt = (rows[n-1].Time - rows[0].Time) / float64(n-1)
	}
	for i := 1; i < n && meanDt > 0; i++ {
		s.accel[i] = (rows[i].Speed - rows[i-1].Speed) / meanDt
	}

	degMin, degMax := math.Inf(1), math.Inf(-1)
	for i, r := range rows {
		deg := r.Pitch * 180 / math.Pi
		s.pitchDeg[i] = deg
		degMin = math.Min(degMin, deg)
		degMax = math.Max(degMax, deg)
	}
	s.bounds = ChartBounds{
		TimeMin:     rows[0].Time,
		TimeMax:     rows[n-1].Time,
		PitchDegMin: degMin - 1,
		PitchDegMax: degMax + 1,
	}
	return s
}

func (s *Series) Len() int {
	return len(s.rows)
}

func (s *Series) Row(i int) (Row, error) {
	if i < 0 || i >= len(s.rows) {
		return Row{}, ErrIndexOutOfRange
	}
	return s.rows[i], nil
}

func (s *Series) Acceleration(i int) (float64, error) {
	if i < 0 || i >= len(s.accel) {
		return 0, ErrIndexOutOfRange
	}
	return s.accel[i], nil
}

func (s *Series) Bounds() ChartBounds {
	return s.bounds
}

// PitchDeg returns the full pitch curve in degrees. The slice is shared;
// callers must not modify it.
func (s *Series) PitchDeg() []float64 {
	return s.pitchDeg
}
