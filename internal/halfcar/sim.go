package halfcar

import (
	"context"

	"github.com/san-kum/rideview/internal/telemetry"
)

// DriveCycle describes the open-loop longitudinal maneuver used to excite
// the suspension: constant acceleration to the target speed, then a hard
// stop.
type DriveCycle struct {
	TargetSpeed float64 // [m/s]
	Accel       float64 // [m/s^2]
	Decel       float64 // [m/s^2], negative
	Dt          float64 // integration step [s]
	Steps       int
}

// DefaultCycle reproduces the maneuver the original record files were
// generated with: 0 to 65 km/h at 3.3 m/s^2, then -8.5 m/s^2 to rest,
// 9 seconds at 1 kHz.
func DefaultCycle() DriveCycle {
	return DriveCycle{
		TargetSpeed: 65.0 / 3.6,
		Accel:       3.3,
		Decel:       -8.5,
		Dt:          0.001,
		Steps:       9000,
	}
}

// Run integrates the half-car model through the drive cycle and returns
// one telemetry row per step. The state is sampled before each step, so
// row 0 is the rest state at t=0.
func Run(ctx context.Context, p Params, cycle DriveCycle) ([]telemetry.Row, error) {
	model := NewModel(p)

	var x State
	t, speed, dist := 0.0, 0.0, 0.0
	braking := false
	rows := make([]telemetry.Row, 0, cycle.Steps)

	for i := 0; i < cycle.Steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		accel := 0.0
		if !braking {
			if speed < cycle.TargetSpeed {
				accel = cycle.Accel
			} else {
				braking = true
			}
		} else if speed > 0.1 {
			accel = cycle.Decel
		} else {
			speed = 0.0
		}

		rows = append(rows, telemetry.Row{
			Time:          t,
			X:             dist,
			BodyHeight:    x[0],
			Pitch:         x[1],
			FrontUnsprung: x[2],
			RearUnsprung:  x[3],
			Speed:         speed,
		})

		x = model.Step(x, cycle.Dt, accel)
		speed += accel * cycle.Dt
		dist += speed * cycle.Dt
		t += cycle.Dt
	}

	return rows, nil
}
