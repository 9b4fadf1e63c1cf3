package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Columns expected in a simulation record. The simulator historically
// wrote them in a different order than listed here, so they are resolved
// by header name rather than position.
var columns = []string{"time", "x_abs", "ys", "theta", "yu1", "yu2", "v_abs"}

// Filename returns the conventional record path for a vehicle.
func Filename(dir, vehicle string) string {
	return filepath.Join(dir, vehicle+"_sim.csv")
}

// Load reads a simulation record from a CSV file and returns the derived
// series. On any failure the error is a *LoadError and no partial series
// is returned.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("missing header row")}
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, name := range columns {
		if _, ok := idx[name]; !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("missing column %q", name)}
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for n, record := range records[1:] {
		row, err := parseRow(record, idx)
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("row %d: %w", n+1, err)}
		}
		if len(rows) > 0 && row.Time <= rows[len(rows)-1].Time {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("row %d: time %.6f not strictly increasing", n+1, row.Time)}
		}
		rows = append(rows, row)
	}

	return NewSeries(rows), nil
}

func parseRow(record []string, idx map[string]int) (Row, error) {
	field := func(name string) (float64, error) {
		i := idx[name]
		if i >= len(record) {
			return 0, fmt.Errorf("short record, missing %q", name)
		}
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}
		return v, nil
	}

	var row Row
	var err error
	if row.Time, err = field("time"); err != nil {
		return Row{}, err
	}
	if row.X, err = field("x_abs"); err != nil {
		return Row{}, err
	}
	if row.BodyHeight, err = field("ys"); err != nil {
		return Row{}, err
	}
	if row.Pitch, err = field("theta"); err != nil {
		return Row{}, err
	}
	if row.FrontUnsprung, err = field("yu1"); err != nil {
		return Row{}, err
	}
	if row.RearUnsprung, err = field("yu2"); err != nil {
		return Row{}, err
	}
	if row.Speed, err = field("v_abs"); err != nil {
		return Row{}, err
	}
	return row, nil
}
