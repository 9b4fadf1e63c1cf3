package halfcar

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/rideview/internal/telemetry"
)

// WriteCSV writes rows in the historical record format the viewer loads:
// header time,ys,theta,yu1,yu2,v_abs,x_abs. Parent directories are
// created as needed.
func WriteCSV(path string, rows []telemetry.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"time", "ys", "theta", "yu1", "yu2", "v_abs", "x_abs"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatFloat(r.Time, 'f', 6, 64),
			strconv.FormatFloat(r.BodyHeight, 'f', 6, 64),
			strconv.FormatFloat(r.Pitch, 'f', 6, 64),
			strconv.FormatFloat(r.FrontUnsprung, 'f', 6, 64),
			strconv.FormatFloat(r.RearUnsprung, 'f', 6, 64),
			strconv.FormatFloat(r.Speed, 'f', 6, 64),
			strconv.FormatFloat(r.X, 'f', 6, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
