package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ReadParamSeries parses a per-draw parameter CSV with header draw,value,
// the side input consumed by the partial-information estimator. Duplicate
// draws are an error; the estimator needs one value per draw.
func ReadParamSeries(path string) (map[int]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parameter series: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameter series %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parameter series %s is empty", path)
	}

	if err := checkHeader(rows[0], []string{"draw", "value"}); err != nil {
		return nil, fmt.Errorf("parameter series %s: %w", path, err)
	}

	series := make(map[int]float64, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != 2 {
			return nil, fmt.Errorf("parameter series %s line %d: expected 2 fields, got %d", path, line, len(row))
		}

		draw, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("parameter series %s line %d: invalid draw %q", path, line, row[0])
		}
		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parameter series %s line %d: invalid value %q", path, line, row[1])
		}

		if _, dup := series[draw]; dup {
			return nil, fmt.Errorf("parameter series %s line %d: duplicate draw %d", path, line, draw)
		}
		series[draw] = value
	}
	return series, nil
}
