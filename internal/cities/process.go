package cities

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ProcessRaw converts a raw simplemaps uscities.csv dump into the processed
// city table the Index loads. Rows with population at or below minPopulation
// are dropped; the output keeps only city_state, lat and lng. Returns the
// number of cities written.
func ProcessRaw(r io.Reader, w io.Writer, minPopulation int) (int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read raw header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"city", "state_name", "population", "lat", "lng"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("raw city file missing column %q", required)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"city_state", "lat", "lng"}); err != nil {
		return 0, err
	}

	written := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("read raw city file: %w", err)
		}

		// Population arrives as a float-formatted string in some dumps.
		pop, err := strconv.ParseFloat(rec[col["population"]], 64)
		if err != nil || pop <= float64(minPopulation) {
			continue
		}

		cityState := rec[col["city"]] + ", " + rec[col["state_name"]]
		if err := cw.Write([]string{cityState, rec[col["lat"]], rec[col["lng"]]}); err != nil {
			return written, err
		}
		written++
	}

	cw.Flush()
	return written, cw.Error()
}
