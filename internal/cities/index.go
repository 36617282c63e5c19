// Package cities provides the city lookup table behind the dashboard's city
// picker, plus the preprocessing step that builds it from a raw census dump.
package cities

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownCity is returned when a requested city is not in the index and
// no geocoder fallback could resolve it.
var ErrUnknownCity = errors.New("unknown city")

// City is one selectable entry: a "City, State" display name and its
// coordinates.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Geocoder resolves city names the index does not know about.
type Geocoder interface {
	Geocode(name string) (lat, lng float64, err error)
}

// Index is an in-memory lookup table of cities keyed by canonical name.
// Lookups are case-insensitive; names are canonicalized to title case.
type Index struct {
	byName   map[string]City
	ordered  []City
	fallback Geocoder
}

var titleCaser = cases.Title(language.AmericanEnglish)

// canonicalName normalizes a user-supplied city name to the index's
// "City, State" form.
func canonicalName(name string) string {
	parts := strings.Split(name, ",")
	for i := range parts {
		parts[i] = titleCaser.String(strings.TrimSpace(parts[i]))
	}
	return strings.Join(parts, ", ")
}

// Load reads a processed city table (header city_state,lat,lng) from path.
// fallback may be nil.
func Load(path string, fallback Geocoder) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open city table: %w", err)
	}
	defer f.Close()
	return Read(f, fallback)
}

// Read parses a processed city table from r.
func Read(r io.Reader, fallback Geocoder) (*Index, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read city table header: %w", err)
	}
	if header[0] != "city_state" || header[1] != "lat" || header[2] != "lng" {
		return nil, fmt.Errorf("unexpected city table header %v", header)
	}

	idx := &Index{
		byName:   make(map[string]City),
		fallback: fallback,
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read city table: %w", err)
		}

		lat, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("city %q has invalid latitude %q", rec[0], rec[1])
		}
		lng, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("city %q has invalid longitude %q", rec[0], rec[2])
		}

		city := City{Name: rec[0], Lat: lat, Lng: lng}
		idx.byName[canonicalName(city.Name)] = city
		idx.ordered = append(idx.ordered, city)
	}

	sort.Slice(idx.ordered, func(i, j int) bool {
		return idx.ordered[i].Name < idx.ordered[j].Name
	})
	return idx, nil
}

// Len reports the number of cities in the table.
func (idx *Index) Len() int {
	return len(idx.ordered)
}

// Resolve returns the entry for a city name. Unknown names are handed to the
// geocoder fallback when one is configured.
func (idx *Index) Resolve(name string) (City, error) {
	if city, ok := idx.byName[canonicalName(name)]; ok {
		return city, nil
	}
	if idx.fallback != nil {
		lat, lng, err := idx.fallback.Geocode(name)
		if err == nil {
			return City{Name: canonicalName(name), Lat: lat, Lng: lng}, nil
		}
	}
	return City{}, fmt.Errorf("%w: %s", ErrUnknownCity, name)
}

// Search returns cities whose name contains q (case-insensitive), sorted by
// name. An empty query returns the whole table.
func (idx *Index) Search(q string) []City {
	if q == "" {
		out := make([]City, len(idx.ordered))
		copy(out, idx.ordered)
		return out
	}

	q = strings.ToLower(q)
	var out []City
	for _, city := range idx.ordered {
		if strings.Contains(strings.ToLower(city.Name), q) {
			out = append(out, city)
		}
	}
	return out
}
