package cities

import (
	"bytes"
	"strings"
	"testing"
)

const rawDump = `city,city_ascii,state_name,county_name,lat,lng,population
Chicago,Chicago,Illinois,Cook,41.8375,-87.6866,8604203
Urbana,Urbana,Illinois,Champaign,40.1107,-88.1973,38336
Tinyville,Tinyville,Illinois,Nowhere,40.0,-88.0,9999
Smallburg,Smallburg,Texas,Dust,30.0,-97.0,120
`

func TestProcessRawFiltersByPopulation(t *testing.T) {
	var out bytes.Buffer
	n, err := ProcessRaw(strings.NewReader(rawDump), &out, 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 cities kept, got %d", n)
	}

	got := out.String()
	if !strings.HasPrefix(got, "city_state,lat,lng\n") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, `"Chicago, Illinois",41.8375,-87.6866`) {
		t.Errorf("Chicago row missing or malformed:\n%s", got)
	}
	if !strings.Contains(got, `"Urbana, Illinois",40.1107,-88.1973`) {
		t.Errorf("Urbana row missing or malformed:\n%s", got)
	}
	// Population exactly at the cutoff is dropped, as is anything below.
	if strings.Contains(got, "Tinyville") || strings.Contains(got, "Smallburg") {
		t.Errorf("small cities must be filtered out:\n%s", got)
	}
}

func TestProcessRawOutputLoadsAsIndex(t *testing.T) {
	var out bytes.Buffer
	if _, err := ProcessRaw(strings.NewReader(rawDump), &out, 9999); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, err := Read(&out, nil)
	if err != nil {
		t.Fatalf("processed output failed to load: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 cities in index, got %d", idx.Len())
	}
	if _, err := idx.Resolve("Chicago, Illinois"); err != nil {
		t.Fatalf("expected processed city to resolve: %v", err)
	}
}

func TestProcessRawMissingColumn(t *testing.T) {
	raw := "city,lat,lng\nChicago,41.8,-87.7\n"
	if _, err := ProcessRaw(strings.NewReader(raw), &bytes.Buffer{}, 0); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
