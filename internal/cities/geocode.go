package cities

import (
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
)

// GoogleGeocoder resolves "City, State" names through the Google geocoding
// API for cities absent from the processed table.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the shared geocoder API key and returns a
// Geocoder. Returns nil when no key is configured, which disables fallback.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	if apiKey == "" {
		return nil
	}
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Geocode(name string) (lat, lng float64, err error) {
	address := geocoder.Address{Country: "United States"}

	parts := strings.SplitN(name, ",", 2)
	address.City = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		address.State = strings.TrimSpace(parts[1])
	}

	location, err := geocoder.Geocoding(address)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", name, err)
	}

	return location.Latitude, location.Longitude, nil
}
