package geo

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name       string
		latOne     float64
		longOne    float64
		latTwo     float64
		longTwo    float64
		wantKM     float64
		toleranceM float64
	}{
		{
			name:   "one degree of longitude on the equator",
			latOne: 0, longOne: 0, latTwo: 0, longTwo: 1,
			wantKM:     111.195,
			toleranceM: 50,
		},
		{
			name:   "berlin to munich",
			latOne: 52.5200, longOne: 13.4050, latTwo: 48.1351, longTwo: 11.5820,
			wantKM:     504.2,
			toleranceM: 2000,
		},
		{
			name:   "identical points",
			latOne: 50.0, longOne: 8.0, latTwo: 50.0, longTwo: 8.0,
			wantKM:     0,
			toleranceM: 0.001,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.latOne, tt.longOne, tt.latTwo, tt.longTwo)
			if math.Abs(got-tt.wantKM)*1000 > tt.toleranceM {
				t.Errorf("got %v km, want %v km", got, tt.wantKM)
			}
		})
	}
}

func TestCoordinateIsValid(t *testing.T) {
	testCases := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{name: "valid", lat: 52.52, lon: 13.40, want: true},
		{name: "nan", lat: math.NaN(), lon: 13.40, want: false},
		{name: "infinite", lat: 52.52, lon: math.Inf(-1), want: false},
		{name: "latitude above range", lat: 90.1, lon: 0, want: false},
		{name: "longitude above range", lat: 0, lon: 180.1, want: false},
		{name: "pole", lat: 90.0, lon: 0, want: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCoordinate(tt.lat, tt.lon).IsValid(); got != tt.want {
				t.Errorf("IsValid(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
