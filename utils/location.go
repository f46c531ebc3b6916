package utils

import (
	"errors"
	"math"

	"github.com/tidwall/geodesic"
)

// DefaultSearchRadius is the matching radius in kilometers when none is given.
const DefaultSearchRadius = 50.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Location represents a geographical coordinate
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeodesicDistance returns the WGS84 ellipsoidal distance between two points in kilometers.
func GeodesicDistance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if !IsLocationValid(lat1, lon1) || !IsLocationValid(lat2, lon2) {
		return 0, ErrInvalidCoordinate
	}

	var meters float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &meters, nil, nil)
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return 0, ErrInvalidCoordinate
	}
	return meters / 1000, nil
}

// IsLocationValid checks if the provided coordinates are valid
func IsLocationValid(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// RoundTo rounds value to the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
