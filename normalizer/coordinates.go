// Package normalizer holds the pure decision logic of the airport dataset
// build: coordinate rounding, VHF frequency validation, usage label mapping
// and per-airport deduplication. Nothing here performs I/O.
package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gewnthar/airportmin/models"
)

// CoordinatePrecision is the number of decimal places kept (~111m at the equator).
const CoordinatePrecision = 3

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ReduceCoordinates parses a lat/lon pair and rounds both values to
// CoordinatePrecision decimal places.
func ReduceCoordinates(lat, lon string) (models.Location, error) {
	latVal, err := parseCoordinate(lat)
	if err != nil {
		return models.Location{}, fmt.Errorf("latitude %q: %w", lat, err)
	}
	lonVal, err := parseCoordinate(lon)
	if err != nil {
		return models.Location{}, fmt.Errorf("longitude %q: %w", lon, err)
	}
	return models.Location{Lat: roundCoordinate(latVal), Lon: roundCoordinate(lonVal)}, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidCoordinate
	}
	return v, nil
}

// roundCoordinate rounds on the exact binary value with ties to even, which is
// what strconv does when formatting with a fixed precision.
func roundCoordinate(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', CoordinatePrecision, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
