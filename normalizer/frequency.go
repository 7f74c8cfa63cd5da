package normalizer

import (
	"math"
	"strconv"
	"strings"
)

const (
	// VHFMinMHz and VHFMaxMHz bound the civil aeronautical VHF band, inclusive.
	VHFMinMHz = 108.0
	VHFMaxMHz = 137.0

	// KHzThreshold: raw values above it are kHz written without a decimal point.
	KHzThreshold = 500.0
)

// ValidateFrequency parses a raw frequency value and returns it in kHz.
// ok is false when the value is not a number or falls outside the VHF band.
//
// Half-kHz values round to even: "118.0005" gives 118000, "118.0015" gives 118002.
func ValidateFrequency(raw string) (khz int, ok bool) {
	mhz, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	if mhz > KHzThreshold {
		mhz = mhz / 1000
	}
	if !(mhz >= VHFMinMHz && mhz <= VHFMaxMHz) {
		return 0, false
	}
	return int(math.RoundToEven(mhz * 1000)), true
}
