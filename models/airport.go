// models/airport.go
package models

import (
	"encoding/json"
	"fmt"
)

// AirportRow is one row of airport.csv. Only the columns the builder needs are mapped;
// csvutil ignores the rest of the header.
type AirportRow struct {
	ICAO string `csv:"ICAO"`
	Lat  string `csv:"lat"`
	Lon  string `csv:"lon"`
}

// FrequencyRow is one row of frequency.csv. Type may be blank.
type FrequencyRow struct {
	Airport   string `csv:"airport"`
	Frequency string `csv:"frequency"`
	Type      string `csv:"type"`
}

// Location is a lat/lon pair in decimal degrees, serialized as [lat, lon].
type Location struct {
	Lat float64
	Lon float64
}

func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{l.Lat, l.Lon})
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("location must be a [lat, lon] array: %w", err)
	}
	l.Lat, l.Lon = pair[0], pair[1]
	return nil
}

// FrequencyEntry is a validated VHF frequency in kHz. An empty TypeCode means the
// source row carried no usage label.
//
// On the wire an untyped entry is a bare integer (kept for older consumers) and a
// typed entry is a [kHz, "code"] pair.
type FrequencyEntry struct {
	KHz      int
	TypeCode string
}

// Plain returns an entry with no usage information.
func Plain(khz int) FrequencyEntry {
	return FrequencyEntry{KHz: khz}
}

// Typed returns an entry carrying a usage code.
func Typed(khz int, code string) FrequencyEntry {
	return FrequencyEntry{KHz: khz, TypeCode: code}
}

// HasType reports whether the entry carries a usage code.
func (e FrequencyEntry) HasType() bool {
	return e.TypeCode != ""
}

func (e FrequencyEntry) MarshalJSON() ([]byte, error) {
	if !e.HasType() {
		return json.Marshal(e.KHz)
	}
	return json.Marshal([]any{e.KHz, e.TypeCode})
}

func (e *FrequencyEntry) UnmarshalJSON(data []byte) error {
	var khz int
	if err := json.Unmarshal(data, &khz); err == nil {
		*e = Plain(khz)
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("frequency entry must be an integer or [kHz, code]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("frequency entry array must have 2 elements, got %d", len(pair))
	}

	var code string
	if err := json.Unmarshal(pair[0], &khz); err != nil {
		return fmt.Errorf("frequency entry kHz: %w", err)
	}
	if err := json.Unmarshal(pair[1], &code); err != nil {
		return fmt.Errorf("frequency entry type code: %w", err)
	}
	*e = Typed(khz, code)
	return nil
}

// AirportRecord is one element of the published dataset.
type AirportRecord struct {
	Code        string           `json:"c"` // ICAO code, e.g. "KLAX"
	Location    Location         `json:"l"` // rounded to 3 decimal places (~111m)
	Frequencies []FrequencyEntry `json:"f"` // ascending by kHz, one entry per kHz
}
