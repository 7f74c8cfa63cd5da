// Package exporter writes the published airport dataset.
package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gewnthar/airportmin/models"
)

// EncodeAirports writes records as one compact JSON array with no trailing
// newline. Non-ASCII text and characters like & are written as-is.
func EncodeAirports(w io.Writer, records []models.AirportRecord) error {
	if records == nil {
		records = []models.AirportRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode airports: %w", err)
	}

	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return fmt.Errorf("failed to write airports: %w", err)
	}
	return nil
}

// WriteAirportsJSON replaces the file at path with the encoded records. The
// data goes to a temporary file in the same directory first, so readers never
// see a partially written dataset.
func WriteAirportsJSON(path string, records []models.AirportRecord) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := EncodeAirports(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move output into place at %s: %w", path, err)
	}
	return nil
}
