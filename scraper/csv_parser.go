// scraper/csv_parser.go
package scraper

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gewnthar/airportmin/models"
	"github.com/jszwec/csvutil"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseAirportsCsv decodes airport.csv. Columns are matched by header name, so
// extra columns and column order do not matter.
func ParseAirportsCsv(reader io.Reader) ([]models.AirportRow, error) {
	rows, err := decodeRows[models.AirportRow](reader, "airports")
	if err != nil {
		return nil, err
	}
	log.Printf("Successfully parsed %d airport rows from CSV.\n", len(rows))
	return rows, nil
}

// ParseFrequenciesCsv decodes frequency.csv.
func ParseFrequenciesCsv(reader io.Reader) ([]models.FrequencyRow, error) {
	rows, err := decodeRows[models.FrequencyRow](reader, "frequencies")
	if err != nil {
		return nil, err
	}
	log.Printf("Successfully parsed %d frequency rows from CSV.\n", len(rows))
	return rows, nil
}

// decodeRows reads every record into T. Records whose field count differs from
// the header are skipped with a warning rather than failing the whole file.
func decodeRows[T any](reader io.Reader, sourceName string) ([]T, error) {
	// Upstream files are UTF-8, sometimes with a BOM that would otherwise end up in the first header name.
	utf8Reader := transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	csvReader := csv.NewReader(utf8Reader)
	csvReader.FieldsPerRecord = -1

	decoder, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s CSV is empty", sourceName)
		}
		return nil, fmt.Errorf("failed to create CSV decoder for %s: %w", sourceName, err)
	}

	var (
		rows    []T
		skipped int
	)
	for {
		var row T
		err := decoder.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, csvutil.ErrFieldCount) {
			skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s CSV data: %w", sourceName, err)
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		log.Printf("WARN: Skipped %d %s rows with a wrong number of fields.\n", skipped, sourceName)
	}
	return rows, nil
}
