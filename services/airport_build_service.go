// services/airport_build_service.go
package services

import (
	"context"
	"runtime"

	"github.com/gewnthar/airportmin/models"
	"github.com/gewnthar/airportmin/normalizer"
	"golang.org/x/sync/errgroup"
)

// normalizeChunkSize is the number of frequency rows one worker validates at a time.
const normalizeChunkSize = 4096

// normalizedFrequency is the side-effect free result of validating one frequency row.
type normalizedFrequency struct {
	entry models.FrequencyEntry
	ok    bool
}

// BuildAirportDataset joins frequency rows to airport rows and returns the
// airports that end up with at least one valid VHF frequency, in the order the
// airports first appear in airportRows.
//
// Rows that cannot be used are skipped and counted in the returned stats; the
// only error is ctx being cancelled.
func BuildAirportDataset(ctx context.Context, airportRows []models.AirportRow, freqRows []models.FrequencyRow) ([]models.AirportRecord, models.BuildStats, error) {
	stats := models.BuildStats{
		AirportRows:     len(airportRows),
		FrequencyRows:   len(freqRows),
		TypeCodesMapped: normalizer.TypeCodeCount(),
	}

	order, airports := indexAirports(airportRows, &stats)

	normalized, err := normalizeFrequencies(ctx, freqRows)
	if err != nil {
		return nil, stats, err
	}

	// Single writer: entries are appended in source row order, which is what
	// makes "first typed entry wins" reproducible.
	entries := make(map[string][]models.FrequencyEntry, len(airports))
	for i, row := range freqRows {
		if _, known := airports[row.Airport]; !known {
			stats.UnmatchedFrequencies++
			continue
		}
		if !normalized[i].ok {
			stats.RejectedFrequencies++
			continue
		}
		entries[row.Airport] = append(entries[row.Airport], normalized[i].entry)
	}

	records := make([]models.AirportRecord, 0, len(entries))
	for _, code := range order {
		rec := airports[code]
		rec.Frequencies = normalizer.DedupeFrequencies(entries[code])
		if len(rec.Frequencies) == 0 {
			stats.AirportsWithoutFreqs++
			continue
		}
		records = append(records, rec)
	}
	stats.AirportsWritten = len(records)
	return records, stats, nil
}

// indexAirports builds one record per airport code. A repeated code keeps the
// position of its first row and the location of its last valid row.
func indexAirports(rows []models.AirportRow, stats *models.BuildStats) ([]string, map[string]models.AirportRecord) {
	order := make([]string, 0, len(rows))
	airports := make(map[string]models.AirportRecord, len(rows))

	for _, row := range rows {
		if row.ICAO == "" || row.Lat == "" || row.Lon == "" {
			stats.SkippedAirportRows++
			continue
		}
		loc, err := normalizer.ReduceCoordinates(row.Lat, row.Lon)
		if err != nil {
			stats.SkippedAirportRows++
			continue
		}
		if _, seen := airports[row.ICAO]; !seen {
			order = append(order, row.ICAO)
		}
		airports[row.ICAO] = models.AirportRecord{
			Code:        row.ICAO,
			Location:    loc,
			Frequencies: []models.FrequencyEntry{},
		}
	}
	return order, airports
}

// normalizeFrequencies validates and maps every row in parallel. Result i
// belongs to row i, so no ordering is lost.
func normalizeFrequencies(ctx context.Context, rows []models.FrequencyRow) ([]normalizedFrequency, error) {
	results := make([]normalizedFrequency, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < len(rows); start += normalizeChunkSize {
		start := start
		end := min(start+normalizeChunkSize, len(rows))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				results[i] = normalizeFrequency(rows[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func normalizeFrequency(row models.FrequencyRow) normalizedFrequency {
	if row.Frequency == "" {
		return normalizedFrequency{}
	}
	khz, ok := normalizer.ValidateFrequency(row.Frequency)
	if !ok {
		return normalizedFrequency{}
	}
	return normalizedFrequency{
		entry: models.FrequencyEntry{KHz: khz, TypeCode: normalizer.MapTypeCode(row.Type)},
		ok:    true,
	}
}
