// database/airport_store.go
package database

import (
	"fmt"
	"log"

	"github.com/gewnthar/airportmin/models"
)

// SaveAirports replaces the stored dataset with records using a "clear and load"
// strategy inside one transaction. Output order is kept in the position column.
func SaveAirports(records []models.AirportRecord) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(records) == 0 {
		log.Println("Database: No airports provided to save, keeping existing rows.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for airports: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM airport_frequencies"); err != nil {
		return fmt.Errorf("failed to clear airport frequencies: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM airports"); err != nil {
		return fmt.Errorf("failed to clear airports: %w", err)
	}

	airportStmt, err := tx.Prepare(`INSERT INTO airports (icao, lat, lon, position, updated_at) VALUES (?, ?, ?, ?, NOW())`)
	if err != nil {
		return fmt.Errorf("failed to prepare airport insert statement: %w", err)
	}
	defer airportStmt.Close()

	freqStmt, err := tx.Prepare(`INSERT INTO airport_frequencies (icao, khz, type_code) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare frequency insert statement: %w", err)
	}
	defer freqStmt.Close()

	freqCount := 0
	for i, rec := range records {
		if _, err := airportStmt.Exec(rec.Code, rec.Location.Lat, rec.Location.Lon, i); err != nil {
			log.Printf("ERROR saving airport %s: %v", rec.Code, err)
			return fmt.Errorf("failed to execute airport insert for '%s': %w", rec.Code, err)
		}
		for _, f := range rec.Frequencies {
			if _, err := freqStmt.Exec(rec.Code, f.KHz, f.TypeCode); err != nil {
				return fmt.Errorf("failed to execute frequency insert for '%s' %d kHz: %w", rec.Code, f.KHz, err)
			}
			freqCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for airports: %w", err)
	}

	log.Printf("Database: Successfully saved %d airports with %d frequencies.\n", len(records), freqCount)
	return nil
}

// GetAirports loads the stored dataset in its original output order.
func GetAirports() ([]models.AirportRecord, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT a.icao, a.lat, a.lon, f.khz, f.type_code
		FROM airports a
		JOIN airport_frequencies f ON f.icao = a.icao
		ORDER BY a.position, f.khz
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	var records []models.AirportRecord
	for rows.Next() {
		var (
			code     string
			lat, lon float64
			khz      int
			typeCode string
		)
		if err := rows.Scan(&code, &lat, &lon, &khz, &typeCode); err != nil {
			return nil, fmt.Errorf("failed to scan airport row: %w", err)
		}
		if n := len(records); n == 0 || records[n-1].Code != code {
			records = append(records, models.AirportRecord{
				Code:     code,
				Location: models.Location{Lat: lat, Lon: lon},
			})
		}
		last := &records[len(records)-1]
		last.Frequencies = append(last.Frequencies, models.FrequencyEntry{KHz: khz, TypeCode: typeCode})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airport rows: %w", err)
	}
	return records, nil
}
