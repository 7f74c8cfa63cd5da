// handlers/airport_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gewnthar/airportmin/config"
	"github.com/gewnthar/airportmin/database"
	"github.com/gewnthar/airportmin/exporter"
)

// GetAirportsHandler serves the dataset. GET /api/airports.
// The last written JSON file is served when present; otherwise the copy stored
// in the database is encoded on the fly.
func GetAirportsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	path := config.AppConfig.Output.JSONPath
	if _, err := os.Stat(path); err == nil {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
		return
	} else if !errors.Is(err, os.ErrNotExist) {
		respondWithError(w, http.StatusInternalServerError, "Failed to read dataset")
		return
	}

	if database.DB == nil {
		respondWithError(w, http.StatusNotFound, "Dataset has not been built yet")
		return
	}

	records, err := database.GetAirports()
	if err != nil {
		log.Printf("ERROR: Failed to load airports from database: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dataset")
		return
	}
	if len(records) == 0 {
		respondWithError(w, http.StatusNotFound, "Dataset has not been built yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := exporter.EncodeAirports(w, records); err != nil {
		log.Printf("ERROR: Failed to write airports response: %v", err)
	}
}

// HealthHandler reports liveness and, when configured, database reachability.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if database.DB != nil {
		if err := database.DB.PingContext(r.Context()); err != nil {
			log.Printf("Health check failed: DB ping error: %v", err)
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "database connection error"})
			return
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
