// handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gewnthar/airportmin/config"
	"github.com/gewnthar/airportmin/models"
	"github.com/gewnthar/airportmin/services"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

type rebuildResponse struct {
	Message    string            `json:"message"`
	OutputPath string            `json:"output_path"`
	Airports   int               `json:"airports"`
	Stats      models.BuildStats `json:"stats"`
	Revision   string            `json:"upstream_revision,omitempty"`
}

// RebuildDatasetHandler runs the full build. Expects POST /api/admin/rebuild.
func RebuildDatasetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	res, err := services.RunBuild(r.Context(), config.AppConfig)
	if errors.Is(err, services.ErrBuildInProgress) {
		respondWithError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("Failed to rebuild dataset: %v", err))
		return
	}

	resp := rebuildResponse{
		Message:    fmt.Sprintf("Wrote %d airport entries to %s", len(res.Records), res.OutputPath),
		OutputPath: res.OutputPath,
		Airports:   len(res.Records),
		Stats:      res.Stats,
	}
	if res.Revision != nil {
		resp.Revision = res.Revision.Text
	}
	respondWithJSON(w, http.StatusOK, resp)
}
