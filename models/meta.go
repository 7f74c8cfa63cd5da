// models/meta.go
package models

import "time"

// DataSourceVersion tracks what was downloaded for each upstream CSV on a build run.
type DataSourceVersion struct {
	ID                           int        `db:"id" json:"id"`
	SourceName                   string     `db:"source_name" json:"source_name"` // "airports" or "frequencies"
	SourceFileURL                string     `db:"source_file_url" json:"source_file_url"`
	LastDownloadedFilename       string     `db:"last_downloaded_filename" json:"last_downloaded_filename,omitempty"`
	UpstreamRevision             string     `db:"upstream_revision" json:"upstream_revision,omitempty"` // scraped from the source page, if configured
	RowCount                     int        `db:"row_count" json:"row_count"`
	LastSuccessfullyDownloadedAt *time.Time `db:"last_successfully_downloaded_at" json:"last_successfully_downloaded_at,omitempty"`
	DataHash                     string     `db:"data_hash" json:"data_hash,omitempty"` // xxh3 of the file content, hex
	CreatedAt                    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt                    time.Time  `db:"updated_at" json:"updated_at"`
}

// SourceRevision holds the revision text scraped from an upstream page.
type SourceRevision struct {
	PageURL     string
	Text        string
	LastChecked time.Time
}

// BuildStats summarizes one pipeline run.
type BuildStats struct {
	AirportRows          int
	SkippedAirportRows   int
	FrequencyRows        int
	UnmatchedFrequencies int
	RejectedFrequencies  int
	AirportsWithoutFreqs int
	AirportsWritten      int
	TypeCodesMapped      int
}
