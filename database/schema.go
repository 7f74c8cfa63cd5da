package database

import "fmt"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS airports (
		icao       VARCHAR(16) NOT NULL PRIMARY KEY,
		lat        DOUBLE NOT NULL,
		lon        DOUBLE NOT NULL,
		position   INT NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS airport_frequencies (
		icao      VARCHAR(16) NOT NULL,
		khz       INT NOT NULL,
		type_code VARCHAR(32) NOT NULL DEFAULT '',
		PRIMARY KEY (icao, khz)
	)`,
	`CREATE TABLE IF NOT EXISTS data_source_versions (
		id                              INT AUTO_INCREMENT PRIMARY KEY,
		source_name                     VARCHAR(64) NOT NULL UNIQUE,
		source_file_url                 VARCHAR(512) NOT NULL DEFAULT '',
		last_downloaded_filename        VARCHAR(255) NULL,
		upstream_revision               VARCHAR(255) NULL,
		row_count                       INT NOT NULL DEFAULT 0,
		last_successfully_downloaded_at DATETIME NULL,
		data_hash                       VARCHAR(64) NULL,
		created_at                      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at                      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates the tables used by the builder if they do not exist.
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
