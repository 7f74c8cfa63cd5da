// database/datasource_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gewnthar/airportmin/models"
)

// LogDataSourceVersionUpdate inserts or updates the data_source_versions row for
// v.SourceName, recording where the file came from and what it contained.
func LogDataSourceVersionUpdate(v models.DataSourceVersion) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	var sqlDownloaded sql.NullTime
	if v.LastSuccessfullyDownloadedAt != nil {
		sqlDownloaded = sql.NullTime{Time: *v.LastSuccessfullyDownloadedAt, Valid: true}
	}

	query := `
		INSERT INTO data_source_versions (
			source_name, source_file_url, last_downloaded_filename,
			upstream_revision, row_count, last_successfully_downloaded_at,
			data_hash, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			source_file_url = VALUES(source_file_url),
			last_downloaded_filename = VALUES(last_downloaded_filename),
			upstream_revision = VALUES(upstream_revision),
			row_count = VALUES(row_count),
			last_successfully_downloaded_at = VALUES(last_successfully_downloaded_at),
			data_hash = VALUES(data_hash),
			updated_at = NOW()
	`

	_, err := DB.Exec(query,
		v.SourceName, v.SourceFileURL, nullString(v.LastDownloadedFilename),
		nullString(v.UpstreamRevision), v.RowCount, sqlDownloaded,
		nullString(v.DataHash),
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to log/update data source version for '%s': %v", v.SourceName, err)
		return fmt.Errorf("failed to log data source version for %s: %w", v.SourceName, err)
	}

	log.Printf("Database: Logged data source version for '%s' (hash %s, %d rows)\n", v.SourceName, v.DataHash, v.RowCount)
	return nil
}

// GetDataSourceVersions retrieves all records from the data_source_versions table.
func GetDataSourceVersions() ([]models.DataSourceVersion, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT id, source_name, source_file_url, last_downloaded_filename,
		       upstream_revision, row_count, last_successfully_downloaded_at,
		       data_hash, created_at, updated_at
		FROM data_source_versions
		ORDER BY source_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query data_source_versions: %w", err)
	}
	defer rows.Close()

	var versions []models.DataSourceVersion
	for rows.Next() {
		var v models.DataSourceVersion
		var filename, revision, dataHash sql.NullString
		var downloaded sql.NullTime

		err := rows.Scan(
			&v.ID, &v.SourceName, &v.SourceFileURL, &filename,
			&revision, &v.RowCount, &downloaded,
			&dataHash, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR Database: Failed to scan data_source_version row: %v", err)
			continue
		}
		v.LastDownloadedFilename = filename.String
		v.UpstreamRevision = revision.String
		v.DataHash = dataHash.String
		if downloaded.Valid {
			v.LastSuccessfullyDownloadedAt = &downloaded.Time
		}
		versions = append(versions, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating data_source_version rows: %w", err)
	}
	return versions, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
