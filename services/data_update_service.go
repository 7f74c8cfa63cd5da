// services/data_update_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gewnthar/airportmin/config"
	"github.com/gewnthar/airportmin/database"
	"github.com/gewnthar/airportmin/exporter"
	"github.com/gewnthar/airportmin/models"
	"github.com/gewnthar/airportmin/scraper"
)

const (
	sourceAirports    = "airports"
	sourceFrequencies = "frequencies"
)

// ErrBuildInProgress is returned when RunBuild is called while another build is running.
var ErrBuildInProgress = errors.New("a dataset build is already running")

var buildMu sync.Mutex

// BuildResult is what one successful RunBuild produced.
type BuildResult struct {
	OutputPath string
	Records    []models.AirportRecord
	Stats      models.BuildStats
	Sources    []scraper.DownloadResult
	Revision   *models.SourceRevision
}

// RunBuild fetches both sources, builds the dataset and writes it to
// cfg.Output.JSONPath. A fetch or parse failure aborts the run before anything
// is written. When a database connection is open the dataset and source
// versions are also stored; storage failures are logged, not returned.
func RunBuild(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	if !buildMu.TryLock() {
		return nil, ErrBuildInProgress
	}
	defer buildMu.Unlock()

	client := scraper.NewHTTPClient(cfg.HTTP.Timeout)
	result := &BuildResult{OutputPath: cfg.Output.JSONPath}

	if cfg.DataFreshness.SourcePage != "" && cfg.DataFreshness.RevisionSelector != "" {
		rev, err := scraper.GetSourceRevision(ctx, client, cfg.DataFreshness.SourcePage, cfg.DataFreshness.RevisionSelector)
		if err != nil {
			log.Printf("WARN Service: Could not determine upstream revision: %v\n", err)
		} else {
			log.Printf("Service: Upstream revision: %s\n", rev.Text)
			result.Revision = rev
		}
	}

	airportSrc, airportRows, err := loadSource(ctx, client, sourceAirports, cfg.Sources.AirportsURL, cfg.LocalCSVPaths.Airports, scraper.ParseAirportsCsv)
	if err != nil {
		return nil, err
	}
	freqSrc, freqRows, err := loadSource(ctx, client, sourceFrequencies, cfg.Sources.FrequenciesURL, cfg.LocalCSVPaths.Frequencies, scraper.ParseFrequenciesCsv)
	if err != nil {
		return nil, err
	}
	result.Sources = []scraper.DownloadResult{airportSrc, freqSrc}

	records, stats, err := BuildAirportDataset(ctx, airportRows, freqRows)
	if err != nil {
		return nil, fmt.Errorf("failed to build airport dataset: %w", err)
	}
	result.Records = records
	result.Stats = stats

	log.Printf("Service: Skipped %d airport rows, %d unmatched and %d invalid frequency rows, %d airports without frequencies.\n",
		stats.SkippedAirportRows, stats.UnmatchedFrequencies, stats.RejectedFrequencies, stats.AirportsWithoutFreqs)

	if err := exporter.WriteAirportsJSON(cfg.Output.JSONPath, records); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	log.Printf("Wrote %d airport entries to %s\n", len(records), cfg.Output.JSONPath)
	log.Printf("Type mapping: %d types mapped to codes\n", stats.TypeCodesMapped)

	if database.DB != nil {
		persistBuild(result, map[string]int{sourceAirports: len(airportRows), sourceFrequencies: len(freqRows)})
	}
	return result, nil
}

// loadSource fetches one source and parses it. Downloaded files are removed
// once parsed; files that were only read from disk are left alone.
func loadSource[T any](
	ctx context.Context,
	client *http.Client,
	sourceName, url, localPath string,
	parse func(io.Reader) ([]T, error),
) (scraper.DownloadResult, []T, error) {
	src, err := scraper.FetchSource(ctx, client, sourceName, url, localPath)
	if err != nil {
		return scraper.DownloadResult{}, nil, err
	}
	if src.URL != "" {
		defer func() {
			if err := os.Remove(src.LocalPath); err != nil {
				log.Printf("ERROR Service: Failed to remove temporary file %s: %v\n", src.LocalPath, err)
			}
		}()
	}

	file, err := os.Open(src.LocalPath)
	if err != nil {
		return scraper.DownloadResult{}, nil, fmt.Errorf("failed to open %s file %s: %w", sourceName, src.LocalPath, err)
	}
	defer file.Close()

	rows, err := parse(file)
	if err != nil {
		return scraper.DownloadResult{}, nil, fmt.Errorf("failed to parse %s CSV from %s: %w", sourceName, src.LocalPath, err)
	}
	return src, rows, nil
}

func persistBuild(result *BuildResult, rowCounts map[string]int) {
	if err := database.SaveAirports(result.Records); err != nil {
		log.Printf("ERROR Service: Failed to save airports to database: %v\n", err)
	}

	for _, src := range result.Sources {
		downloaded := src.DownloadedAt
		v := models.DataSourceVersion{
			SourceName:                   src.SourceName,
			SourceFileURL:                src.URL,
			LastDownloadedFilename:       filepath.Base(src.LocalPath),
			RowCount:                     rowCounts[src.SourceName],
			LastSuccessfullyDownloadedAt: &downloaded,
			DataHash:                     src.Hash,
		}
		if result.Revision != nil {
			v.UpstreamRevision = result.Revision.Text
		}
		if err := database.LogDataSourceVersionUpdate(v); err != nil {
			log.Printf("ERROR Service: Failed to log data source version for %s: %v\n", src.SourceName, err)
		}
	}
}
