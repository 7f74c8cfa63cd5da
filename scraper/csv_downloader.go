// scraper/csv_downloader.go
package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/xxh3"
)

const defaultDownloadTimeout = 30 * time.Second

// DownloadResult describes a source file that is ready to be parsed.
type DownloadResult struct {
	SourceName   string
	URL          string // empty when the file was read from disk only
	LocalPath    string
	Bytes        int64
	Hash         string // xxh3 of the content, hex
	DownloadedAt time.Time
}

// NewHTTPClient returns the client used for source downloads and page scrapes.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	return &http.Client{Timeout: timeout}
}

// DownloadFile downloads url into localSavePath and returns the content hash.
// Any transport error or non-200 status is returned as an error.
func DownloadFile(ctx context.Context, client *http.Client, url string, localSavePath string) (DownloadResult, error) {
	log.Printf("Scraper: Downloading %s to %s\n", url, localSavePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to build GET request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DownloadResult{}, fmt.Errorf("failed to download file from %s: received status code %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return DownloadResult{}, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	hasher := xxh3.New()
	n, err := io.Copy(io.MultiWriter(outFile, hasher), resp.Body)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	log.Printf("Scraper: Downloaded %d bytes from %s\n", n, url)
	return DownloadResult{
		URL:          url,
		LocalPath:    localSavePath,
		Bytes:        n,
		Hash:         fmt.Sprintf("%016x", hasher.Sum64()),
		DownloadedAt: time.Now().UTC(),
	}, nil
}

// FetchSource makes one named source available on disk. With a URL the file is
// downloaded to localPath; without one, localPath must already exist.
func FetchSource(ctx context.Context, client *http.Client, sourceName, url, localPath string) (DownloadResult, error) {
	if localPath == "" {
		return DownloadResult{}, fmt.Errorf("local path for %s CSV is not configured", sourceName)
	}

	var (
		result DownloadResult
		err    error
	)
	if url != "" {
		result, err = DownloadFile(ctx, client, url, localPath)
	} else {
		result, err = hashLocalFile(localPath)
	}
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to fetch %s CSV: %w", sourceName, err)
	}
	result.SourceName = sourceName
	return result, nil
}

func hashLocalFile(path string) (DownloadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to open local file %s: %w", path, err)
	}
	defer f.Close()

	hasher := xxh3.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to read local file %s: %w", path, err)
	}

	log.Printf("Scraper: Using local file %s (%d bytes)\n", path, n)
	return DownloadResult{
		LocalPath:    path,
		Bytes:        n,
		Hash:         fmt.Sprintf("%016x", hasher.Sum64()),
		DownloadedAt: time.Now().UTC(),
	}, nil
}
