package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const airportsCSV = "ICAO,name,lat,lon\nKLAX,Los Angeles,33.9425,-118.408\n"

func TestDownloadFile_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		_, _ = w.Write([]byte(airportsCSV))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "airport.csv")
	res, err := DownloadFile(context.Background(), NewHTTPClient(2*time.Second), srv.URL, dest)
	if err != nil {
		t.Fatalf("DownloadFile error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != airportsCSV {
		t.Fatalf("downloaded content = %q, want %q", data, airportsCSV)
	}
	if res.Bytes != int64(len(airportsCSV)) {
		t.Fatalf("Bytes = %d, want %d", res.Bytes, len(airportsCSV))
	}
	if len(res.Hash) != 16 {
		t.Fatalf("Hash = %q, want 16 hex chars", res.Hash)
	}
	if res.URL != srv.URL || res.LocalPath != dest {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDownloadFile_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "airport.csv")
	_, err := DownloadFile(context.Background(), NewHTTPClient(0), srv.URL, dest)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status 404 error, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatalf("no file should be written on a failed download, stat err = %v", statErr)
	}
}

func TestFetchSource_NamesFailingSource(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchSource(context.Background(), NewHTTPClient(0), "frequencies", srv.URL, filepath.Join(t.TempDir(), "f.csv"))
	if err == nil || !strings.Contains(err.Error(), "frequencies") {
		t.Fatalf("expected error naming the frequencies source, got %v", err)
	}
}

func TestFetchSource_LocalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "airport.csv")
	if err := os.WriteFile(path, []byte(airportsCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := FetchSource(context.Background(), NewHTTPClient(0), "airports", "", path)
	if err != nil {
		t.Fatalf("FetchSource error: %v", err)
	}
	if res.SourceName != "airports" || res.URL != "" || res.LocalPath != path {
		t.Fatalf("unexpected result %+v", res)
	}

	// Same bytes hash the same whether downloaded or read from disk.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(airportsCSV))
	}))
	defer srv.Close()
	downloaded, err := FetchSource(context.Background(), NewHTTPClient(0), "airports", srv.URL, filepath.Join(t.TempDir(), "dl.csv"))
	if err != nil {
		t.Fatalf("FetchSource download error: %v", err)
	}
	if downloaded.Hash != res.Hash {
		t.Fatalf("hash mismatch: local %s, downloaded %s", res.Hash, downloaded.Hash)
	}
}

func TestFetchSource_MissingPaths(t *testing.T) {
	t.Parallel()

	if _, err := FetchSource(context.Background(), NewHTTPClient(0), "airports", "http://example.invalid", ""); err == nil {
		t.Fatal("expected error for empty local path")
	}
	if _, err := FetchSource(context.Background(), NewHTTPClient(0), "airports", "", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing local file")
	}
}
