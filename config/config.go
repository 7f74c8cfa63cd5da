// config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAirportsURL    = "https://raw.githubusercontent.com/komed3/airportmap-database/master/airport.csv"
	DefaultFrequenciesURL = "https://raw.githubusercontent.com/komed3/airportmap-database/master/frequency.csv"
	DefaultOutputJSON     = "airports_min.json"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// Enabled reports whether a database was configured. The builder runs fine without one.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type SourcesConfig struct {
	AirportsURL    string `yaml:"airports_url"`
	FrequenciesURL string `yaml:"frequencies_url"`
}

type LocalCSVPathsConfig struct {
	Airports    string `yaml:"airports"`
	Frequencies string `yaml:"frequencies"`
}

type OutputConfig struct {
	JSONPath string `yaml:"json_path"`
}

type HTTPConfig struct {
	TimeoutStr string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"` // Parsed duration
}

// DataFreshnessConfig points at an upstream page whose selected text identifies
// the current data revision. Both fields empty disables the check.
type DataFreshnessConfig struct {
	SourcePage       string `yaml:"source_page"`
	RevisionSelector string `yaml:"revision_selector"`
}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Sources       SourcesConfig       `yaml:"sources"`
	LocalCSVPaths LocalCSVPathsConfig `yaml:"local_csv_paths"`
	Output        OutputConfig        `yaml:"output"`
	HTTP          HTTPConfig          `yaml:"http"`
	DataFreshness DataFreshnessConfig `yaml:"data_freshness"`
}

var AppConfig Config

// potentialPaths are tried in order when no config path is given.
var potentialPaths = []string{
	"config.yaml",
	"config/config.yaml",
	"../config/config.yaml",
}

// Default returns the configuration used when no file is found: the public
// airportmap-database CSVs, no database, output next to the binary.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Sources: SourcesConfig{
			AirportsURL:    DefaultAirportsURL,
			FrequenciesURL: DefaultFrequenciesURL,
		},
		LocalCSVPaths: LocalCSVPathsConfig{
			Airports:    "temp_data/airport.csv",
			Frequencies: "temp_data/frequency.csv",
		},
		Output: OutputConfig{JSONPath: DefaultOutputJSON},
		HTTP:   HTTPConfig{TimeoutStr: "30s", Timeout: 30 * time.Second},
	}
}

// LoadConfig loads configuration into AppConfig.
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load builds a Config from defaults, the YAML file at configPath (or the
// first of potentialPaths that exists), a .env file and the environment, in
// that order of increasing precedence.
func Load(configPath string) (Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath != "" {
		log.Printf("Loading configuration from: %s\n", configPath)
		file, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else {
		log.Println("No config file found, using built-in defaults.")
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	applyEnvOverrides(&cfg)

	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		"AIRPORTS_URL":    &cfg.Sources.AirportsURL,
		"FREQUENCIES_URL": &cfg.Sources.FrequenciesURL,
		"AIRPORTS_CSV":    &cfg.LocalCSVPaths.Airports,
		"FREQUENCIES_CSV": &cfg.LocalCSVPaths.Frequencies,
		"OUTPUT_JSON":     &cfg.Output.JSONPath,
		"HTTP_TIMEOUT":    &cfg.HTTP.TimeoutStr,
		"SERVER_PORT":     &cfg.Server.Port,
		"DB_HOST":         &cfg.Database.Host,
		"DB_PORT":         &cfg.Database.Port,
		"DB_USER":         &cfg.Database.User,
		"DB_PASSWORD":     &cfg.Database.Password,
		"DB_NAME":         &cfg.Database.DBName,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
}

func (cfg *Config) finalize() error {
	if cfg.HTTP.TimeoutStr != "" {
		d, err := time.ParseDuration(cfg.HTTP.TimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse http timeout: %w", err)
		}
		cfg.HTTP.Timeout = d
	}
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}

	if cfg.Output.JSONPath == "" {
		return fmt.Errorf("output json_path must not be empty")
	}
	if cfg.Sources.AirportsURL == "" && cfg.LocalCSVPaths.Airports == "" {
		return fmt.Errorf("either sources.airports_url or local_csv_paths.airports must be set")
	}
	if cfg.Sources.FrequenciesURL == "" && cfg.LocalCSVPaths.Frequencies == "" {
		return fmt.Errorf("either sources.frequencies_url or local_csv_paths.frequencies must be set")
	}
	// Downloads land in LocalCSVPaths, so they are required when a URL is set.
	if cfg.Sources.AirportsURL != "" && cfg.LocalCSVPaths.Airports == "" {
		return fmt.Errorf("local_csv_paths.airports must be set to download %s", cfg.Sources.AirportsURL)
	}
	if cfg.Sources.FrequenciesURL != "" && cfg.LocalCSVPaths.Frequencies == "" {
		return fmt.Errorf("local_csv_paths.frequencies must be set to download %s", cfg.Sources.FrequenciesURL)
	}

	for _, p := range []string{cfg.LocalCSVPaths.Airports, cfg.LocalCSVPaths.Frequencies, cfg.Output.JSONPath} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
	}
	return nil
}
