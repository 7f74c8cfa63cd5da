// main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gewnthar/airportmin/config"
	"github.com/gewnthar/airportmin/database"
	"github.com/gewnthar/airportmin/handlers"
	"github.com/gewnthar/airportmin/services"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml. Defaults to the first of config.yaml, config/config.yaml, ../config/config.yaml that exists.")
	serve := flag.Bool("serve", false, "Serve the dataset and admin endpoints over HTTP instead of building once and exiting.")
	flag.Parse()

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig
	log.Printf("Airports CSV: %s (local: %s)", cfg.Sources.AirportsURL, cfg.LocalCSVPaths.Airports)
	log.Printf("Frequencies CSV: %s (local: %s)", cfg.Sources.FrequenciesURL, cfg.LocalCSVPaths.Frequencies)

	if cfg.Database.Enabled() {
		if err := database.InitDB(cfg.Database); err != nil {
			log.Fatalf("Error initializing database: %v", err)
		}
		defer database.CloseDB()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*serve {
		if _, err := services.RunBuild(ctx, cfg); err != nil {
			log.Printf("Build failed: %v", err)
			database.CloseDB()
			os.Exit(1)
		}
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handlers.HealthHandler)
	mux.HandleFunc("/api/airports", handlers.GetAirportsHandler)
	mux.HandleFunc("/api/admin/rebuild", handlers.RebuildDatasetHandler)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: mux}
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		srv.Shutdown(context.Background())
	}()

	log.Printf("Server starting on http://localhost%s\n", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Error starting server: %v", err)
	}
}
