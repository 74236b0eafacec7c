package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"reelgrid/api"
	"reelgrid/config"
	"reelgrid/handlers"
	"reelgrid/services/metadata"
	"reelgrid/services/player"
	"reelgrid/utils"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("reelgrid backend starting...")

	// Determine config path (env or default)
	configPath := os.Getenv("REELGRID_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			// Redirect standard log to both console and file
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	if settings.Metadata.TMDBAPIKey == "" {
		log.Printf("Warning: no TMDB API key configured; catalog requests will fail until one is set")
	}

	metadataService := metadata.NewService(
		settings.Metadata.TMDBAPIKey,
		settings.Metadata.Language,
		settings.Cache.Directory,
		settings.Cache.MetadataTTLSeconds,
		settings.Metadata.MaxRetries,
		afero.NewOsFs(),
	)

	sessionManager := player.NewManager(
		settings.Player.OverlayHideSeconds,
		settings.Player.SessionMaxIdleMinutes,
	)

	settingsHandler := handlers.NewSettingsHandler(cfgManager)
	settingsHandler.SetMetadataService(metadataService)

	router := utils.NewRouter()
	api.RegisterRoutes(router, api.Handlers{
		Homepage: handlers.NewHomepageHandler(metadataService, settings.Player.HeroRotationSeconds),
		Catalog:  handlers.NewCatalogHandler(metadataService),
		Details:  handlers.NewDetailsHandler(metadataService),
		Watch:    handlers.NewWatchHandler(metadataService),
		Search:   handlers.NewSearchHandler(metadataService),
		Player:   handlers.NewPlayerHandler(sessionManager),
		Settings: settingsHandler,
	})

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
