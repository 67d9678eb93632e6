package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pcruz7/notebook-be/internal/api"
	"github.com/pcruz7/notebook-be/internal/auth"
	"github.com/pcruz7/notebook-be/internal/config"
	"github.com/pcruz7/notebook-be/internal/database"
	"github.com/pcruz7/notebook-be/internal/logger"
	"github.com/pcruz7/notebook-be/internal/monitoring"
	"github.com/pcruz7/notebook-be/internal/services"
	"github.com/pcruz7/notebook-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	auth.Init(cfg.JWTSecret)

	// Ensure the base directory for backups exists
	if err := os.MkdirAll(cfg.BackupPath, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create backup directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	noteService := services.NewNoteService(db)
	eventService := services.NewEventService(db)
	backupService := services.NewBackupService(db, eventService, cfg.BackupPath)

	// Set up and run the background backup scheduler
	backupScheduler, err := monitoring.NewBackupScheduler(backupService, cfg.BackupSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up backup scheduler")
	}
	go backupScheduler.Run()

	// Set up router
	router := api.NewRouter(hub, userService, noteService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	backupScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
