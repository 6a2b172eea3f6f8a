package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-log/internal/adapters/storage/jsonfile"
	"pet-care-log/internal/adapters/storage/postgres"
	"pet-care-log/internal/config"
	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/reminders"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/router"
	"pet-care-log/internal/scheduler"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "pet-care-log",
	})

	var (
		petRepo pets.Repository
		actRepo activities.Repository
		remRepo reminders.Repository
	)

	// Backend: DB_DSN => Postgres; si no, snapshot JSON en DATA_DIR.
	if cfg.DatabaseDSN != "" {
		db, err := postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		petRepo = postgres.NewPetsRepo(db)
		actRepo = postgres.NewActivitiesRepo(db)
		remRepo = postgres.NewRemindersRepo(db)
		log.Info("storage backend", map[string]any{"backend": "postgres"})
	} else {
		store, err := jsonfile.Open(cfg.DataDir, log)
		if err != nil {
			log.Error("jsonfile open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}

		petRepo = store.PetRepo()
		actRepo = store.ActivityRepo()
		remRepo = store.ReminderRepo()
		log.Info("storage backend", map[string]any{"backend": "jsonfile", "path": store.Path()})
	}

	petsSvc := pets.NewService(petRepo)
	actSvc := activities.NewService(actRepo)
	remSvc := reminders.NewService(remRepo)

	sweeper := scheduler.New(remSvc, log, cfg.LocalTimezone)
	if err := sweeper.Start(); err != nil {
		log.Error("sweeper start failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	r := router.NewRouter(router.Options{
		Pets:       petsSvc,
		Activities: actSvc,
		Reminders:  remSvc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	waitForShutdown(srv, sweeper, log)
}

func waitForShutdown(srv *http.Server, sweeper *scheduler.Sweeper, log logger.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
}
