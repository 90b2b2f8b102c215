package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/miguelocque/PetTrackr/internal/adapters/storage/postgres"
	"github.com/miguelocque/PetTrackr/internal/platform/config"
	"github.com/miguelocque/PetTrackr/internal/platform/logger"
	"github.com/miguelocque/PetTrackr/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.ParseLevel(cfg.LogLevel), logger.ParseFormat(cfg.LogFormat))

	opts := router.Options{Config: cfg, Logger: log}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connect failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = postgres.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Error("schema setup failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("storage ready", map[string]any{"backend": "postgres"})
	} else {
		log.Info("storage ready", map[string]any{"backend": "memory"})
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.New(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("listening", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
