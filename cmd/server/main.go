package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/config"
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/logger"
	"github.com/yukikurage/project-tracker/internal/router"
	"github.com/yukikurage/project-tracker/internal/storage"
	"github.com/yukikurage/project-tracker/internal/utils"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	if cfg.Session.Secret == "" {
		secret, err := utils.GenerateSecret(32)
		if err != nil {
			slog.Error("failed to generate session secret", "err", err)
			os.Exit(1)
		}
		cfg.Session.Secret = secret
		slog.Warn("SESSION_SECRET not set; generated a random one, sessions will not survive a restart")
	}

	// Connect to database
	db, err := database.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	store, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		slog.Error("failed to open upload directory", "dir", cfg.Storage.UploadDir, "err", err)
		os.Exit(1)
	}

	r, err := router.New(router.Deps{
		Config: cfg,
		DB:     db,
		Store:  store,
	})
	if err != nil {
		slog.Error("failed to build router", "err", err)
		os.Exit(1)
	}

	// Start server
	slog.Info("server starting", "addr", cfg.Addr(), "driver", cfg.Database.Driver, "session_store", cfg.Session.Store)
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
