package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/deverhart/folio/internal/common"
	"github.com/deverhart/folio/internal/mediaservice"
	"github.com/deverhart/folio/internal/postservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	postService   *postservice.PostService
	uploadService mediaservice.Uploader
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database. The pool lives for the whole process and is
	// shared across requests.
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the media host client
	uploadService, err := mediaservice.NewUploadService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Error("failed to configure the media upload client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		postService:   postservice.NewPostService(db, cache),
		uploadService: uploadService,
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
