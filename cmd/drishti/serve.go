package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drishti/internal/aimatch"
	"drishti/internal/db"
	"drishti/internal/server"
	"drishti/internal/storage"
	"drishti/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	roleRepo := store.NewRoleRepository(pool)
	userRepo := store.NewUserRepository(pool)
	requestRepo := store.NewRequestRepository(pool)
	notificationRepo := store.NewNotificationRepository(pool)
	reportRepo := store.NewReportRepository(pool)
	statsRepo := store.NewStatsRepository(pool)

	var fileStorage storage.Storage
	switch config.StorageBackend {
	case "s3":
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		fileStorage = storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3BucketName)
	default:
		fileStorage, err = storage.NewDiskStorage(config.UploadDir)
		if err != nil {
			return err
		}
	}

	var matcher *aimatch.Client
	if config.AIAPIURL != "" {
		matcher = aimatch.NewClient(config.AIAPIURL)
	} else {
		logger.Warn("AI_API_URL not set, face match checks disabled")
	}

	srv, err := server.New(
		config,
		logger,
		roleRepo,
		userRepo,
		requestRepo,
		notificationRepo,
		reportRepo,
		statsRepo,
		fileStorage,
		matcher,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
