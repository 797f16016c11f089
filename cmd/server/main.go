package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labrecord/backend/internal/config"
	"github.com/labrecord/backend/internal/database"
	"github.com/labrecord/backend/internal/handlers"
	"github.com/labrecord/backend/internal/storage"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var store storage.ImageStore
	if cfg.MinIO.Enabled {
		store, err = storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			log.Fatalf("minio initialization failed: %v", err)
		}
	} else {
		store, err = storage.NewLocalStore(cfg.Uploads.Dir)
		if err != nil {
			log.Fatalf("uploads directory initialization failed: %v", err)
		}
	}

	app := handlers.NewApp(db, cfg, store)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server_starting", map[string]interface{}{
		"port":          cfg.Server.Port,
		"address":       listenAddr,
		"minio_enabled": cfg.MinIO.Enabled,
		"ldap_enabled":  cfg.LDAP.Enabled,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
