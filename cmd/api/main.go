package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakarovPetr2004/foodgram-project-react/config"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/database"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/server"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGormDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sqlDB, err := database.New(cfg)
	if err != nil {
		log.Printf("Health-check connection unavailable: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, logout denylist disabled: %v", err)
		redisClient = nil
	}

	var images service.ImageStore
	if s3Config, err := config.NewS3Config(context.Background()); err == nil {
		images = service.NewS3ImageStore(s3Config)
	} else {
		log.Printf("S3 unavailable, storing image references verbatim: %v", err)
	}

	srv := server.New(cfg, db, sqlDB, redisClient, images)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
