package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carehome-backend/config"
	"carehome-backend/internal/api"
	"carehome-backend/internal/db"
	"carehome-backend/internal/facility"
	"carehome-backend/internal/fixture"
	"carehome-backend/internal/notification"
	"carehome-backend/internal/persister"
	"carehome-backend/internal/store"

	"github.com/SherClockHolmes/webpush-go"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "carehome-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// The in-memory core is authoritative; the database only holds
	// snapshots of it.
	loc, err := cfg.Facility.Location()
	if err != nil {
		logger.Fatalf("failed to resolve facility timezone: %v", err)
	}
	core := facility.New(facility.RealClock{Location: loc})

	st, found, err := appStore.LoadSnapshot(ctx)
	if err != nil {
		logger.Fatalf("failed to load snapshot: %v", err)
	}
	if found {
		if err := core.Restore(st); err != nil {
			logger.Fatalf("failed to restore snapshot: %v", err)
		}
		logger.Println("facility state restored from snapshot")
	} else {
		if err := fixture.Bootstrap(core); err != nil {
			logger.Fatalf("failed to seed facility: %v", err)
		}
		logger.Println("no snapshot found, facility seeded with sample data")
	}

	// Push is optional: without VAPID keys the API still runs, it just
	// never notifies anyone.
	var webpushOptions *webpush.Options
	var pool *notification.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		logger.Println("push notification worker pool started")
	} else {
		logger.Println("VAPID keys not configured, push notifications disabled")
	}

	// Periodic snapshot persister
	persisterSvc := persister.NewService(&cfg.Snapshot, core, appStore)
	go persisterSvc.Run(ctx)

	// Initialize router
	router := api.NewRouter(core, appStore, webpushOptions, pool, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	// One last snapshot so nothing since the previous interval is lost.
	persisterSvc.SaveOnce(shutdownCtx)

	logger.Println("Server gracefully stopped")
}
