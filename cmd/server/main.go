package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Stock-Lot-Ledger/internal/api"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/api/middleware"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/config"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/database"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/repository"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/service"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Bootstrap schema
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	err = database.Migrate(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	lotRepo := repository.NewLotRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	ledgerService := service.NewLedgerService(db, lotRepo, saleRepo)
	maintenanceService := service.NewMaintenanceService(db)

	if cfg.Maintenance.Schedule != "" {
		scheduler, err := maintenanceService.Schedule(cfg.Maintenance.Schedule)
		if err != nil {
			log.Fatalf("Failed to schedule maintenance: %v", err)
		}
		defer scheduler.Stop()
		log.Printf("Database maintenance scheduled: %s", cfg.Maintenance.Schedule)
	}

	ownerAuth := middleware.NewOwnerAuth(cfg.Auth.OwnerTokenKeys, cfg.Auth.OwnerTokenTTL)

	// Create router
	router := api.NewRouter(systemService, ledgerService, ownerAuth, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run the server until an interrupt, then shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, server); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	log.Println("Server exited")
}

// run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests for up to 30 seconds.
func run(ctx context.Context, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server %s on %s", version.Version, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
