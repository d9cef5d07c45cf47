// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/infrastructure/database/postgres"
	"github.com/your-org/boutique-store/internal/infrastructure/database/redis"
	"github.com/your-org/boutique-store/internal/interfaces/http"
	"github.com/your-org/boutique-store/internal/pkg/auth"
	"github.com/your-org/boutique-store/internal/pkg/logger"
	"github.com/your-org/boutique-store/internal/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	appLogger := logger.New(cfg.Logging)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	if err := redisClient.Health(context.Background()); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB())

	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		log.Printf("Warning: Index creation failed: %v", err)
	}

	if cfg.Seed.Enabled {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := migration.SeedInitialData(seedCtx, cfg.Seed, auth.NewPasswordManager(cfg.Security.BcryptCost))
		cancel()
		if err != nil {
			log.Printf("Warning: Data seeding failed: %v", err)
		}
	}

	if cfg.IsDevelopment() {
		if err := migration.GetTableInfo(); err != nil {
			log.Printf("Warning: Table info failed: %v", err)
		}
	}

	// Outbound WhatsApp messages for confirmed orders
	sender, err := messaging.NewService(cfg.Messaging, appLogger)
	if err != nil {
		log.Fatalf("Failed to configure messaging: %v", err)
	}
	log.Printf("📨 Messaging provider: %s", sender.Provider())

	log.Println("✅ All systems operational!")

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), appLogger, sender)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
