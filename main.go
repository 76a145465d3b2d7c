package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetop/dispatcher/internal/adapter/llm"
	"github.com/fleetop/dispatcher/internal/adapter/telemetry"
	"github.com/fleetop/dispatcher/internal/config"
	"github.com/fleetop/dispatcher/internal/locate"
	"github.com/fleetop/dispatcher/internal/repository"
	"github.com/fleetop/dispatcher/internal/resolve"
	"github.com/fleetop/dispatcher/internal/service"
	"github.com/fleetop/dispatcher/internal/tools"
	handler "github.com/fleetop/dispatcher/internal/transport/http"
	"github.com/fleetop/dispatcher/policy"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting dispatcher...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM URL: %s", cfg.LLMBaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize completion client
	completer := llm.NewCompleter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Initialize vehicle location sources. Live providers are optional; the
	// simulated source always runs so every org can locate something.
	sources := []telemetry.Source{telemetry.NewSimulatedSource(db)}
	if cfg.MotiveBaseURL != "" {
		sources = append(sources, telemetry.NewMotiveClient(cfg.MotiveBaseURL, cfg.MotiveAPIKey, cfg.ProviderTimeout))
	}
	if cfg.TelematicsBBaseURL != "" {
		sources = append(sources, telemetry.NewTelematicsBClient(cfg.TelematicsBBaseURL, cfg.TelematicsBAPIKey, cfg.ProviderTimeout))
	}
	locator := locate.New(cfg.ProviderTimeout, sources...)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize resolver, executor, and service
	resolver := resolve.New(db)
	executor := tools.NewExecutor(db, resolver, locator, policyEngine)
	svc := service.New(db, completer, executor, cfg)

	// Create HTTP server
	server := handler.NewServer(svc)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Dispatcher API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down dispatcher...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Dispatcher stopped")
}
