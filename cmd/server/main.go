// Command main is the entry point for the Bookclub backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bookclub/internal/bootstrap"
	"bookclub/internal/config"
	"bookclub/internal/observability"
	"bookclub/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing before the server so startup paths are traced
	shutdownTracing, err := observability.InitTracing(tracingConfigFromEnv(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Establish DB/Redis, dev-root admin, and built-in libraries
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedBuiltIns: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
		os.Exit(0)
	}()

	// Start server
	log.Fatal(srv.Start())
}

func tracingConfigFromEnv(cfg *config.Config) observability.TracingConfig {
	ratio := 1.0
	if raw := os.Getenv("TRACING_SAMPLER_RATIO"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			ratio = parsed
		}
	}

	return observability.TracingConfig{
		ServiceName:    "bookclub-api",
		ServiceVersion: "1.0",
		Environment:    cfg.Env,
		Enabled:        os.Getenv("TRACING_ENABLED") == "true",
		Exporter:       os.Getenv("TRACING_EXPORTER"),
		OTLPEndpoint:   os.Getenv("OTLP_ENDPOINT"),
		SamplerRatio:   ratio,
	}
}
