package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/labelcheck/backend/config"
	httpDelivery "github.com/labelcheck/backend/internal/delivery/http"
	"github.com/labelcheck/backend/internal/infrastructure/cache"
	"github.com/labelcheck/backend/internal/infrastructure/vision"
	"github.com/labelcheck/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LabelCheck Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	visionClient, err := vision.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("Failed to initialize vision client: %v", err)
	}
	defer visionClient.Close()
	log.Printf("Vision model: %s", cfg.Gemini.Model)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		visionClient.SetDebug(true)
		log.Printf("Vision client debug mode enabled")
	}

	// Initialize usecase layer
	verificationService := usecase.NewVerificationService(usecase.VerificationServiceConfig{
		FuzzyThreshold:     cfg.Verify.FuzzyThreshold,
		CategoryFloor:      cfg.Verify.CategoryFloor,
		ABVTolerance:       cfg.Verify.ABVTolerance,
		EnableDebugLogging: cfg.Verify.EnableDebugLogging,
	})

	log.Printf("Verification: threshold=%d, category floor=%.0f, abv tolerance=%.1f, debug=%v",
		cfg.Verify.FuzzyThreshold,
		cfg.Verify.CategoryFloor,
		cfg.Verify.ABVTolerance,
		cfg.Verify.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(verificationService, visionClient, memoryCache, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
