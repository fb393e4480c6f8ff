package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelia/ai-studio-server/internal/api"
	"github.com/modelia/ai-studio-server/internal/auth"
	"github.com/modelia/ai-studio-server/internal/config"
	"github.com/modelia/ai-studio-server/internal/repositories"
	"github.com/modelia/ai-studio-server/internal/storage"
)

// @title Mini AI Studio API
// @version 0.1.0
// @description Authenticated image + prompt submissions against a simulated generation backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	db, err := repositories.Connect(cfg.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store := storage.FromConfig(cfg)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	srv := api.New(cfg, db, store, tokens)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: srv.Routes(),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting Mini AI Studio server on port: %s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
	}
}
