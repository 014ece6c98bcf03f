package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/avinava/panelhost/internal/infrastructure/config"
	"github.com/avinava/panelhost/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override environment for development convenience
	port := flag.String("port", cfg.Server.Port, "Server port")
	manifest := flag.String("manifest", cfg.Panels.ManifestPath, "Panel manifest path")
	assets := flag.String("assets", cfg.Panels.AssetRoot, "Bundled asset directory")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Panels.ManifestPath = *manifest
	cfg.Panels.AssetRoot = *assets

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
