package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanju-subash/Cloudnest-rag/config"
	"github.com/sanju-subash/Cloudnest-rag/dialogue"
	"github.com/sanju-subash/Cloudnest-rag/gemini"
	"github.com/sanju-subash/Cloudnest-rag/knowledge"
	"github.com/sanju-subash/Cloudnest-rag/server"
	"github.com/sanju-subash/Cloudnest-rag/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Knowledge file: a startup read failure is non-fatal, the engine
	// surfaces the sentinel answer until the file becomes readable
	kb := knowledge.NewStore(cfg.DataPath)
	log.Printf("📖 Knowledge file: %s", cfg.DataPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// GenAI fallback: missing key degrades to retrieval-only mode
	fallback := gemini.New(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	if initErr := fallback.InitError(); initErr != "" {
		log.Printf("⚠️ GenAI fallback disabled: %s", initErr)
	}

	// Session store with periodic idle cleanup
	store := session.NewStore(cfg)
	go store.StartCleanupRoutine(ctx)

	engine := dialogue.NewEngine(kb, store, fallback, cfg.TopKContext, cfg.GenerateTimeout)
	srv := server.New(cfg, engine, store)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
