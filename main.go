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

	"github.com/vrsandeep/mango-easyyomi/internal/api"
	"github.com/vrsandeep/mango-easyyomi/internal/config"
	"github.com/vrsandeep/mango-easyyomi/internal/core"
	"github.com/vrsandeep/mango-easyyomi/internal/settings"
	"github.com/vrsandeep/mango-easyyomi/internal/sources"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New()
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// Register one source per configured suffix. Each reads its settings
	// once, here; changes saved later take effect on the next start.
	created, err := app.CreateSources()
	if err != nil {
		log.Fatalf("Could not create sources: %v", err)
	}
	for _, src := range created {
		info := src.Info()
		sources.Register(src)
		log.Printf("Registered source %q (id %d)", info.Name, info.ID)
	}

	config.Watch(func(path string) {
		log.Printf("Config file %s changed. %s", path, settings.RestartNotice)
	})

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}
	// --- Graceful Shutdown ---
	// Start the server in a goroutine so it doesn't block.
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Wait for an interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a context with a timeout to allow existing connections to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
