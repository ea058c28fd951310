// Package main implements the gomoku server with a RESTful API, long-poll
// game updates and an optional SQLite audit log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gomoku/cmd/gomoku-server/cli"
	"gomoku/internal/http"
	"gomoku/internal/processor"
	"gomoku/internal/service"
	"gomoku/internal/storage"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables the audit log if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
		idleTTL     = flag.Duration("idle-ttl", service.DefaultIdleTTL, "Evict games idle for longer than this")
		proxies     = flag.String("trusted-proxies", "", "Comma-separated proxy IPs/CIDRs whose X-Forwarded-For is trusted")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}
	if *idleTTL <= 0 {
		log.Fatal("Error: -idle-ttl must be positive")
	}

	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Storage (optional), closed by the service on shutdown
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing audit log at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Audit log disabled (use -storage-path to enable)")
	}

	// 2. Service
	svc := service.New(store)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval, *idleTTL)

	// 3. Processor and HTTP app
	proc := processor.New(svc)
	var trusted []string
	for _, p := range strings.Split(*proxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			trusted = append(trusted, p)
		}
	}
	app := http.NewFiberApp(proc, svc, *dev, trusted...)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Gomoku API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		if *storagePath != "" {
			log.Printf("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Printf("Storage: Disabled")
		}
		log.Printf("Idle game TTL: %v", *idleTTL)
		if len(trusted) > 0 {
			log.Printf("Trusted proxies: %s", strings.Join(trusted, ", "))
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	// Release long-poll waiters before draining HTTP connections
	if err := svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cleanupCancel()

	log.Println("Server exited")
}
