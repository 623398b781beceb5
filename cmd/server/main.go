package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpattn/datamask/internal/api"
	"github.com/rpattn/datamask/internal/config"
	"github.com/rpattn/datamask/internal/db"
	"github.com/rpattn/datamask/internal/middleware"
	"github.com/rpattn/datamask/internal/repository"
	"github.com/rpattn/datamask/internal/session"

	"github.com/rs/cors"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The dashboard source is optional; without it only action dispatch is served
	var dashboardRepo repository.DashboardRepository
	if cfg.Database.Enabled {
		if err := db.RunMigrations(cfg.Database.Config); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		conn, err := db.NewConnection(ctx, cfg.Database.Config)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()

		dashboardRepo = repository.NewDashboardRepository(conn.Pool)
		log.Printf("[DB] Dashboard source connected to %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	sessions := session.NewManager(cfg.Sessions.Capacity, cfg.Sessions.TTL)

	var handler http.Handler = api.NewHTTPHandler(sessions)
	if dashboardRepo != nil {
		handler = middleware.DataLoaderMiddleware(dashboardRepo)(handler)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler.Handler(middleware.LoggingMiddleware(handler)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Starting data mask server on %s", cfg.Server.Addr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
