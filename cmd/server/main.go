package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/faces-agency/talent-sync/internal/api"
	"github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/pkg/logger"
	"github.com/faces-agency/talent-sync/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.HubSpot.AccessToken == "" {
		log.Fatal("HUBSPOT_ACCESS_TOKEN is required")
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := store.NewApplicationRepo(db)
	crm := hubspot.NewClient(cfg.HubSpot)
	handlers := api.NewHandlers(repo, crm)

	var rateLimit func(http.Handler) http.Handler
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unavailable, submissions will not be rate limited", "error", err)
		} else {
			rateLimit = api.RateLimit(rdb, cfg.Redis.SubmitPerMin)
			logger.Info("submission rate limiting enabled",
				"per_minute", cfg.Redis.SubmitPerMin)
		}
	}

	router := api.SetupRoutes(handlers, api.RouterOptions{
		AdminToken:     cfg.Admin.APIToken,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      rateLimit,
	})

	server := api.NewServer(cfg.Server, router)
	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
