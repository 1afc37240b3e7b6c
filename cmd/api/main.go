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

	"github.com/joho/godotenv"
	"github.com/portfolio-backend/internal/config"
	"github.com/portfolio-backend/internal/infrastructure/dynamo"
	jwtinfra "github.com/portfolio-backend/internal/infrastructure/jwt"
	"github.com/portfolio-backend/internal/infrastructure/leetcode"
	"github.com/portfolio-backend/internal/infrastructure/resend"
	s3infra "github.com/portfolio-backend/internal/infrastructure/s3"
	"github.com/portfolio-backend/internal/infrastructure/sns"
	transporthttp "github.com/portfolio-backend/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider is optional; without keys verification simply skips the access token.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Snapshot archive is disabled when no bucket is configured.
	var snapshotStore *s3infra.Store
	if cfg.S3BucketName != "" {
		snapshotStore = s3infra.NewStore(s3infra.NewClient(cfg), cfg.S3BucketName)
	}

	// SNS SMS sender is optional; without it SMS sends fail with a delivery error.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		RateLimitRepo:  dynamo.NewRateLimitRepo(dynamoClient, cfg.DynamoTables.RateLimits),
		StatsRepo:      dynamo.NewLeetCodeStatsRepo(dynamoClient, cfg.DynamoTables.LeetCodeStats),
		LeetCodeClient: leetcode.NewClient(cfg),
		Mailer:         resend.NewClient(cfg),
		SMSSender:      smsSender,
		SnapshotStore:  snapshotStore,
		JWTProvider:    jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
