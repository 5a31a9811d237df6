package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-account-api/internal/config"
	"github.com/go-account-api/internal/infrastructure/dynamo"
	"github.com/go-account-api/internal/infrastructure/email"
	googleinfra "github.com/go-account-api/internal/infrastructure/google"
	jwtinfra "github.com/go-account-api/internal/infrastructure/jwt"
	"github.com/go-account-api/internal/pkg/logging"
	transporthttp "github.com/go-account-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	deps := &transporthttp.Deps{}

	// Document store (creates tables if they don't exist). Optional — the
	// server still answers /health and the email endpoints without it.
	if client, err := dynamo.NewClient(cfg); err == nil {
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTables)
		deps.AccountRepo = dynamo.NewAccountRepo(client, cfg.DynamoTables.Accounts)
		deps.ProfileRepo = dynamo.NewProfileRepo(client, cfg.DynamoTables.UserProfiles)
		deps.SetupTokenRepo = dynamo.NewSetupTokenRepo(client, cfg.DynamoTables.SetupTokens)
	} else {
		slog.Warn("document store not available", "err", err)
	}

	// JWT provider (optional — graceful fallback if keys are missing).
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		deps.JWTProvider = p
	} else {
		slog.Warn("JWT provider not available", "err", err)
	}

	if cfg.GoogleClientID != "" {
		deps.GoogleVerifier = googleinfra.NewVerifier(cfg.GoogleClientID)
	} else {
		slog.Warn("google sign-in not configured, GOOGLE_CLIENT_ID missing")
	}

	deps.Mailer = email.NewMailer(cfg)
	if !deps.Mailer.Configured() {
		slog.Warn("email delivery not configured, SMTP_HOST/SMTP_FROM missing")
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
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	slog.Info("server stopped")
}
