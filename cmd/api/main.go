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

	"github.com/hrms-lite/api/internal/config"
	"github.com/hrms-lite/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/hrms-lite/api/internal/infrastructure/jwt"
	"github.com/hrms-lite/api/internal/infrastructure/smtp"
	snsinfra "github.com/hrms-lite/api/internal/infrastructure/sns"
	"github.com/hrms-lite/api/internal/pkg/otp"
	transporthttp "github.com/hrms-lite/api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// A missing signing secret is a configuration error: fail fast, don't retry.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	if len(cfg.FixedCodeAccounts) > 0 {
		log.Printf("WARN: %d fixed-code account(s) enabled — login codes for these are static", len(cfg.FixedCodeAccounts))
	}

	// SNS SMS sender (optional — graceful fallback).
	var smsSender snsinfra.SMSSender
	if sender, err := snsinfra.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		EmployeeRepo:   dynamo.NewEmployeeRepo(dynamoClient, cfg.DynamoTables.Employees),
		AttendanceRepo: dynamo.NewAttendanceRepo(dynamoClient, cfg.DynamoTables.Attendance),
		OTPStore:       otp.NewStore(cfg.OTPTTL, cfg.FixedCodeAccounts),
		Mailer:         smtp.NewMailer(cfg),
		SMSSender:      smsSender,
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
