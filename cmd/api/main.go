package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SandeepaChathumina/Grocery-System/internal/api"
	"github.com/SandeepaChathumina/Grocery-System/internal/config"
	"github.com/SandeepaChathumina/Grocery-System/internal/modules/deliveries"
	"github.com/SandeepaChathumina/Grocery-System/internal/modules/users"
	"github.com/SandeepaChathumina/Grocery-System/pkg/email"
	"github.com/SandeepaChathumina/Grocery-System/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		// Tokens won't survive a restart without a configured secret.
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		cfg.JWTSecret = secret
		log.Println("WARNING: JWT_SECRET not set, using an ephemeral secret")
	}

	e := echo.New()

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database Connection ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database configuration: %v", err)
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	e.Logger.Info("Successfully connected to the database!")

	// 4. --- Optional Infrastructure (cache, email) ---
	var cache *deliveries.Cache
	if cfg.RedisAddr != "" {
		cache, err = deliveries.NewCache(cfg.RedisAddr)
		if err != nil {
			log.Printf("WARNING: redis unavailable at %s, running without cache: %v", cfg.RedisAddr, err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var notifier deliveries.Notifier
	if cfg.EmailSender != "" {
		sender, err := email.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.EmailSender)
		if err != nil {
			log.Fatalf("Failed to initialize SES sender: %v", err)
		}
		templates, err := email.NewTemplateManager()
		if err != nil {
			log.Fatalf("Failed to parse email templates: %v", err)
		}
		notifier = deliveries.NewEmailNotifier(sender, templates)
	}

	// 5. --- Dependency Injection ---
	userRepo := users.NewRepository(dbPool)
	userService := users.NewService(userRepo, cfg.JWTSecret)
	userHandler := users.NewHandler(userService)

	deliveryRepo := deliveries.NewRepository(dbPool)
	deliveryService := deliveries.NewService(deliveryRepo, cache, notifier)
	deliveryHandler := deliveries.NewHandler(deliveryService)

	// 6. --- Routes ---
	api.SetupRoutes(e, cfg.JWTSecret, userHandler, deliveryHandler)

	// 7. --- Start Server with graceful shutdown ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server, an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
