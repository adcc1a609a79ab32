package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"foodfast-user-service/internal/config"
	"foodfast-user-service/internal/events"
	"foodfast-user-service/internal/infrastructure/database/postgres"
	"foodfast-user-service/internal/logger"
	"foodfast-user-service/internal/routes"
	"foodfast-user-service/pkg/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting user service",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Event publication is best-effort: a broker outage degrades
	// restaurant onboarding notifications, never account creation.
	brokerClient := mqtt.NewClient(&mqtt.Config{
		Broker:               cfg.Events.Broker,
		ClientID:             cfg.Events.ClientID,
		Username:             cfg.Events.Username,
		Password:             cfg.Events.Password,
		CleanSession:         true,
		KeepAlive:            30,
		ConnectTimeout:       cfg.Events.ConnectTimeout,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
	})
	if err := brokerClient.Connect(); err != nil {
		logger.Warn("Event broker unavailable, restaurant events will fail until it reconnects",
			zap.Error(err),
		)
	}
	defer brokerClient.Disconnect()

	publisher := events.NewMQTTPublisher(brokerClient, byte(cfg.Events.QoS))

	router := routes.SetupRoutes(cfg, db, publisher)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
