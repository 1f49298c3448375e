package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/internal/config"
	"gymdesk/internal/db"
	"gymdesk/internal/email"
	"gymdesk/internal/logger"
	"gymdesk/internal/membership"
	"gymdesk/internal/person"
	"gymdesk/internal/reservation"
	"gymdesk/internal/server"

	"github.com/redis/go-redis/v9"
)

// @title GymDesk API
// @version 1.0
// @description API de gestión de gimnasio: socios, membresías, clases, reservas y pagos.
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	defer logger.Sync()

	logger.Info("starting gymdesk")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("connecting to database: %v", err)
	}
	defer database.Close()
	logger.Info("database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("running migrations: %v", err)
	}
	logger.Info("migrations up to date")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	emailService := email.New(rdb,
		cfg.EmailFrom, cfg.EmailFromName,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
	)
	go emailService.Start(ctx)

	sweeper := reservation.NewNoShowSweeper(reservation.NewRepository(database), time.Hour)
	sweeper.Start(ctx)

	notifier := email.NewNotifier(emailService, person.NewRepository(database))
	expiry := membership.NewExpirySweeper(membership.NewRepository(database), notifier, 24*time.Hour)
	expiry.Start(ctx)

	srv := server.New(database, rdb, cfg, emailService)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutting down server: %v", err)
	}

	logger.Info("server stopped")
}
