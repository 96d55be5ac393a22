// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/infrastructure/database/gormdb"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/email"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("starting")

	db, err := gormdb.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.Health(context.Background()); err != nil {
		log.WithError(err).Fatal("database health check failed")
	}

	deps := &routes.Dependencies{
		Config: cfg,
		DB:     db.GetDB(),
		Logger: log,
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to Redis")
		}
		defer redisClient.Close()
		deps.Redis = redisClient.GetClient()
	}

	flash := catalog.DefaultFlashCatalog()
	if path := cfg.Catalog.FlashCatalogPath; path != "" {
		flash, err = catalog.LoadFlashCatalog(path)
		if err != nil {
			log.WithError(err).Fatal("failed to load flash catalog")
		}
	}
	deps.Flash = flash

	images, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise image storage")
	}
	deps.Images = images

	if cfg.External.Stripe.SecretKey != "" {
		deps.Intents = payment.NewStripeIntents(cfg.External.Stripe.SecretKey)
	} else {
		log.Warn("stripe secret key not set, card payments disabled")
	}

	mailer, err := email.NewEmailService(cfg, log.WithField("component", "email"))
	if err != nil {
		log.WithError(err).Fatal("failed to initialise email service")
	}
	deps.Mailer = mailer

	migration := gormdb.NewMigration(db.GetDB(), log)
	if err := migration.RunAutoMigrations(); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("index creation failed")
	}

	server := http.NewServer(deps)

	admin := cfg.Admin
	if !cfg.IsDevelopment() {
		admin = config.AdminConfig{}
	}
	if err := migration.SeedInitialData(server.Services().Catalog, server.Services().Customers, admin); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}

	log.Info("server shutdown completed")
}
