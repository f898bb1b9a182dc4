package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"jamaluki-backend/config"
	"jamaluki-backend/routes"
	"jamaluki-backend/services"
	"jamaluki-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg)

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET environment variable is required")
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Database connection failed")
	}

	gormStore := store.NewGormStore(db)
	if err := gormStore.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Migration failed")
	}

	var st store.Store = gormStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis unavailable, running without cache")
		} else {
			st = store.NewCachedStore(gormStore, store.NewRedisCache(client), cfg.CacheTTL)
			logrus.WithField("addr", cfg.RedisAddr).Info("Redis cache enabled")
		}
		cancel()
	}

	seeded, err := store.SeedServiceCategories(context.Background(), st)
	if err != nil {
		logrus.WithError(err).Fatal("Seeding service categories failed")
	}
	if seeded > 0 {
		logrus.WithField("count", seeded).Info("Seeded service categories")
	}

	opts := services.Options{
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiry,
	}
	if cfg.RecomputeAppointmentTotals {
		opts.Totals = services.RecomputeTotals{}
	}
	if cfg.StrictStatusTransitions {
		opts.Transitions = services.StrictTransitions
	}
	svc := services.New(st, opts)

	scheduler := services.NewOfferScheduler(svc.Offers, cfg.OfferExpirySchedule)
	if err := scheduler.Start(); err != nil {
		logrus.WithError(err).Fatal("Offer scheduler failed to start")
	}
	defer scheduler.Stop()

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get sql.DB")
	}

	r := routes.SetupRouter(routes.Options{
		Services:             svc,
		JWTSecret:            cfg.JWTSecret,
		CORSOrigins:          cfg.CORSOrigins,
		SlowRequestThreshold: cfg.SlowRequestThreshold,
		DBPing:               sqlDB.PingContext,
	})
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		printRoutes(r)
	}

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
