package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattiabonardi/endor-records/internal/repository"
	"github.com/mattiabonardi/endor-records/internal/seed"
	"github.com/mattiabonardi/endor-records/pkg/sdk"
	"github.com/mattiabonardi/endor-records/pkg/sdk_configuration"
	"github.com/mattiabonardi/endor-records/pkg/sdk_records"
	"github.com/mattiabonardi/endor-records/pkg/sdk_resource"
	"github.com/mattiabonardi/endor-records/pkg/sdk_server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	config, err := sdk_configuration.LoadConfiguration(os.Args[1:], ".env")
	if err != nil {
		log.Fatal(err)
	}

	logger, err := sdk.NewLogger(sdk.LogConfig{
		LogType: sdk.LogType(config.LogType),
		Level:   config.LogLevel,
	}, sdk.LogContext{})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if !config.EnvFileLoaded {
		logger.Debug(".env file not found, using environment only")
	}

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Printf)); err != nil {
		logger.WarnWithFields("Failed to set GOMAXPROCS", map[string]interface{}{"error": err.Error()})
	}

	if err := run(config, logger); err != nil {
		logger.ErrorWithStackTrace(err)
		os.Exit(1)
	}
}

func run(config *sdk_configuration.ServerConfig, logger *sdk.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	client, err := sdk.NewMongoClient(ctx, config.DocumentDBUri, config.ConnectionTimeout)
	if err != nil {
		return fmt.Errorf("invalid document database configuration: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.ErrorWithFields("Failed to disconnect from MongoDB", map[string]interface{}{"error": err.Error()})
		}
	}()

	// an unreachable store is not fatal: requests fail until it comes back
	connected := true
	if err := sdk.PingMongo(ctx, client, config.ConnectionTimeout); err != nil {
		connected = false
		logger.ErrorWithFields("Failed to connect to MongoDB", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Info("MongoDB connected successfully")
	}

	db := client.Database(config.DocumentDBName)
	repos := seed.Repositories{
		Users:        repository.NewMongoRecordRepository[sdk_records.User](db, sdk_records.Users.Collection, sdk_records.Users.Name),
		Blogs:        repository.NewMongoRecordRepository[sdk_records.Blog](db, sdk_records.Blogs.Collection, sdk_records.Blogs.Name),
		HotelRatings: repository.NewMongoRecordRepository[sdk_records.HotelRating](db, sdk_records.HotelRatings.Collection, sdk_records.HotelRatings.Name),
	}

	if connected && config.SeedOnStartup {
		seedDatabase(ctx, repos, logger)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	endor := sdk_server.NewEndorInitializer(logger).
		WithResources(
			sdk_resource.NewResourceHandler[sdk_records.User, sdk_records.UserPatch](sdk_records.Users, repos.Users, logger),
			sdk_resource.NewResourceHandler[sdk_records.Blog, sdk_records.BlogPatch](sdk_records.Blogs, repos.Blogs, logger),
			sdk_resource.NewResourceHandler[sdk_records.HotelRating, sdk_records.HotelRatingPatch](sdk_records.HotelRatings, repos.HotelRatings, logger),
		).
		WithRegistry(registry).
		WithHealthCheck(func(ctx context.Context) error {
			return sdk.PingMongo(ctx, client, config.ConnectionTimeout)
		}).
		WithShutdownTimeout(config.ShutdownTimeout).
		Build()

	return endor.Run(ctx, config.Addr())
}

func seedDatabase(ctx context.Context, repos seed.Repositories, logger *sdk.Logger) {
	doc, err := seed.Default()
	if err != nil {
		logger.ErrorWithStackTrace(err)
		return
	}

	inserted, err := seed.Run(ctx, doc, repos, time.Now())
	if err != nil {
		logger.ErrorWithFields("Failed to insert seed data", map[string]interface{}{
			"error":    err.Error(),
			"inserted": inserted,
		})
		return
	}
	logger.InfoWithFields("Seed data inserted", map[string]interface{}{"inserted": inserted})
}
