// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	app "github.com/alchemorsel/nutriplan/internal/application/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/config"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/monitoring"
	gormRepo "github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/postgres"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/alchemorsel/nutriplan/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigPath names the configuration file to load; empty uses the search paths
type ConfigPath string

// Options assembles the application graph for the given config file
func Options(configPath string) fx.Option {
	return fx.Options(
		fx.Supply(ConfigPath(configPath)),

		// Infrastructure modules
		ConfigModule,
		LoggerModule,
		DatabaseModule,
		CacheModule,
		MonitoringModule,

		// Repository modules
		RepositoryModule,

		// Domain and service modules
		NutritionModule,
		ServiceModule,

		// HTTP modules
		HTTPModule,

		// Lifecycle hooks
		LifecycleModule,
	)
}

// Module provides all dependency injection modules
var Module = Options("")

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(loggerConfig(cfg))
	},
)

// loggerConfig never enables development logging in production
func loggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug && !cfg.IsProduction(),
	}
}

// DatabaseModule provides the gorm connection for the configured driver
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		var (
			db  *gorm.DB
			err error
		)
		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgres.Open(context.Background(), cfg, log)
		default:
			db, err = sqlite.SetupDatabase(cfg.Database.Path, cfg.Database.LogLevel, log)
		}
		if err != nil {
			return nil, err
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(context.Background(), db); err != nil {
				return nil, fmt.Errorf("failed to seed database: %w", err)
			}
			log.Info("Database seeded with demo data")
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})

		log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))
		return db, nil
	},
)

// CacheModule provides the report cache. Redis is used when enabled and must
// be reachable at startup; otherwise reports live in process memory.
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			cache := memory.NewCacheRepository(cfg.Cache.CleanupInterval)
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return cache.Close()
				},
			})
			log.Info("Using in-memory report cache")
			return cache, nil
		}

		client, err := redis.NewClient(context.Background(), cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return redis.NewCacheRepository(client, log), nil
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewRegistry,
	func(reg *prometheus.Registry) *monitoring.NutritionMetrics {
		return monitoring.NewNutritionMetrics(reg)
	},
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		provider, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			Insecure:       cfg.Monitoring.OTLPInsecure,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: provider.Shutdown})
		return provider, nil
	},
	func(provider *monitoring.TracingProvider) trace.Tracer {
		return provider.Tracer()
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewProfileRepository,
	gormRepo.NewRecipeCatalogRepository,
)

// NutritionModule provides the planning engine
var NutritionModule = fx.Provide(
	func(log *zap.Logger) *nutrition.Planner {
		return nutrition.NewPlanner(log.Named("nutrition-planner"))
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		cfg *config.Config,
		profiles outbound.ProfileRepository,
		catalog outbound.RecipeCatalogRepository,
		cache outbound.CacheRepository,
		planner *nutrition.Planner,
		metrics *monitoring.NutritionMetrics,
		tracer trace.Tracer,
		log *zap.Logger,
	) inbound.NutritionService {
		return app.NewNutritionService(profiles, catalog, cache, planner, metrics, tracer, log, app.Config{
			DefaultPolicy:   cfg.Nutrition.DefaultPolicy,
			ReportTTL:       cfg.Cache.ReportTTL,
			WeekConcurrency: cfg.Nutrition.WeekConcurrency,
			DaysPerWeek:     cfg.Nutrition.DaysPerWeek,
		})
	},
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HTTPModule provides the API server and its health checks
var HTTPModule = fx.Provide(
	func(db *gorm.DB, cache outbound.CacheRepository) map[string]apiserver.HealthCheck {
		checks := map[string]apiserver.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		}
		if p, ok := cache.(pinger); ok {
			checks["cache"] = p.Ping
		}
		return checks
	},
	apiserver.NewServer,
)

// LifecycleModule registers server start and stop hooks
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks starts the API server with the application and
// drains it on stop
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	srv *apiserver.Server,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					log.Error("API server stopped unexpectedly", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Server shutdown failed", zap.Error(err))
				return err
			}
			_ = log.Sync()
			return nil
		},
	})
}
