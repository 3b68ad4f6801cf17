// Command api serves the storefront dashboard HTTP API.
//
// @title                       Storefront Dashboard API
// @version                     1.0
// @description                 Authentication, catalog, orders and dashboard analytics.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/storefront/dashboard-api/docs"
	"github.com/storefront/dashboard-api/internal/api"
	"github.com/storefront/dashboard-api/internal/api/metrics"
	"github.com/storefront/dashboard-api/internal/core/ports"
	"github.com/storefront/dashboard-api/internal/core/service"
	"github.com/storefront/dashboard-api/internal/infrastructure/config"
	"github.com/storefront/dashboard-api/internal/infrastructure/db/mongo"
	"github.com/storefront/dashboard-api/internal/infrastructure/db/redis"
	"github.com/storefront/dashboard-api/internal/infrastructure/db/sqlite"
	"github.com/storefront/dashboard-api/internal/infrastructure/http/handlers"
	"github.com/storefront/dashboard-api/internal/infrastructure/queue"
	"github.com/storefront/dashboard-api/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	cacheKeyPrefix  = "dashboard:"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

// stores is the repository set chosen by STORE_DRIVER.
type stores struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	probe    handlers.DependencyCheck
	close    func(context.Context) error
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "dashboard-api",
	})

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()
	probes := []handlers.DependencyCheck{st.probe}

	// Redis only backs the top products cache; the API still serves without it.
	var topCache ports.TopProductsCache
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, top products cache disabled")
	} else {
		defer rdb.Close()
		topCache = redis.NewTopProductsCache(rdb, cacheKeyPrefix, cfg.Analytics.TopProductsTTL)
		probes = append(probes, handlers.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})
	if err != nil {
		return err
	}
	customerIDs, err := service.NewCustomerIDGenerator()
	if err != nil {
		return err
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	analytics := service.NewAnalyticsService(topCache, metrics.OrderRecorder{}, logger.Component("analytics"))
	dispatcher := queue.NewDispatcher(cfg.Analytics.OrderWorkers, analytics, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Dependencies{
		Log:           log,
		Tokens:        tokens,
		Auth:          service.NewAuthService(st.users, service.NewBcryptHasher(0), tokens, logger.Component("auth")),
		Users:         service.NewUserService(st.users, logger.Component("users")),
		Products:      service.NewProductService(st.products, logger.Component("products")),
		Orders:        service.NewOrderService(st.orders, topCache, dispatcher, customerIDs, logger.Component("orders")),
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
		AuthRateBurst: cfg.HTTP.AuthRateBurst,
		Probes:        probes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.CORS(cfg.HTTP.CORSOrigins)(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		stopWorkers()
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := sqlite.Open(sqlite.Config{Path: cfg.SQLite.Path, Verbose: cfg.IsDevelopment()})
		if err != nil {
			return nil, err
		}
		s := sqlite.NewStore(db)
		return &stores{
			users:    s.Users,
			products: s.Products,
			orders:   s.Orders,
			probe: handlers.DependencyCheck{
				Name: "sqlite",
				Ping: func(ctx context.Context) error { return sqlite.Ping(ctx, db) },
			},
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "dashboard-api"})
		if err != nil {
			return nil, err
		}
		s, err := mongo.NewStore(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users:    s.Users,
			products: s.Products,
			orders:   s.Orders,
			probe: handlers.DependencyCheck{
				Name: "mongodb",
				Ping: func(ctx context.Context) error { return mongo.Ping(ctx, db) },
			},
			close: client.Disconnect,
		}, nil
	}
}
