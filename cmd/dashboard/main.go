// Package main runs the merchant dashboard: the composition root constructs
// every port and use case exactly once, then serves the local facade.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"merchant-dashboard/internal/api"
	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/config"
	"merchant-dashboard/internal/events"
	"merchant-dashboard/internal/features"
	"merchant-dashboard/internal/handler"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/middleware"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/tracing"
	"merchant-dashboard/internal/usecase"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	configFile := flag.String("config", "", "path to JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	if _, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: "merchant-dashboard",
		Environment: cfg.Tracing.Environment,
	}); err != nil {
		sugar.Fatalw("tracing initialization error", "error", err)
	}

	flags := features.NewManager()
	flags.Register(features.FeatureCacheEnabled, cfg.Store.CacheEnabled, "cache-first resource loaders")
	flags.Register(features.FeatureEventHooksEnabled, cfg.Events.Enabled, "in-process event hooks")
	flags.Register(features.FeatureSharedCache, cfg.Store.Backend == "redis", "shared Redis cache")

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		sugar.Fatalw("store initialization error", "error", err, "backend", cfg.Store.Backend)
	}
	if closeStore != nil {
		defer closeStore()
	}

	client := api.NewClient(cfg.Backend.BaseURL)

	ev := events.NewManager(cfg.Events.Enabled)
	defer ev.Shutdown()
	subscribeLogging(ev, sugar)

	sysClock := clock.System{}
	gen := ids.UUID{}

	ldOpts := loader.Options{Flags: flags, FlagName: features.FeatureCacheEnabled}
	promoLoader := loader.NewWithOptions[[]models.Promo](store, sugar, ldOpts)
	shopLoader := loader.NewWithOptions[[]models.Shop](store, sugar, ldOpts)
	promoStatsLoader := loader.NewWithOptions[models.PromoStatsPage](store, sugar, ldOpts)
	shopStatsLoader := loader.NewWithOptions[models.ShopStatistics](store, sugar, ldOpts)
	cashierLoader := loader.NewWithOptions[[]models.Cashier](store, sugar, ldOpts)

	promos := usecase.NewPromos(client, store, promoLoader, sysClock, gen, ev, sugar)
	shops := usecase.NewShops(client, store, shopLoader, sysClock, ev, sugar)
	stats := usecase.NewStatistics(client, promoStatsLoader, shopStatsLoader, sugar)
	cashiers := usecase.NewCashiers(client, store, cashierLoader, sysClock, gen, sugar)
	coupons := usecase.NewCoupons(client, sysClock, gen, ev, sugar)
	bootstrap := usecase.NewBootstrap(client, store, ev, sugar,
		promoLoader, shopLoader, promoStatsLoader, shopStatsLoader, cashierLoader)

	h := handler.NewHandler(promos, shops, stats, cashiers, coupons, bootstrap, client, sugar)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.Rate, time.Duration(cfg.RateLimit.Window)*time.Second)
		defer rateLimiter.Stop()
	}

	r := chi.NewRouter()

	// Middleware (order matters)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.TracingMiddleware())
	if rateLimiter != nil {
		r.Use(middleware.RateLimitMiddleware(rateLimiter))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h.Routes(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting dashboard facade", "addr", cfg.Server.Address, "store", cfg.Store.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			sugar.Warnw("tracing shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// openStore builds the configured persistence backend.
func openStore(cfg config.StoreConfig) (kvstore.Store, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		store, err := kvstore.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "redis":
		store, err := kvstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return kvstore.NewMemory(), nil, nil
	}
}

// subscribeLogging logs every domain event.
func subscribeLogging(ev *events.Manager, sugar *zap.SugaredLogger) {
	log := func(ctx context.Context, e events.Event) error {
		sugar.Infow("event", "type", e.Type, "at", e.Timestamp)
		return nil
	}
	ev.Subscribe(events.EventPromoCreated, log)
	ev.Subscribe(events.EventShopCreated, log)
	ev.Subscribe(events.EventCouponRedeemed, log)
	ev.Subscribe(events.EventCacheCleared, log)
}
