package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldopshq/fieldops-backend/api/routes"
	"github.com/fieldopshq/fieldops-backend/internal/auth"
	"github.com/fieldopshq/fieldops-backend/internal/customers"
	"github.com/fieldopshq/fieldops-backend/internal/inventory"
	"github.com/fieldopshq/fieldops-backend/internal/orders"
	"github.com/fieldopshq/fieldops-backend/internal/salesreps"
	"github.com/fieldopshq/fieldops-backend/internal/techassign"
	"github.com/fieldopshq/fieldops-backend/internal/technicians"
	"github.com/fieldopshq/fieldops-backend/internal/users"
	"github.com/fieldopshq/fieldops-backend/pkg/config"
	"github.com/fieldopshq/fieldops-backend/pkg/db"
	"github.com/fieldopshq/fieldops-backend/pkg/logger"
	"github.com/fieldopshq/fieldops-backend/pkg/metrics"
	"github.com/fieldopshq/fieldops-backend/pkg/migrate"
	"github.com/fieldopshq/fieldops-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	svcs, err := buildServices(cfg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, svcs),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(cfg *config.Config, dbClient *db.Client) (routes.Services, error) {
	gormDB := dbClient.DB()

	userRepo := users.NewRepository(gormDB)

	authSvc, err := auth.NewService(auth.ServiceParams{
		Repo:        userRepo,
		JWTCfg:      cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	userSvc, err := users.NewService(users.ServiceParams{
		Repo:        userRepo,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	inventorySvc, err := inventory.NewService(inventory.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	techAssignSvc, err := techassign.NewService(dbClient, techassign.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	orderSvc, err := orders.NewService(dbClient, orders.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	customerSvc, err := customers.NewService(customers.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	technicianSvc, err := technicians.NewService(technicians.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	salesRepSvc, err := salesreps.NewService(salesreps.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:        authSvc,
		Users:       userSvc,
		Inventory:   inventorySvc,
		TechAssign:  techAssignSvc,
		Orders:      orderSvc,
		Customers:   customerSvc,
		Technicians: technicianSvc,
		SalesReps:   salesRepSvc,
	}, nil
}
