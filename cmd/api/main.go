package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/nabeel-mp/foodish-backend/api/routes"
	"github.com/nabeel-mp/foodish-backend/internal/accounts"
	"github.com/nabeel-mp/foodish-backend/internal/agents"
	"github.com/nabeel-mp/foodish-backend/internal/assignment"
	"github.com/nabeel-mp/foodish-backend/internal/orders"
	"github.com/nabeel-mp/foodish-backend/internal/payments"
	"github.com/nabeel-mp/foodish-backend/internal/wages"
	"github.com/nabeel-mp/foodish-backend/pkg/config"
	"github.com/nabeel-mp/foodish-backend/pkg/db"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	"github.com/nabeel-mp/foodish-backend/pkg/migrate"
	"github.com/nabeel-mp/foodish-backend/pkg/redis"
	"github.com/nabeel-mp/foodish-backend/pkg/stripe"
)

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

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to initialize stripe", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	ordersRepo := orders.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)

	engine, err := assignment.NewEngine(assignmentRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignment engine", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(ordersRepo, dbClient, engine, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsSvc, err := payments.NewService(ordersSvc, ordersRepo, dbClient, engine, stripeClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	wagesSvc, err := wages.NewService(wages.NewRepository(gormDB), dbClient, cfg.Wages, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wages service", err)
		os.Exit(1)
	}

	accountsSvc, err := accounts.NewService(accounts.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	agentsSvc, err := agents.NewService(agents.NewRepository(gormDB), dbClient, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create agents service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Orders:      ordersSvc,
			Payments:    paymentsSvc,
			Wages:       wagesSvc,
			Accounts:    accountsSvc,
			Agents:      agentsSvc,
			SweepEngine: engine,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
