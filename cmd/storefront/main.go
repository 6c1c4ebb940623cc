package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sfshop/storefront-client/internal/app"
	"github.com/sfshop/storefront-client/pkg/config"
	"github.com/sfshop/storefront-client/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	a, err := app.New(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to assemble app", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logg.Error(context.Background(), "error closing app", err)
		}
	}()

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"shop": cfg.API.BaseURL,
	})
	logg.Info(ctx, "starting storefront")

	if err := a.Auth.Resume(ctx); err != nil {
		logg.Warn(ctx, fmt.Sprintf("session not resumed: %v", err))
	}
	if user := a.Sessions.CurrentUser(); user != nil {
		logg.Info(logg.WithUserID(ctx, user.ID), "session resumed")
	}

	products, err := a.Catalog.FetchProducts(ctx)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}
	logg.Info(ctx, fmt.Sprintf("catalog loaded with %d products", len(products)))
}
