// Package main запускает смоук-сценарий клиента витрины против живого API:
// восстановление или открытие сессии, загрузка каталога и корзины.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/config"
	"github.com/mmeshcher/storefront-client/internal/state"
	"github.com/mmeshcher/storefront-client/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	var creds storage.Store
	if cfg.CredentialsFile != "" {
		fileStore, err := storage.NewFileStore(cfg.CredentialsFile)
		if err != nil {
			sugar.Fatalw("credential storage error", "error", err.Error())
		}
		creds = fileStore
	} else {
		creds = storage.NewMemStore()
	}

	client := api.New(cfg.APIAddress, creds, logger, api.WithTransportRetries(cfg.TransportRetries))
	store := state.NewStore(client, creds, logger, state.WithNotificationTTL(cfg.NotificationTTL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Auth.CheckAuthStatus(); err != nil {
		sugar.Fatalw("session rehydration error", "error", err.Error())
	}

	if snap := store.Auth.Snapshot(); !snap.IsAuthenticated {
		email := os.Getenv("STOREFRONT_EMAIL")
		password := os.Getenv("STOREFRONT_PASSWORD")
		if email == "" {
			sugar.Fatal("no stored session and STOREFRONT_EMAIL/STOREFRONT_PASSWORD not set")
		}

		if err := store.Auth.Login(ctx, email, password); err != nil {
			store.Notifications.ShowError(api.ErrorMessage(err))
			sugar.Fatalw("login failed", "error", err.Error())
		}
	}

	auth := store.Auth.Snapshot()
	sugar.Infow("session ready", "user", auth.User.Name, "email", auth.User.Email)

	if err := store.Categories.FetchCategories(ctx); err != nil {
		sugar.Errorw("load categories", "error", err.Error())
	} else {
		sugar.Infow("categories loaded", "count", len(store.Categories.Snapshot().Categories))
	}

	if err := store.Products.GetFeatured(ctx, 5); err != nil {
		sugar.Errorw("load featured products", "error", err.Error())
	} else {
		for _, p := range store.Products.Snapshot().Featured {
			sugar.Infow("featured product", "name", p.Name, "brand", p.Brand, "price", p.Price)
		}
	}

	if err := store.Cart.GetCart(ctx); err != nil {
		sugar.Errorw("load cart", "error", err.Error())
	} else if cart := store.Cart.Snapshot().Cart; cart != nil {
		sugar.Infow("cart loaded", "items", cart.TotalItems, "total", cart.TotalDiscountedPrice)
	}

	if notification := store.Notifications.Current(); notification.Visible {
		sugar.Infow("notification", "severity", notification.Severity, "message", notification.Message)
	}
}
