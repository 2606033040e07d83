package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/EddyKilonzo/shopie/internal/application/auth"
	"github.com/EddyKilonzo/shopie/internal/application/cart"
	"github.com/EddyKilonzo/shopie/internal/application/checkout"
	"github.com/EddyKilonzo/shopie/internal/application/usecase"
	"github.com/EddyKilonzo/shopie/internal/infrastructure/mailer"
	"github.com/EddyKilonzo/shopie/internal/infrastructure/notify"
	"github.com/EddyKilonzo/shopie/internal/infrastructure/postgres"
	httpRouter "github.com/EddyKilonzo/shopie/internal/interfaces/http"
	"github.com/EddyKilonzo/shopie/pkg/config"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	cartUC := cart.NewCartUseCase(txRunner, cartRepo, log)
	checkoutUC := checkout.NewCheckoutUseCase(txRunner, cartRepo, userRepo, orderRepo, log)

	// Order confirmations: enqueued inside the checkout transaction, delivered
	// by the worker outside of it.
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, log)
	worker := notify.NewWorker(notifRepo, smtpMailer, log, cfg.Notify)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go worker.Run(workerCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
