package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/config"
	"github.com/swiftride/swiftride-api/internal/domain/bonus"
	"github.com/swiftride/swiftride-api/internal/domain/fare"
	"github.com/swiftride/swiftride-api/internal/domain/payment"
	"github.com/swiftride/swiftride-api/internal/domain/wallet"
	"github.com/swiftride/swiftride-api/internal/domain/withdrawal"
	"github.com/swiftride/swiftride-api/internal/middleware"
	"github.com/swiftride/swiftride-api/internal/pkg/database"
	"github.com/swiftride/swiftride-api/internal/pkg/razorpay"
	pkgresponse "github.com/swiftride/swiftride-api/internal/pkg/response"
	"github.com/swiftride/swiftride-api/internal/pkg/routing"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting SwiftRide API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	gatewayClient := razorpay.NewClient(razorpay.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Timeout:   cfg.RazorpayTimeout,
	})

	routingClient := routing.NewClient(routing.Config{
		APIKey:  cfg.RoutingAPIKey,
		BaseURL: cfg.RoutingBaseURL,
		Timeout: cfg.RoutingTimeout,
	})

	feeRate, err := decimal.NewFromString(cfg.AdminFeeRate)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.AdminFeeRate).Msg("Invalid admin fee rate")
	}

	// ---------- Repositories ----------
	walletRepo := wallet.NewRepository(db)
	withdrawalRepo := withdrawal.NewRepository(db)
	paymentRepo := payment.NewRepository(db)

	// ---------- Services ----------
	walletService := wallet.NewService(walletRepo, redis)
	withdrawalService := withdrawal.NewService(withdrawalRepo, walletService, cfg.WithdrawalDebitOnCompleted)
	bonusService := bonus.NewService(walletService)
	paymentService := payment.NewService(paymentRepo, walletService, gatewayClient, feeRate)
	fareService := fare.NewService(routingClient)

	// ---------- Handlers ----------
	walletHandler := wallet.NewHandler(walletService)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService)
	bonusHandler := bonus.NewHandler(bonusService)
	paymentHandler := payment.NewHandler(paymentService)
	fareHandler := fare.NewHandler(fareService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/wallets", walletHandler.Routes())
		r.Mount("/withdrawals", withdrawalHandler.Routes())
		r.Mount("/bonuses", bonusHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/fares", fareHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
