package main

import (
	"database/sql"
	"net/http"

	"sainaman-be/internal/cart"
	"sainaman-be/internal/config"
	"sainaman-be/internal/db"
	"sainaman-be/internal/handler"
	"sainaman-be/internal/logger"
	"sainaman-be/internal/order"
	"sainaman-be/internal/payment"

	"go.uber.org/zap"
)

// Indirections for testing.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	return handler.NewRouter(
		handler.NewCartHandler(cartSvc),
		handler.NewOrderHandler(orderSvc),
		handler.NewPaymentHandler(gateway),
	)
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	logger.L().Info("server listening", zap.String("port", port))
	return startServerFunc(":"+port, router)
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
