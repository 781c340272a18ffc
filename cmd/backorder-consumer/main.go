package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/backorders"
	"github.com/murkotick/catalog-purchase-service/internal/config"
	"github.com/murkotick/catalog-purchase-service/internal/obs"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := amqp.Dial(cfg.RabbitMQURI)
	if err != nil {
		logger.Error("rabbitmq dial", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq channel", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	if err := backorders.Declare(ch, cfg.BackorderQueue); err != nil {
		logger.Error("declare queues", "error", err)
		os.Exit(1)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		logger.Error("qos", "error", err)
		os.Exit(1)
	}

	deliveries, err := ch.Consume(cfg.BackorderQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("consume", "queue", cfg.BackorderQueue, "error", err)
		os.Exit(1)
	}

	logger.Info("consuming backorders", "queue", cfg.BackorderQueue)
	backorders.Consume(ctx, deliveries, logger)
	logger.Info("backorder consumer stopped")
}
