package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Korolev2000/flightbooking/config"
	"github.com/Korolev2000/flightbooking/internal/email"
	"github.com/Korolev2000/flightbooking/internal/kafka"
	"github.com/Korolev2000/flightbooking/internal/logger"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker consumes booking events and sends passenger
// notifications, keeping delivery out of the request path.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	workerLog := logger.New("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, workerLog)
	defer consumer.Close()

	emailSender := email.NewSender(workerLog)

	workerLog.Info().
		Str("topic", cfg.Kafka.NotificationsTopic).
		Str("group", cfg.Kafka.GroupID).
		Msg("notification worker started")

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("decode booking event: %w", err)
		}
		return emailSender.Send(ctx, event)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
