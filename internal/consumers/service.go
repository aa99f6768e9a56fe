package consumers

import (
	"context"
	"log/slog"

	"atelier/internal/config"
	"atelier/internal/external"
	"atelier/internal/messaging"
	"atelier/internal/models"

	"github.com/nats-io/stan.go"
)

// ConsumerService runs the notification side of the validation workflow.
// It is a separate process so mailer latency can never sit on the
// validator's response path.
type ConsumerService struct {
	nats     *messaging.NATSClient
	handlers *Handlers
	subs     []stan.Subscription
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	mailerClient := external.NewMailerClient(cfg.Mailer)

	handlers := NewHandlers(mailerClient)

	return &ConsumerService{
		nats:     natsClient,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	sub, err := cs.nats.SubscribeQueue(
		models.EventAttendanceValidated, "notifications", cs.handlers.HandleAttendanceValidated)
	if err != nil {
		return err
	}
	cs.subs = append(cs.subs, sub)

	sub, err = cs.nats.SubscribeQueue(
		models.EventContactReceived, "notifications", cs.handlers.HandleContactReceived)
	if err != nil {
		return err
	}
	cs.subs = append(cs.subs, sub)

	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	for _, sub := range cs.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Failed to close subscription", "error", err)
		}
	}

	return cs.nats.Close()
}
