package events

import (
	"context"
	"errors"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/onlyfin/service-social/internal/application"
	userDomain "github.com/onlyfin/service-social/internal/domain/user"
	"github.com/onlyfin/service-social/pkg/events"
	"github.com/onlyfin/service-social/pkg/kafka"
)

// userEventFunc applies one decoded user event.
type userEventFunc func(ctx context.Context, event events.UserEvent) error

// UserEventConsumer listens to user lifecycle events and keeps the local
// user replica in step with the user service.
type UserEventConsumer struct {
	consumer       *kafka.Consumer
	accountService *application.AccountService
	logger         *zap.Logger
}

// NewUserEventConsumer creates a new consumer for user events.
func NewUserEventConsumer(
	brokers []string,
	groupID string,
	accountService *application.AccountService,
	logger *zap.Logger,
) *UserEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicUserEvents, logger)
	return &UserEventConsumer{
		consumer:       consumer,
		accountService: accountService,
		logger:         logger,
	}
}

// Start begins consuming user events. It blocks until the context is cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage decodes a user event and applies it. Messages that can never
// be applied are reported as permanent failures; anything else is retried
// by the consumer.
func (c *UserEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from user topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return kafka.Permanent(err)
	}

	apply := c.route(cloudEvent.Type)
	if apply == nil {
		c.logger.Debug("ignoring unhandled user event type", zap.String("type", cloudEvent.Type))
		return nil
	}

	var event events.UserEvent
	if err := cloudEvent.ParseData(&event); err != nil {
		c.logger.Error("failed to parse user event data",
			zap.String("type", cloudEvent.Type),
			zap.String("id", cloudEvent.ID),
			zap.Error(err),
		)
		return kafka.Permanent(err)
	}

	c.logger.Info("received user event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
		zap.String("user_id", event.UserID.String()),
	)

	if err := apply(ctx, event); err != nil {
		if errors.Is(err, userDomain.ErrInvalidUser) {
			return kafka.Permanent(err)
		}
		return err
	}
	return nil
}

// route picks the account operation for an event type, or nil to skip it.
func (c *UserEventConsumer) route(eventType string) userEventFunc {
	switch {
	case strings.EqualFold(eventType, events.UserCreated),
		strings.EqualFold(eventType, events.UserUpdated):
		return c.accountService.HandleUserUpserted
	case strings.EqualFold(eventType, events.UserDeleted):
		return c.accountService.HandleUserDeleted
	default:
		return nil
	}
}

// Close closes the underlying Kafka consumer.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}
