package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/onlyfin/service-social/pkg/events"
	"github.com/onlyfin/service-social/pkg/kafka"
)

// EventPublisher publishes integration events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// publishEvent emits an event on the social topic. The write it reports has
// already committed, so failures are logged and swallowed.
func publishEvent(ctx context.Context, p EventPublisher, logger *zap.Logger, eventType, subject string, data interface{}) {
	if p == nil {
		return
	}
	ce, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		logger.Error("failed to build event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := p.PublishEvent(ctx, events.TopicSocialEvents, ce.WithSubject(subject)); err != nil {
		logger.Warn("failed to publish event",
			zap.String("type", eventType),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
