package service

import (
	"context"

	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/pkg/events"
	pktNats "ai-journal-be/pkg/nats"
)

// IActivityService consumes journal events off the bus and records them in
// the structured log, giving operators a per-user activity trail.
type IActivityService interface {
	Start() error
}

type activityService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewActivityService(subscriber *pktNats.Subscriber, logger logger.ILogger) IActivityService {
	return &activityService{
		subscriber: subscriber,
		logger:     logger,
	}
}

func (s *activityService) Start() error {
	return s.subscriber.Subscribe("journal.>", "journal-activity-log", func(ctx context.Context, event events.Event) error {
		s.logger.Info("activity", "Journal event received", map[string]interface{}{
			"subject": event.EventType(),
			"payload": event.Payload(),
		})
		return nil
	})
}
