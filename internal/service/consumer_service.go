package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"ai-journal-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	analyzer   IAnalyzerService
	retryDelay time.Duration
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	analyzer IAnalyzerService,
	retryDelay time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		analyzer:   analyzer,
		retryDelay: retryDelay,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AnalyzeThoughtMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack malformed messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing analysis job %d", payload.JobId)

	err := cs.analyzer.ProcessJob(ctx, payload.JobId)
	if err == nil {
		msg.Ack()
		return
	}

	if errors.Is(err, ErrJobNotFound) {
		// The row a message points at must exist; a dangling id is not
		// retriable.
		log.Printf("[ERROR] Job not found: %d", payload.JobId)
		msg.Ack()
		return
	}

	log.Printf("[ERROR] Job %d failed: %v", payload.JobId, err)
	// Fixed delay between attempts; the substrate redelivers on Nack.
	select {
	case <-time.After(cs.retryDelay):
	case <-ctx.Done():
	}
	msg.Nack()
}
