package messaging

import (
	"context"
	"log"
)

// LogPublisher stands in for the broker when none is configured.
type LogPublisher struct {
	logger *log.Logger
}

func NewLogPublisher(logger *log.Logger) *LogPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, messageID, eventType string, payload []byte) error {
	p.logger.Printf("Event %s id=%s payload=%s", eventType, messageID, payload)
	return nil
}
