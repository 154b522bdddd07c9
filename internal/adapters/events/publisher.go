package events

import (
	"context"
	"log/slog"
	"sync"
)

// LoggingPublisher is the default notification sink when no broker is
// configured: each event becomes one structured log line.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	p.logger.InfoContext(ctx, "event published",
		"module", "events.publisher",
		"operation", "publish",
		"outcome", "success",
		"event_type", eventType,
		"partition_key", partitionKey,
		"payload_bytes", len(payload),
	)
	return nil
}

type PublishedEvent struct {
	EventType    string
	PartitionKey string
	Payload      []byte
}

// MemoryPublisher records published events in order, for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, eventType string, payload []byte, partitionKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      append([]byte(nil), payload...),
	})
	return nil
}

func (p *MemoryPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}
