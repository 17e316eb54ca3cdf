// Package stream publishes applied-instruction events for off-process
// consumers (indexers, notifiers). Publishing is fire-and-forget from
// the engine's point of view: the transition has already committed.
package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AppliedInstruction is the event emitted after every committed
// transition.
type AppliedInstruction struct {
	Instruction string
	Address     string
	AppliedAt   time.Time
}

type Publisher interface {
	Publish(ctx context.Context, evt AppliedInstruction) error
	Close() error
}

// RedisStream appends events to a Redis stream via XADD.
type RedisStream struct {
	client *redis.Client
	stream string
}

func NewRedisStream(url, streamName string) (*RedisStream, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStream{client: client, stream: streamName}, nil
}

func (s *RedisStream) Publish(ctx context.Context, evt AppliedInstruction) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"instruction": evt.Instruction,
			"address":     evt.Address,
			"applied_at":  evt.AppliedAt.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

func (s *RedisStream) Close() error {
	return s.client.Close()
}

// InMemoryStream is the single-process fallback used when no Redis is
// configured, and by tests.
type InMemoryStream struct {
	mu     sync.Mutex
	events []AppliedInstruction
}

func NewInMemoryStream() *InMemoryStream {
	return &InMemoryStream{}
}

func (s *InMemoryStream) Publish(ctx context.Context, evt AppliedInstruction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

// Events returns a snapshot of everything published so far.
func (s *InMemoryStream) Events() []AppliedInstruction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AppliedInstruction, len(s.events))
	copy(out, s.events)
	return out
}

func (s *InMemoryStream) Close() error { return nil }
