package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LogSink writes events to the structured application log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("analytics")}
}

func (s *LogSink) Write(_ context.Context, event Event) error {
	s.log.Info("analytics event",
		zap.String("event", string(event.Name)),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("params", event.Params),
	)
	return nil
}

// RedisStreamSink appends events to a Redis stream.
type RedisStreamSink struct {
	client *redis.Client
	stream string
}

func NewRedisStreamSink(client *redis.Client, stream string) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream}
}

func (s *RedisStreamSink) Write(ctx context.Context, event Event) error {
	params, err := json.Marshal(event.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: 100000,
		Approx: true,
		Values: map[string]any{
			"event":     string(event.Name),
			"timestamp": event.Timestamp.Format(time.RFC3339Nano),
			"params":    params,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
