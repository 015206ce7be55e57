package audit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisSink)(nil)

const defaultRedisTimeout = 500 * time.Millisecond

// RedisSink appends entries to a capped Redis stream.
type RedisSink struct {
	client  redis.Cmdable
	stream  string
	maxLen  int64
	timeout time.Duration
}

// NewRedisSink writes to stream, trimming it to roughly maxLen entries.
func NewRedisSink(client redis.Cmdable, stream string, maxLen int64) *RedisSink {
	return &RedisSink{client: client, stream: stream, maxLen: maxLen, timeout: defaultRedisTimeout}
}

func (s *RedisSink) Write(ctx context.Context, entry Entry) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":        entry.ID,
			"kind":      string(entry.Kind),
			"method":    entry.Method,
			"user_id":   entry.UserID,
			"route":     entry.Route,
			"timestamp": entry.Timestamp.UTC().Format(time.RFC3339Nano),
			"payload":   entry.Payload,
			"error":     entry.Error,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("audit xadd %s: %w", s.stream, err)
	}
	return nil
}

func (s *RedisSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	msgs, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", int64(limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("audit xrevrange %s: %w", s.stream, err)
	}

	entries := make([]Entry, 0, len(msgs))
	for _, msg := range msgs {
		entries = append(entries, entryFromValues(msg.Values))
	}
	return entries, nil
}

func entryFromValues(values map[string]interface{}) Entry {
	str := func(key string) string {
		v, _ := values[key].(string)
		return v
	}
	userID, _ := strconv.ParseInt(str("user_id"), 10, 64)
	ts, _ := time.Parse(time.RFC3339Nano, str("timestamp"))
	return Entry{
		ID:        str("id"),
		Kind:      Kind(str("kind")),
		Method:    str("method"),
		UserID:    userID,
		Route:     str("route"),
		Timestamp: ts,
		Payload:   str("payload"),
		Error:     str("error"),
	}
}
