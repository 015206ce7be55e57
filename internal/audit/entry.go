package audit

import (
	"context"
	"time"
)

// Kind classifies an audit record.
type Kind string

const (
	KindRequest  Kind = "request"
	KindResponse Kind = "response"
	KindError    Kind = "error"
)

// Entry is one audit record for an admin API call.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Method    string    `json:"method"`
	UserID    int64     `json:"userId,omitempty"`
	Route     string    `json:"route"`
	Timestamp time.Time `json:"timestamp"`
	Payload   string    `json:"payload,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Sink persists entries for later review.
type Sink interface {
	Write(ctx context.Context, entry Entry) error
}

// Reader returns the most recent entries, newest first.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Store is a Sink that can also be read back.
type Store interface {
	Sink
	Reader
}
