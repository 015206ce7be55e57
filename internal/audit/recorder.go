package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Placeholder replaces any value that cannot be encoded for the audit trail.
const Placeholder = "unserializable value"

// Recorder writes audit entries to the log and to every configured sink.
// Sink failures are logged and never surface to the caller.
type Recorder struct {
	logger *zap.Logger
	sinks  []Sink
	now    func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithSink adds a sink that receives every entry.
func WithSink(s Sink) Option {
	return func(r *Recorder) {
		if s != nil {
			r.sinks = append(r.sinks, s)
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder builds a Recorder that logs through logger.
func NewRecorder(logger *zap.Logger, opts ...Option) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Recorder{logger: logger.Named("audit"), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stamps entry with an id and timestamp if missing, logs it and fans
// it out to the sinks.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now()
	}

	fields := []zap.Field{
		zap.String("audit_id", entry.ID),
		zap.String("method", entry.Method),
		zap.String("route", entry.Route),
		zap.Time("timestamp", entry.Timestamp),
	}
	switch entry.Kind {
	case KindRequest:
		fields = append(fields, zap.Int64("user_id", entry.UserID), zap.String("args", entry.Payload))
		r.logger.Info("admin api request", fields...)
	case KindResponse:
		fields = append(fields, zap.String("result", entry.Payload))
		r.logger.Info("admin api response", fields...)
	case KindError:
		fields = append(fields, zap.String("error", entry.Error))
		r.logger.Error("admin api failure", fields...)
	}

	for _, sink := range r.sinks {
		r.write(ctx, sink, entry)
	}
}

func (r *Recorder) write(ctx context.Context, sink Sink, entry Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("audit sink panic", zap.String("audit_id", entry.ID), zap.Any("panic", rec))
		}
	}()
	if err := sink.Write(ctx, entry); err != nil {
		r.logger.Warn("audit sink write failed", zap.String("audit_id", entry.ID), zap.Error(err))
	}
}

// Encode renders v as JSON, falling back to Placeholder when v cannot be
// encoded or its marshaler panics.
func Encode(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = Placeholder
		}
	}()
	raw, err := json.Marshal(v)
	if err != nil {
		return Placeholder
	}
	return string(raw)
}

func describe(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}
