package logging

import (
	"context"
	"log/slog"
	"strings"
)

type trackKey struct{}

// ContextWithTrack records the track being worked on.
func ContextWithTrack(ctx context.Context, trackID string) context.Context {
	return context.WithValue(ctx, trackKey{}, strings.TrimSpace(trackID))
}

// TrackFromContext returns the track recorded by ContextWithTrack.
func TrackFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(trackKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := TrackFromContext(ctx); ok {
		return logger.With(String(FieldTrack, id))
	}
	return logger
}
