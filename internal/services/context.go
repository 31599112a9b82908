package services

import "context"

type contextKey int

const (
	videoIDKey contextKey = iota
	stageKey
	lookupIDKey
)

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func value(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

// WithVideoID annotates ctx with the video being looked up.
func WithVideoID(ctx context.Context, id string) context.Context {
	return withValue(ctx, videoIDKey, id)
}

// VideoIDFromContext returns the video id stored in ctx.
func VideoIDFromContext(ctx context.Context) (string, bool) { return value(ctx, videoIDKey) }

// WithStage annotates ctx with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return withValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name stored in ctx.
func StageFromContext(ctx context.Context) (string, bool) { return value(ctx, stageKey) }

// WithLookupID annotates ctx with the correlation id of one transcript lookup.
func WithLookupID(ctx context.Context, id string) context.Context {
	return withValue(ctx, lookupIDKey, id)
}

// LookupIDFromContext returns the lookup id stored in ctx.
func LookupIDFromContext(ctx context.Context) (string, bool) { return value(ctx, lookupIDKey) }
