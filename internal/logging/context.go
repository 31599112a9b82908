package logging

import (
	"context"
	"log/slog"

	"ytcaptions/internal/services"
)

// Structured logging keys shared by every component.
const (
	FieldComponent = "component"
	FieldVideoID   = "video_id"
	FieldStage     = "stage"
	// FieldLookupID correlates the log lines of one transcript lookup.
	FieldLookupID = "lookup_id"
	// FieldErrorKind carries the classification of a transcript failure.
	FieldErrorKind = "error_kind"
)

// ContextFields returns the lookup identity stored in ctx as log arguments.
func ContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if id, ok := services.VideoIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldVideoID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if rid, ok := services.LookupIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldLookupID, rid))
	}
	return fields
}

// WithContext returns logger annotated with the lookup identity in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(fields...)
	}
	return logger
}
