// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	requestIDField  ctxKey = "request_id"
	logLevelDefault        = slog.LevelDebug

	debug   = "debug"
	info    = "info"
	warn    = "warn"
	errorLv = "error"

	formatText = "text"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context-aware wrapper when attributes are bound with
// slog.With.
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context-aware wrapper for grouped loggers.
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		// copy so sibling contexts never share a backing array
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// WithRequestID stores the request ID in ctx for code that forwards it, such
// as event publishers.
func WithRequestID(parent context.Context, requestID string) context.Context {
	return context.WithValue(parent, requestIDField, requestID)
}

// RequestIDFromContext returns the request ID stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDField).(string)
	return requestID, ok && requestID != ""
}

// parseLevel maps LOG_LEVEL values onto slog levels.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case debug:
		return slog.LevelDebug
	case info:
		return slog.LevelInfo
	case warn:
		return slog.LevelWarn
	case errorLv:
		return slog.LevelError
	default:
		return logLevelDefault
	}
}

// NewHandler builds the service log handler writing to w. JSON is the
// default; LOG_FORMAT=text switches to the human readable handler.
func NewHandler(w io.Writer, level slog.Level, addSource bool, format string) slog.Handler {
	logOptions := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}

	var h slog.Handler
	if strings.ToLower(format) == formatText {
		h = slog.NewTextHandler(w, logOptions)
	} else {
		h = slog.NewJSONHandler(w, logOptions)
	}
	return contextHandler{h}
}

// InitStructureLogConfig sets the structured log behavior
func InitStructureLogConfig() {

	level := parseLevel(os.Getenv("LOG_LEVEL"))
	addSource := os.Getenv("LOG_ADD_SOURCE") == "true"
	format := os.Getenv("LOG_FORMAT")

	log.SetFlags(log.Llongfile)
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, addSource, format)))

	slog.Info("log config",
		"logLevel", level.String(),
		"addSource", addSource,
		"format", format,
	)
}
