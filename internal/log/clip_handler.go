package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// contentKeys are attribute keys that carry document prose.
// Their values are clipped at ContentLimit instead of ValueLimit.
var contentKeys = map[string]bool{
	"text":     true,
	"sentence": true,
	"word":     true,
	"content":  true,
}

const (
	// ValueLimit is the maximum number of runes kept for any string attribute.
	ValueLimit = 256

	// ContentLimit is the maximum number of runes kept for document prose.
	ContentLimit = 48

	// ClipMarker is appended to every clipped value.
	ClipMarker = "...[clipped]"
)

// ClipHandler wraps an slog.Handler and shortens long string attributes
// before passing records on.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log a whole document in debug mode without
//     flooding stderr
type ClipHandler struct {
	// handler is the underlying slog handler that receives clipped records.
	handler slog.Handler
}

// NewClipHandler creates a new ClipHandler wrapping the given handler.
// If handler is nil, the returned ClipHandler will use slog.Default().Handler().
func NewClipHandler(handler slog.Handler) *ClipHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ClipHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ClipHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle clips the record's attributes and passes it to the underlying handler.
func (h *ClipHandler) Handle(ctx context.Context, r slog.Record) error {
	clipped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clipped.AddAttrs(clipAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clipped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are clipped before being added.
func (h *ClipHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clipped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clipped[i] = clipAttr(a)
	}
	return &ClipHandler{handler: h.handler.WithAttrs(clipped)}
}

// WithGroup returns a new handler with the given group name.
func (h *ClipHandler) WithGroup(name string) slog.Handler {
	return &ClipHandler{handler: h.handler.WithGroup(name)}
}

// clipAttr clips a single attribute, recursively handling groups.
func clipAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		clipped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			clipped[i] = clipAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clipped...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	limit := ValueLimit
	if contentKeys[strings.ToLower(a.Key)] {
		limit = ContentLimit
	}
	return slog.String(a.Key, Clip(a.Value.String(), limit))
}

// Clip shortens s to at most limit runes followed by ClipMarker and the
// number of runes removed. Strings within the limit are returned unchanged.
func Clip(s string, limit int) string {
	n := utf8.RuneCountInString(s)
	if n <= limit {
		return s
	}

	cut := 0
	for i := range s {
		if limit == 0 {
			cut = i
			break
		}
		limit--
	}
	return fmt.Sprintf("%s%s(%d more)", s[:cut], ClipMarker, n-utf8.RuneCountInString(s[:cut]))
}

// NewLogger creates a new text slog.Logger that clips long values.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewClipHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON and clips long
// values. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewClipHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
