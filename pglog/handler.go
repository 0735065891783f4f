// Package pglog routes structured logging (log/slog) through the backend's
// report channel, and provides level helpers matching the backend's own
// severity set.
//
// Severities ERROR and above abort the current statement and transaction via
// the backend's non-local jump. The slog path therefore never raises them:
// slog.LevelError is forwarded as a backend WARNING. Aborting reports are
// explicit, via Error and Fatal.
package pglog

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Handler implements slog.Handler on top of the host report channel.
type Handler struct {
	opts  handlerConfig
	attrs []slog.Attr
	group string
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level slog.Level
}

// WithLevel sets the minimum slog level to forward. Records below it are
// dropped on the extension side, before crossing the boundary.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHandler creates a Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := handlerConfig{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{opts: cfg}
}

// Enabled reports whether records at the given level are forwarded.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle formats the record and forwards it to the backend.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	var sb strings.Builder
	sb.WriteString(rec.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%v", h.qualify(a.Key), a.Value)
		return true
	})

	pgsys.Current().Report(elogLevel(rec.Level), sb.String())
	return nil
}

func (h *Handler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

// WithAttrs returns a Handler that includes attrs in every record. Keys are
// qualified with the group open at the time of the call.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &nh
}

// WithGroup returns a Handler that qualifies attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	if nh.group != "" {
		nh.group += "." + name
	} else {
		nh.group = name
	}
	return &nh
}

// elogLevel maps slog levels onto backend severities. Nothing from the log
// path may abort the call, so slog's error level caps at WARNING.
func elogLevel(l slog.Level) pgsys.Level {
	switch {
	case l < slog.LevelInfo:
		return pgsys.LevelDebug1
	case l < slog.LevelWarn:
		return pgsys.LevelInfo
	case l < slog.LevelError:
		return pgsys.LevelWarning
	default:
		return pgsys.LevelWarning
	}
}
