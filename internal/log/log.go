package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const (
	DestStderr  = "stderr"
	DestStdout  = "stdout"
	DestDiscard = "discard"
)

type ctxKey struct{}

// New returns a logger writing to stderr. Debug messages are enabled
// when verbose is true.
func New(verbose bool) *slog.Logger {
	return NewWriter(os.Stderr, verbose)
}

// NewWriter returns a logger writing to w. A terminal gets colored human
// readable output, anything else gets JSON lines.
func NewWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if isTerminal(w) {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    runtime.GOOS == "windows",
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(NewContextHandler(handler))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Destination opens the log destination named by dest. It is one of
// stderr, stdout, discard or a path to a file, which is appended to.
// The returned close function must be called once logging is done.
func Destination(dest string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch dest {
	case "", DestStderr:
		return os.Stderr, noop, nil
	case DestStdout:
		return os.Stdout, noop, nil
	case DestDiscard:
		return io.Discard, noop, nil
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("opening log file %s: %w", dest, err)
	}
	return f, f.Close, nil
}

// ContextHandler adds attributes stored in context via ContextAttrs to every record.
type ContextHandler struct {
	handler slog.Handler
}

func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := attrsFrom(ctx); len(attrs) > 0 {
		r.AddAttrs(attrs...)
	}
	return h.handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(h.handler.WithGroup(name))
}

// ContextAttrs returns a copy of ctx carrying attrs in addition to the
// attributes already stored in ctx.
func ContextAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	merged := append(slices.Clip(attrsFrom(ctx)), attrs...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func attrsFrom(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(ctxKey{}).([]slog.Attr)
	return attrs
}
