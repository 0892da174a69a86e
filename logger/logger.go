// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Config struct {
	Level  string
	Format string // "text", "json" or "console"
	Output io.Writer
}

var once sync.Once

// Init installs the default logger. Only the first call has any effect.
func Init(cfg Config) {
	once.Do(func() {
		slog.SetDefault(slog.New(newHandler(cfg)))
	})
}

func newHandler(cfg Config) slog.Handler {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level), ReplaceAttr: replaceAttr}
	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(cfg.Output, opts)
	case "text":
		return slog.NewTextHandler(cfg.Output, opts)
	default:
		return &consoleHandler{w: cfg.Output, mu: &sync.Mutex{}, level: opts.Level.Level()}
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// replaceAttr renders vectors and rotations the same way in every format.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if s, ok := formatMath(a.Value); ok {
		return slog.String(a.Key, s)
	}
	return a
}

func formatMath(v slog.Value) (string, bool) {
	if v.Kind() != slog.KindAny {
		return "", false
	}
	switch m := v.Any().(type) {
	case mgl64.Vec3:
		return formatVec(m[:]), true
	case mgl64.Vec2:
		return formatVec(m[:]), true
	case mgl64.Quat:
		return formatVec([]float64{m.W, m.V[0], m.V[1], m.V[2]}), true
	}
	return "", false
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'f', 3, 64)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// consoleHandler writes one line per record with a millisecond clock and a
// one-letter level:
//
//	12:00:00.016 I locomotion: respawn entity=1v0 to=(0.000,1.000,0.000)
type consoleHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteByte(levelLetter(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

func levelLetter(l slog.Level) byte {
	switch {
	case l >= slog.LevelError:
		return 'E'
	case l >= slog.LevelWarn:
		return 'W'
	case l >= slog.LevelInfo:
		return 'I'
	default:
		return 'D'
	}
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	if group != "" {
		b.WriteString(group)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')

	v := a.Value.Resolve()
	if s, ok := formatMath(v); ok {
		b.WriteString(s)
		return
	}
	switch v.Kind() {
	case slog.KindFloat64:
		b.WriteString(strconv.FormatFloat(v.Float64(), 'f', 3, 64))
	case slog.KindDuration:
		b.WriteString(v.Duration().Round(time.Microsecond).String())
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " =") {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	default:
		b.WriteString(v.String())
	}
}
