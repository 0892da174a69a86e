package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func newConsole(buf *bytes.Buffer, level slog.Level) *consoleHandler {
	return &consoleHandler{w: buf, mu: &sync.Mutex{}, level: level}
}

func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 16e6, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleLine(t *testing.T) {
	cases := []struct {
		name  string
		level slog.Level
		msg   string
		attrs []slog.Attr
		want  string
	}{
		{
			name:  "respawn",
			level: slog.LevelDebug,
			msg:   "locomotion: respawn",
			attrs: []slog.Attr{slog.Any("to", mgl64.Vec3{0, 1, 0})},
			want:  "12:00:00.016 D locomotion: respawn to=(0.000,1.000,0.000)\n",
		},
		{
			name:  "speeds_clamped",
			level: slog.LevelWarn,
			msg:   "prefabs: movement speeds clamped",
			attrs: []slog.Attr{slog.Float64("walk_speed", 2.5), slog.Int("max", 10)},
			want:  "12:00:00.016 W prefabs: movement speeds clamped walk_speed=2.500 max=10\n",
		},
		{
			name:  "quoted_string",
			level: slog.LevelInfo,
			msg:   "game: started",
			attrs: []slog.Attr{slog.String("level", "the yard"), slog.String("script", "")},
			want:  "12:00:00.016 I game: started level=\"the yard\" script=\"\"\n",
		},
		{
			name:  "duration",
			level: slog.LevelError,
			msg:   "prefabs: slow reload",
			attrs: []slog.Attr{slog.Duration("took", 1500*time.Microsecond)},
			want:  "12:00:00.016 E prefabs: slow reload took=1.5ms\n",
		},
		{
			name:  "rotation",
			level: slog.LevelInfo,
			msg:   "spawn",
			attrs: []slog.Attr{slog.Any("rot", mgl64.QuatIdent())},
			want:  "12:00:00.016 I spawn rot=(1.000,0.000,0.000,0.000)\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := newConsole(&buf, slog.LevelDebug).Handle(context.Background(), record(c.level, c.msg, c.attrs...)); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if got := buf.String(); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestConsoleEnabled(t *testing.T) {
	h := newConsole(nil, slog.LevelWarn)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should pass at warn level")
	}
}

func TestConsoleAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := newConsole(&buf, slog.LevelDebug)

	h := base.WithAttrs([]slog.Attr{slog.String("system", "locomotion")}).WithGroup("body").WithGroup("contact")
	if len(base.attrs) != 0 || base.group != "" {
		t.Fatal("WithAttrs and WithGroup must not modify the receiver")
	}
	if err := h.Handle(context.Background(), record(slog.LevelInfo, "moved", slog.Bool("below", true))); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"body.contact.system=locomotion", "body.contact.below=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestHandlerFormatsShareVectorRendering(t *testing.T) {
	cases := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"msg":"moved"`, `"pos":"(1.000,2.000,3.000)"`}},
		{"text", []string{"msg=moved", "pos=(1.000,2.000,3.000)"}},
		{"console", []string{" I moved", "pos=(1.000,2.000,3.000)"}},
		{"", []string{" I moved"}},
	}
	for _, c := range cases {
		t.Run("format_"+c.format, func(t *testing.T) {
			var buf bytes.Buffer
			slog.New(newHandler(Config{Level: "info", Format: c.format, Output: &buf})).
				Info("moved", "pos", mgl64.Vec3{1, 2, 3})
			for _, want := range c.want {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("expected %q in %q", want, buf.String())
				}
			}
		})
	}
}

func TestNewHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(Config{Level: "warn", Output: &buf}))
	log.Info("hidden")
	log.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "W shown") {
		t.Fatalf("unexpected output %q", out)
	}
}
