package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestRedaction(t *testing.T) {
	tests := []struct {
		name   string
		log    func(*slog.Logger)
		secret string
	}{
		{"key name", func(l *slog.Logger) { l.Info("ai", "api_key", "sk-abc") }, "sk-abc"},
		{"keyword in key", func(l *slog.Logger) { l.Info("ai", "auth_header", "hunter2") }, "hunter2"},
		{"value pattern", func(l *slog.Logger) { l.Info("ai", "detail", "key sk-proj-XYZ123 rejected") }, "sk-proj-XYZ123"},
		{"bearer", func(l *slog.Logger) { l.Info("ai", "header", "Bearer abc.def") }, "abc.def"},
		{"error value", func(l *slog.Logger) { l.Error("ai", "err", errors.New("bad key sk-live99")) }, "sk-live99"},
		{"message", func(l *slog.Logger) { l.Warn("using sk-msg42") }, "sk-msg42"},
		{"group", func(l *slog.Logger) { l.Info("ai", slog.Group("req", "token", "t0k")) }, "t0k"},
		{"with attrs", func(l *slog.Logger) { l.With("password", "pw1").Info("x") }, "pw1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(&buf, slog.LevelDebug))
			out := buf.String()
			if strings.Contains(out, tt.secret) {
				t.Errorf("secret %q leaked: %s", tt.secret, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("expected mask in %s", out)
			}
		})
	}
}

func TestPlainAttrsPass(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info("navigate", "url", "https://example.com/a", "session_id", "0b6e", "links", 3)
	out := buf.String()
	for _, want := range []string{`"url":"https://example.com/a"`, `"session_id":"0b6e"`, `"links":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q): got %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)
	l.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %s", buf.String())
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tb.log")
	l, closer, err := Open(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
