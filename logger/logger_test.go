package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", &buf)
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not a single JSON line: %v (%q)", err, buf.String())
	}
	return entry
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.Info("hello", Fields("key", "value"))

	entry := decodeLine(t, buf)
	if entry["message"] != "hello" {
		t.Errorf("expected message 'hello', got %v", entry["message"])
	}
	if entry["key"] != "value" {
		t.Errorf("expected key=value, got %v", entry["key"])
	}
	if entry["service"] != "test-svc" {
		t.Errorf("expected service tag, got %v", entry["service"])
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn to be written, got %q", buf.String())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSONLogger(t, "nonsense")
	l.Debug("dropped")
	l.Info("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected info level fallback, got %q", buf.String())
	}
}

func TestWithComponentAndFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithComponent("exception").WithFields(map[string]interface{}{"code": "not_found"}).Info("mapped")

	entry := decodeLine(t, buf)
	if entry[FieldComponent] != "exception" {
		t.Errorf("expected component=exception, got %v", entry[FieldComponent])
	}
	if entry["code"] != "not_found" {
		t.Errorf("expected code=not_found, got %v", entry["code"])
	}
}

func TestWithError(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithError(fmt.Errorf("boom")).Error("failed")

	entry := decodeLine(t, buf)
	if entry["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", entry["error"])
	}
}

func TestWithContext_RequestID(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	l.WithContext(ctx).Info("scoped")

	entry := decodeLine(t, buf)
	if entry[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id=req-1, got %v", entry[FieldRequestID])
	}
}

func TestWithContext_NoRequestID(t *testing.T) {
	l := NewDefault("svc")
	if l.WithContext(context.Background()) != l {
		t.Error("expected the same logger when the context has no request id")
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty request id")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing happens")
}

func TestInitAndGlobal(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	Init(Config{Level: "debug", Format: "json", ServiceName: "init-test"})
	if GetGlobalLogger().service != "init-test" {
		t.Errorf("expected global service 'init-test', got %q", GetGlobalLogger().service)
	}

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger")
	}

	custom := NewDefault("custom")
	SetGlobalLogger(custom)
	if WithComponent("x").service != "custom" {
		t.Error("expected package-level WithComponent to use the global logger")
	}
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	l := NewFromEnv("env-svc")
	if l.GetLogger().GetLevel().String() != "debug" {
		t.Errorf("expected debug level, got %s", l.GetLogger().GetLevel())
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "orders", &buf)
	l.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "[ORD][WRN]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "careful") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp default true")
	}

	custom := Config{Level: "debug", Format: "json"}
	custom.ApplyDefaults()
	if custom.Level != "debug" || custom.Format != "json" {
		t.Errorf("explicit values should be kept: %+v", custom)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"pretty", Config{Level: "debug", Format: FormatPretty}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		input []interface{}
		want  int
	}{
		{"empty", nil, 0},
		{"pairs", []interface{}{"a", 1, "b", 2}, 2},
		{"odd count drops tail", []interface{}{"a", 1, "b"}, 1},
		{"non-string key skipped", []interface{}{1, "x", "b", 2}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(Fields(tc.input...)); got != tc.want {
				t.Errorf("expected %d fields, got %d", tc.want, got)
			}
		})
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("render", fmt.Errorf("bad"))
	if ef[FieldOperation] != "render" || ef[FieldError] != "bad" {
		t.Errorf("unexpected error fields: %v", ef)
	}

	df := DurationFields("request", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}

	merged := MergeWithError(nil, fmt.Errorf("x"))
	if merged[FieldError] != "x" {
		t.Errorf("expected error=x, got %v", merged[FieldError])
	}
}
