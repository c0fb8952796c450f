package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/hello-function/internal/platform/timeutil"
)

// captureLogOutput redirects stdout while logFn runs and decodes the single JSON line written.
func captureLogOutput(t *testing.T, logFn func(*zap.Logger)) map[string]any {
	t.Helper()

	resetLoggerForTest()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() { _ = r.Close() }()

	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	logger := Logger()
	logFn(logger)
	_ = logger.Sync()

	if closeErr := w.Close(); closeErr != nil {
		t.Fatalf("failed to close writer: %v", closeErr)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read log output: %v", err)
	}

	line := strings.TrimSpace(string(data))
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to unmarshal log JSON %q: %v", line, err)
	}
	return payload
}

func resetLoggerForTest() {
	loggerOnce = sync.Once{}
	baseLogger = nil
	loggerErr = nil
}

func TestLoggerStructuredOutput(t *testing.T) {
	payload := captureLogOutput(t, func(l *zap.Logger) {
		l.Info("HTTP trigger function processed a request.", zap.String("method", "GET"))
	})

	if got := payload["severity"]; got != "INFO" {
		t.Fatalf("expected severity INFO, got %v", got)
	}
	if _, exists := payload["level"]; exists {
		t.Fatal("did not expect a level field")
	}
	if msg := payload["message"]; msg != "HTTP trigger function processed a request." {
		t.Fatalf("unexpected message %v", msg)
	}
	if method := payload["method"]; method != "GET" {
		t.Fatalf("expected method GET, got %v", method)
	}

	ts, ok := payload["timestamp"].(string)
	if !ok {
		t.Fatalf("expected timestamp string, got %T", payload["timestamp"])
	}
	if _, err := time.Parse(timeutil.RFC3339Micros, ts); err != nil {
		t.Fatalf("timestamp %q is not RFC3339Micros: %v", ts, err)
	}
	if caller, _ := payload["caller"].(string); !strings.Contains(caller, "logger_test.go") {
		t.Fatalf("expected caller to reference logger_test.go, got %q", caller)
	}
}

func TestLoggerDropsDebug(t *testing.T) {
	payload := captureLogOutput(t, func(l *zap.Logger) {
		l.Debug("hidden")
		l.Warn("visible")
	})

	if payload["message"] != "visible" {
		t.Fatalf("expected only the warning to be written, got %v", payload["message"])
	}
	if payload["severity"] != "WARNING" {
		t.Fatalf("expected severity WARNING, got %v", payload["severity"])
	}
}

func TestEncodeSeverityMapping(t *testing.T) {
	tests := []struct {
		level    zapcore.Level
		expected string
	}{
		{zapcore.DebugLevel, "DEBUG"},
		{zapcore.InfoLevel, "INFO"},
		{zapcore.WarnLevel, "WARNING"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DPanicLevel, "CRITICAL"},
		{zapcore.PanicLevel, "ALERT"},
		{zapcore.FatalLevel, "EMERGENCY"},
		{zapcore.Level(99), "DEFAULT"},
	}

	for _, tt := range tests {
		enc := &captureArrayEncoder{}
		encodeSeverity(tt.level, enc)
		if len(enc.values) != 1 || enc.values[0] != tt.expected {
			t.Fatalf("encodeSeverity(%v) = %v, want %s", tt.level, enc.values, tt.expected)
		}
	}
}

func TestEncodeTimeMicros(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"utc", time.Date(2024, 6, 15, 10, 30, 45, 123456000, time.UTC), "2024-06-15T10:30:45.123456Z"},
		{"zero fraction", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01-01T00:00:00.000000Z"},
		{"converted to utc", time.Date(2024, 1, 1, 2, 0, 0, 0, local), "2024-01-01T00:00:00.000000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := &captureArrayEncoder{}
			encodeTimeMicros(tt.input, enc)
			if len(enc.values) != 1 || enc.values[0] != tt.expected {
				t.Fatalf("got %v, want %s", enc.values, tt.expected)
			}
		})
	}
}

func TestLoggerSingleton(t *testing.T) {
	resetLoggerForTest()

	if Logger() != Logger() {
		t.Fatal("expected Logger() to return the same instance")
	}
	if err := Err(); err != nil {
		t.Fatalf("expected nil init error, got %v", err)
	}
	if err := Sync(); err != nil {
		t.Logf("Sync returned error (stdout may not support fsync): %v", err)
	}
}

// captureArrayEncoder collects strings appended via the PrimitiveArrayEncoder interface.
type captureArrayEncoder struct {
	values []string
}

func (c *captureArrayEncoder) AppendBool(bool)             {}
func (c *captureArrayEncoder) AppendByteString([]byte)     {}
func (c *captureArrayEncoder) AppendComplex128(complex128) {}
func (c *captureArrayEncoder) AppendComplex64(complex64)   {}
func (c *captureArrayEncoder) AppendFloat64(float64)       {}
func (c *captureArrayEncoder) AppendFloat32(float32)       {}
func (c *captureArrayEncoder) AppendInt(int)               {}
func (c *captureArrayEncoder) AppendInt64(int64)           {}
func (c *captureArrayEncoder) AppendInt32(int32)           {}
func (c *captureArrayEncoder) AppendInt16(int16)           {}
func (c *captureArrayEncoder) AppendInt8(int8)             {}
func (c *captureArrayEncoder) AppendString(s string)       { c.values = append(c.values, s) }
func (c *captureArrayEncoder) AppendUint(uint)             {}
func (c *captureArrayEncoder) AppendUint64(uint64)         {}
func (c *captureArrayEncoder) AppendUint32(uint32)         {}
func (c *captureArrayEncoder) AppendUint16(uint16)         {}
func (c *captureArrayEncoder) AppendUint8(uint8)           {}
func (c *captureArrayEncoder) AppendUintptr(uintptr)       {}
