package logging

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "benjmark.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogRun("ok", "cpp", "inputs/30.json", map[string]int{"size": 30})
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, `[OK] key=cpp input=inputs/30.json payload={"size":30}`) {
		t.Fatalf("expected LogRun content, got: %s", content)
	}
}

func TestBuildRunMessageDefaults(t *testing.T) {
	msg := buildRunMessage(" ", " ", "", errors.New("exit status 1"))
	if !strings.HasPrefix(msg, "[RUN]") {
		t.Fatalf("expected default status, got: %s", msg)
	}
	if !strings.Contains(msg, "key=unknown") {
		t.Fatalf("expected default key, got: %s", msg)
	}
	if strings.Contains(msg, "input=") {
		t.Fatalf("expected input to be omitted, got: %s", msg)
	}
	if !strings.Contains(msg, "payload=exit status 1") {
		t.Fatalf("expected error payload, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi\n")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}

func TestInitWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("to stdout")
	if buf.Len() != 0 {
		t.Fatalf("expected output to move to stdout, got: %s", buf.String())
	}
}
