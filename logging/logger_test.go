package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggingBuilder().SetOutput(&buf).Build()

	logger.Info("server started", Field{Key: "port", Value: 8080})

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Errorf("missing level in output: %q", line)
	}
	if !strings.Contains(line, "server started") {
		t.Errorf("missing message in output: %q", line)
	}
	if !strings.Contains(line, "port=8080") {
		t.Errorf("missing field in output: %q", line)
	}
}

func TestMinimumLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggingBuilder().SetOutput(&buf).SetMinimumLevel(LogLevelWarn).Build()

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("info entry should have been filtered")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn entry missing")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggingBuilder().SetOutput(&buf).UseJSON().Build().
		WithCategory("Test").
		WithFields(Field{Key: "request_id", Value: "abc"})

	logger.Error("boom", Field{Key: "code", Value: 500})

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if payload["level"] != "ERROR" || payload["message"] != "boom" {
		t.Errorf("unexpected payload: %v", payload)
	}
	if payload["category"] != "Test" || payload["request_id"] != "abc" {
		t.Errorf("derived logger context lost: %v", payload)
	}
	if payload["code"] != float64(500) {
		t.Errorf("field missing: %v", payload)
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggingBuilder().SetOutput(&buf).Build()
	_ = parent.WithFields(Field{Key: "child", Value: true})

	parent.Info("plain")
	if strings.Contains(buf.String(), "child") {
		t.Error("parent logger picked up child fields")
	}
}
