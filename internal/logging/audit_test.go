package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestAppendWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewAuditLog(&buf)

	entries := []AuditEntry{
		{EventID: "ev-1", Tick: 12, Kind: "alarm", Class: "false", Probability: 0.7, RestBudget: 81, Weather: "clear"},
		{Tick: 40, Kind: "rest", RestBudget: 100, DriveMinutes: 200},
	}
	for _, e := range entries {
		if err := l.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var got AuditEntry
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("line 0 is not valid JSON: %v", err)
	}
	if got.EventID != "ev-1" || got.Tick != 12 || got.Kind != "alarm" || got.Class != "false" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be stamped on append")
	}

	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if got.Kind != "rest" || got.DriveMinutes != 200 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestNilAuditLog(t *testing.T) {
	if l := NewAuditLog(nil); l != nil {
		t.Fatal("nil writer should yield a nil log")
	}
	var l *AuditLog
	if err := l.Append(AuditEntry{Tick: 1, Kind: "rest"}); err != nil {
		t.Fatalf("nil log append should be a no-op, got %v", err)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestAppendWriteError(t *testing.T) {
	l := NewAuditLog(brokenWriter{})
	err := l.Append(AuditEntry{Tick: 1, Kind: "alarm"})
	if err == nil {
		t.Fatal("write failure should surface")
	}
	if !strings.Contains(err.Error(), "pipe closed") {
		t.Fatalf("error should wrap the cause: %v", err)
	}
}
