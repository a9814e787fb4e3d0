package zerolog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bulib/bucache"
)

func TestFieldsReachOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: zerolog.New(&buf)}

	l.Warn("remote operation failed", bucache.Fields{"op": "set", "key": "bulib:rooms:9f3a21c0"})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not one JSON record: %v\n%s", err, buf.String())
	}
	if rec["level"] != "warn" {
		t.Errorf("level = %v, want warn", rec["level"])
	}
	if rec["message"] != "remote operation failed" {
		t.Errorf("message = %v", rec["message"])
	}
	if rec["op"] != "set" || rec["key"] != "bulib:rooms:9f3a21c0" {
		t.Errorf("fields missing from record: %v", rec)
	}
}

func TestNilFields(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: zerolog.New(&buf)}

	l.Debug("invalidated pattern", nil)
	if buf.Len() == 0 {
		t.Fatalf("nil fields should still produce a record")
	}
}
