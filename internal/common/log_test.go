// File path: internal/common/log_test.go
package common

import (
	"log/slog"
	"testing"
	"time"
)

func record(t *testing.T, msg string, attrs ...slog.Attr) slog.Record {
	t.Helper()
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	rec.AddAttrs(attrs...)
	return rec
}

func TestBuildLogEntryComponent(t *testing.T) {
	entry := buildLogEntry(record(t, "compose: payload assembled", slog.Int("tables", 2)))
	if entry.Component != "compose" {
		t.Fatalf("Component = %q", entry.Component)
	}
	if entry.Level != "info" {
		t.Fatalf("Level = %q", entry.Level)
	}
	if entry.Attributes["tables"] != int64(2) {
		t.Fatalf("Attributes = %v", entry.Attributes)
	}

	plain := buildLogEntry(record(t, "no component here"))
	if plain.Component != "" {
		t.Fatalf("Component = %q, want empty", plain.Component)
	}
}

func TestLogSinkCapAndCopy(t *testing.T) {
	s := newLogSink(3)
	for i := 0; i < 5; i++ {
		s.capture(record(t, "api: request"))
	}
	entries := s.entries()
	if len(entries) != 3 {
		t.Fatalf("history = %d, want capped at 3", len(entries))
	}
	entries[0].Message = "mutated"
	if s.entries()[0].Message != "api: request" {
		t.Fatal("entries must return a copy of the history")
	}
}

func TestLogEntriesSince(t *testing.T) {
	Logger().Info("test: before mark")
	time.Sleep(2 * time.Millisecond)
	mark := time.Now().UTC()
	Logger().Info("test: after mark")

	recent := LogEntriesSince(mark)
	if len(recent) == 0 {
		t.Fatal("expected entries at or after the mark")
	}
	for _, entry := range recent {
		if entry.Time.Before(mark) {
			t.Fatalf("entry %q predates the mark", entry.Message)
		}
	}
}
