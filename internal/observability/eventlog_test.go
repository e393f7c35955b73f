package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLog(t *testing.T) (EventLog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("opening event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log, path
}

func TestEventLogWriteAndRead(t *testing.T) {
	log, _ := newTestLog(t)

	events := []Event{
		{Time: time.Now(), Level: "INFO", Type: EventTaskCreated, Message: "pay rent", Data: map[string]any{"id": "abc_100"}},
		{Time: time.Now(), Level: "ERROR", Type: EventSaveFailed, Message: "disk full"},
		{Time: time.Now(), Level: "INFO", Type: EventTaskDeleted, Message: "pay rent"},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Type != EventTaskCreated || got[0].Message != "pay rent" {
		t.Fatalf("first event mismatch: %+v", got[0])
	}
	if got[0].Data["id"] != "abc_100" {
		t.Fatalf("event data lost: %+v", got[0].Data)
	}
}

func TestEventLogFilters(t *testing.T) {
	log, _ := newTestLog(t)

	old := time.Now().Add(-time.Hour)
	recent := time.Now()
	writes := []Event{
		{Time: old, Level: "INFO", Type: EventTaskCreated, Message: "a"},
		{Time: recent, Level: "INFO", Type: EventTaskCreated, Message: "b"},
		{Time: recent, Level: "ERROR", Type: EventSaveFailed, Message: "c"},
	}
	for _, e := range writes {
		if err := log.Write(e); err != nil {
			t.Fatal(err)
		}
	}

	byType, err := log.Read(EventFilter{Type: EventSaveFailed})
	if err != nil {
		t.Fatal(err)
	}
	if len(byType) != 1 || byType[0].Message != "c" {
		t.Fatalf("type filter returned %+v", byType)
	}

	byLevel, err := log.Read(EventFilter{Level: "INFO"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byLevel) != 2 {
		t.Fatalf("level filter returned %d events", len(byLevel))
	}

	cutoff := time.Now().Add(-time.Minute)
	since, err := log.Read(EventFilter{Since: &cutoff})
	if err != nil {
		t.Fatal(err)
	}
	if len(since) != 2 {
		t.Fatalf("since filter returned %d events, want 2", len(since))
	}
}

func TestEventLogSkipsMalformedLines(t *testing.T) {
	log, path := newTestLog(t)

	if err := log.Write(Event{Time: time.Now(), Level: "INFO", Type: EventTaskCreated, Message: "keep"}); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json}\n\n"); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	if err := log.Write(Event{Time: time.Now(), Level: "INFO", Type: EventTaskCreated, Message: "also keep"}); err != nil {
		t.Fatal(err)
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected malformed lines to be skipped, got %d events", len(got))
	}
}

func TestEventLogReadMissingFile(t *testing.T) {
	log := &jsonlEventLog{path: filepath.Join(t.TempDir(), "nope.jsonl")}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}
