package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"taskhorizon/pkg/models"
)

func TestCSVStore_LoadMissingFile(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "tasks.csv"))

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestCSVStore_RoundTrip(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "tasks.csv"))

	recurring := taskAt(baseTime.AddDate(0, 0, 1), "pay rent")
	recurring.IsRecurring = true
	recurring.RecurrenceType = models.RecurMonthly
	oneOff := taskAt(baseTime.AddDate(0, 0, 3), "dentist, 10am")
	everyN := taskAt(baseTime.AddDate(0, 0, 5), "water plants")
	everyN.IsRecurring = true
	everyN.RecurrenceType = models.RecurDays
	everyN.RecurrenceValue = 3

	want := []models.Task{recurring, oneOff, everyN}
	if err := store.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Fatalf("task %d mismatch after round-trip:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestCSVStore_SaveEmptyWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	store := NewCSVStore(path)

	if err := store.Save(nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	content := strings.TrimSpace(string(data))
	if content != strings.Join(csvHeader, ",") {
		t.Fatalf("expected header-only file, got %q", content)
	}
}

func TestCSVStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "tasks.csv")
	store := NewCSVStore(path)

	if err := store.Save([]models.Task{taskAt(baseTime, "first")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestCSVStore_LoadSortsByDueTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	store := NewCSVStore(path)

	// Persist in reverse due order; load must not trust disk order.
	late := taskAt(baseTime.AddDate(0, 0, 9), "late")
	mid := taskAt(baseTime.AddDate(0, 0, 4), "mid")
	early := taskAt(baseTime, "early")
	if err := store.Save([]models.Task{late, mid, early}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	summaries := []string{got[0].Summary, got[1].Summary, got[2].Summary}
	want := []string{"early", "mid", "late"}
	if !reflect.DeepEqual(summaries, want) {
		t.Fatalf("load order %v, want %v", summaries, want)
	}
}

func TestCSVStore_LoadMalformedRecurrenceValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	row := `task_id,summary,details,is_recurring,recurrence_type,recurrence_value,due_time,alert_times,created_at
abc_100,bad,row,true,days,seven,2026-06-01T09:00:00,"[""2026-06-01T09:00:00""]",2026-06-01T09:00:00
`
	if err := os.WriteFile(path, []byte(row), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewCSVStore(path).Load(); err == nil {
		t.Fatal("expected error for non-numeric recurrence value")
	}
}

func TestCSVStore_LoadMalformedDueTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	row := `task_id,summary,details,is_recurring,recurrence_type,recurrence_value,due_time,alert_times,created_at
abc_100,bad,row,false,,,not-a-time,[],2026-06-01T09:00:00
`
	if err := os.WriteFile(path, []byte(row), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewCSVStore(path).Load(); err == nil {
		t.Fatal("expected error for unparseable due time")
	}
}

func TestCSVStore_CaseInsensitiveRecurringFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	row := `task_id,summary,details,is_recurring,recurrence_type,recurrence_value,due_time,alert_times,created_at
abc_100,upper,flag,True,daily,,2026-06-01T09:00:00,"[""2026-06-01T09:00:00""]",2026-06-01T09:00:00
`
	if err := os.WriteFile(path, []byte(row), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewCSVStore(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 1 || !got[0].IsRecurring {
		t.Fatalf("expected one recurring task, got %+v", got)
	}
}
