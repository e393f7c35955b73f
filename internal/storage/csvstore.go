package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskhorizon/pkg/models"
)

// csvHeader fixes the column order of the persisted file.
var csvHeader = []string{
	"task_id", "summary", "details", "is_recurring",
	"recurrence_type", "recurrence_value", "due_time",
	"alert_times", "created_at",
}

// CSVStore persists the full task list to a single CSV file. Every mutation
// rewrites the whole file; there is no incremental append. Empty
// recurrence_type/recurrence_value cells mean "not applicable", and
// alert_times is stored as a JSON array of timestamp strings.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store backed by the CSV file at path. The file is
// not required to exist.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the backing file location.
func (s *CSVStore) Path() string {
	return s.path
}

// Load reads all tasks from the backing file and returns them sorted
// ascending by due time; the on-disk row order is not trusted. A missing
// file is not an error and yields an empty result.
func (s *CSVStore) Load() ([]models.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening task file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	type row struct {
		task models.Task
		due  time.Time
	}
	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		task, err := taskFromRecord(rec)
		if err != nil {
			return nil, err
		}
		due, err := task.DueAt()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row{task: task, due: due})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].due.Before(rows[j].due)
	})

	tasks := make([]models.Task, len(rows))
	for i := range rows {
		tasks[i] = rows[i].task
	}
	return tasks, nil
}

// Save rewrites the backing file from the given tasks. An empty list still
// writes a header-only file.
func (s *CSVStore) Save(tasks []models.Task) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("saving tasks: creating directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("saving tasks: writing header: %w", err)
	}
	for i := range tasks {
		rec, err := recordFromTask(&tasks[i])
		if err != nil {
			return err
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("saving task %s: %w", tasks[i].ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("saving tasks: flushing: %w", err)
	}
	return nil
}

func taskFromRecord(rec []string) (models.Task, error) {
	task := models.Task{
		ID:             rec[0],
		Summary:        rec[1],
		Details:        rec[2],
		IsRecurring:    strings.EqualFold(rec[3], "true"),
		RecurrenceType: models.RecurrenceRule(rec[4]),
		DueTime:        rec[6],
		CreatedAt:      rec[8],
	}

	if rec[5] != "" {
		v, err := strconv.Atoi(rec[5])
		if err != nil {
			return models.Task{}, fmt.Errorf("task %s: recurrence value %q: %w", task.ID, rec[5], err)
		}
		task.RecurrenceValue = v
	}

	if rec[7] != "" {
		if err := json.Unmarshal([]byte(rec[7]), &task.AlertTimes); err != nil {
			return models.Task{}, fmt.Errorf("task %s: alert times %q: %w", task.ID, rec[7], err)
		}
	}

	return task, nil
}

func recordFromTask(t *models.Task) ([]string, error) {
	alerts, err := json.Marshal(t.AlertTimes)
	if err != nil {
		return nil, fmt.Errorf("saving task %s: encoding alert times: %w", t.ID, err)
	}

	recurrenceValue := ""
	if t.RecurrenceValue != 0 {
		recurrenceValue = strconv.Itoa(t.RecurrenceValue)
	}

	return []string{
		t.ID,
		t.Summary,
		t.Details,
		strconv.FormatBool(t.IsRecurring),
		string(t.RecurrenceType),
		recurrenceValue,
		t.DueTime,
		string(alerts),
		t.CreatedAt,
	}, nil
}
