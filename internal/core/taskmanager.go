package core

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"taskhorizon/internal/observability"
	"taskhorizon/internal/storage"
	"taskhorizon/pkg/models"
)

// Persister is the subset of storage.CSVStore that the task manager needs.
// Defining it here keeps the manager testable without a real file store.
type Persister interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

// CreateRequest carries the fields for a new task.
type CreateRequest struct {
	Summary         string
	Details         string
	IsRecurring     bool
	RecurrenceType  string
	RecurrenceValue int
	DueTime         string
	AlertTimes      []string
}

// UpdateRequest carries optional field overwrites for an existing task.
// Nil pointers (and a nil AlertTimes slice) leave the field untouched.
type UpdateRequest struct {
	Summary         *string
	Details         *string
	IsRecurring     *bool
	RecurrenceType  *string
	RecurrenceValue *int
	DueTime         *string
	AlertTimes      []string
}

// Empty reports whether the request touches no fields.
func (r UpdateRequest) Empty() bool {
	return r.Summary == nil && r.Details == nil && r.IsRecurring == nil &&
		r.RecurrenceType == nil && r.RecurrenceValue == nil &&
		r.DueTime == nil && r.AlertTimes == nil
}

// TaskManager defines the task lifecycle operations exposed to the CLI and
// MCP layers.
type TaskManager interface {
	Create(req CreateRequest) (*models.Task, error)
	Update(id string, req UpdateRequest) (*models.Task, error)
	Delete(id string) (bool, error)
	DeleteAll() (bool, error)
	Get(id string) (*models.Task, error)
	GetAll() ([]models.Task, error)
	ListInTimeframe(start, end string) ([]models.Task, error)
	ListUpcoming(daysAhead int) ([]models.Task, error)
}

// taskManager implements TaskManager over the sorted task list, flushing the
// whole store to the Persister after every mutation.
//
// One mutex covers each whole logical operation, including recurrence
// expansion and the flush: a read interleaved with an in-progress expansion
// must never observe a partially expanded series.
type taskManager struct {
	mu      sync.Mutex
	list    *storage.TaskList
	persist Persister
	events  observability.EventLog // may be nil
	horizon time.Duration
}

// NewTaskManager creates a TaskManager and populates it from the persisted
// store. A load failure is recorded and leaves the store empty; it is never
// fatal to startup. events may be nil to disable event recording.
func NewTaskManager(persist Persister, events observability.EventLog, horizonYears int) TaskManager {
	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}
	tm := &taskManager{
		list:    storage.NewTaskList(),
		persist: persist,
		events:  events,
		horizon: time.Duration(horizonYears) * 365 * 24 * time.Hour,
	}
	tm.loadInitial()
	return tm
}

func (tm *taskManager) loadInitial() {
	tasks, err := tm.persist.Load()
	if err != nil {
		tm.record("ERROR", observability.EventLoadFailed, err.Error(), nil)
		return
	}
	for i := range tasks {
		if err := tm.list.InsertSorted(tasks[i]); err != nil {
			tm.record("ERROR", observability.EventLoadFailed, err.Error(), nil)
			tm.list.Clear()
			return
		}
	}
}

// Create validates the request, inserts the new task, and persists. If the
// task is recurring the whole series is expanded immediately: occurrences
// are generated while their due time stays within the horizon measured from
// now, each one an independent task with its own identifier and creation
// time. A daily rule therefore inserts on the order of a couple thousand
// tasks in a single call. The store is persisted once before expansion and
// once after.
func (tm *taskManager) Create(req CreateRequest) (*models.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		return nil, validationf("task summary cannot be empty")
	}
	details := strings.TrimSpace(req.Details)
	if details == "" {
		return nil, validationf("task details cannot be empty")
	}

	due, err := models.ParseTime(req.DueTime)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	now := time.Now()
	if !due.After(now) {
		return nil, validationf("due time must be in the future")
	}

	var rule models.RecurrenceRule
	if req.IsRecurring {
		if req.RecurrenceType == "" {
			return nil, validationf("recurrence type is required for recurring tasks")
		}
		rule = models.RecurrenceRule(strings.ToLower(req.RecurrenceType))
		if !rule.Valid() {
			return nil, validationf("invalid recurrence type: %s", req.RecurrenceType)
		}
		if rule.NeedsValue() && req.RecurrenceValue <= 0 {
			return nil, validationf("recurrence value is required for %s", rule)
		}
	}

	task := models.Task{
		ID:              models.NewTaskID(due),
		Summary:         summary,
		Details:         details,
		IsRecurring:     req.IsRecurring,
		RecurrenceType:  rule,
		RecurrenceValue: req.RecurrenceValue,
		DueTime:         req.DueTime,
		AlertTimes:      append([]string(nil), req.AlertTimes...),
		CreatedAt:       now.Format(models.TimeLayout),
	}
	task.EnsureAlertDefault()

	if err := tm.list.InsertSorted(task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	tm.flush()
	tm.record("INFO", observability.EventTaskCreated, task.Summary, map[string]any{"id": task.ID, "due": task.DueTime})

	if task.IsRecurring {
		expanded := tm.expandSeries(task, due, now)
		tm.flush()
		if expanded > 0 {
			tm.record("INFO", observability.EventTaskExpanded, task.Summary, map[string]any{"seed": task.ID, "occurrences": expanded})
		}
	}

	out := task.Clone()
	return &out, nil
}

// expandSeries materializes future occurrences of the seed out to
// now + horizon. The horizon is what keeps the insert count bounded.
func (tm *taskManager) expandSeries(seed models.Task, due, now time.Time) int {
	bound := now.Add(tm.horizon)
	count := 0
	next := NextDue(due, seed.RecurrenceType, seed.RecurrenceValue)
	for !next.After(bound) {
		if !next.After(due) {
			// A non-advancing rule would loop forever.
			break
		}
		dueStr := next.Format(models.TimeLayout)
		occ := models.Task{
			ID:              models.NewTaskID(next),
			Summary:         seed.Summary,
			Details:         seed.Details,
			IsRecurring:     true,
			RecurrenceType:  seed.RecurrenceType,
			RecurrenceValue: seed.RecurrenceValue,
			DueTime:         dueStr,
			AlertTimes:      []string{dueStr},
			CreatedAt:       time.Now().Format(models.TimeLayout),
		}
		if err := tm.list.InsertSorted(occ); err != nil {
			break
		}
		count++
		due = next
		next = NextDue(due, seed.RecurrenceType, seed.RecurrenceValue)
	}
	return count
}

// Update applies the supplied fields to the task with the given identifier.
// Summary and details must stay non-empty after trimming; a supplied due
// time must parse to a future instant and repositions the task in the list.
// The identifier keeps its originally embedded timestamp even when the due
// time moves, so identifier lookups for the task may degrade afterwards.
func (tm *taskManager) Update(id string, req UpdateRequest) (*models.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	idx := tm.list.FindByID(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}
	task := tm.list.TaskAt(idx)

	if req.Summary != nil {
		s := strings.TrimSpace(*req.Summary)
		if s == "" {
			return nil, validationf("task summary cannot be empty")
		}
		task.Summary = s
	}
	if req.Details != nil {
		d := strings.TrimSpace(*req.Details)
		if d == "" {
			return nil, validationf("task details cannot be empty")
		}
		task.Details = d
	}
	if req.IsRecurring != nil {
		task.IsRecurring = *req.IsRecurring
	}
	if req.RecurrenceType != nil {
		task.RecurrenceType = models.RecurrenceRule(strings.ToLower(*req.RecurrenceType))
	}
	if req.RecurrenceValue != nil {
		task.RecurrenceValue = *req.RecurrenceValue
	}
	if req.AlertTimes != nil {
		task.AlertTimes = append([]string(nil), req.AlertTimes...)
	}

	if req.DueTime != nil {
		due, err := models.ParseTime(*req.DueTime)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		if !due.After(time.Now()) {
			return nil, validationf("due time must be in the future")
		}
		tm.list.RemoveAt(idx)
		task.DueTime = *req.DueTime
		if err := tm.list.InsertSorted(task); err != nil {
			return nil, fmt.Errorf("updating task %s: %w", id, err)
		}
	} else {
		if err := tm.list.ReplaceAt(idx, task); err != nil {
			return nil, fmt.Errorf("updating task %s: %w", id, err)
		}
	}

	tm.flush()
	tm.record("INFO", observability.EventTaskUpdated, task.Summary, map[string]any{"id": id})

	out := task.Clone()
	return &out, nil
}

// Delete removes the task with the given identifier and persists. A missing
// identifier is not an error; it returns false.
func (tm *taskManager) Delete(id string) (bool, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	idx := tm.list.FindByID(id)
	if idx < 0 {
		return false, nil
	}
	removed := tm.list.RemoveAt(idx)
	tm.flush()
	tm.record("INFO", observability.EventTaskDeleted, removed.Summary, map[string]any{"id": id})
	return true, nil
}

// DeleteAll empties the store and persists a header-only file. Returns false
// if the store was already empty.
func (tm *taskManager) DeleteAll() (bool, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.list.Len() == 0 {
		return false, nil
	}
	n := tm.list.Clear()
	tm.flush()
	tm.record("INFO", observability.EventStoreCleared, "all tasks deleted", map[string]any{"count": n})
	return true, nil
}

// Get returns the task with the given identifier.
func (tm *taskManager) Get(id string) (*models.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	idx := tm.list.FindByID(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}
	task := tm.list.TaskAt(idx)
	return &task, nil
}

// GetAll returns a copy of every task in due-time order.
func (tm *taskManager) GetAll() ([]models.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.list.All(), nil
}

// ListInTimeframe returns every task with start <= due time <= end, in
// sorted order. Both bounds must parse and start must not follow end.
func (tm *taskManager) ListInTimeframe(start, end string) ([]models.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	startAt, err := models.ParseTime(start)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	endAt, err := models.ParseTime(end)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if startAt.After(endAt) {
		return nil, validationf("start time must be before end time")
	}
	return tm.list.Range(startAt, endAt), nil
}

// ListUpcoming returns tasks due between now and daysAhead days from now.
// Non-positive daysAhead defaults to 7.
func (tm *taskManager) ListUpcoming(daysAhead int) ([]models.Task, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := time.Now()
	return tm.list.Range(now, now.AddDate(0, 0, daysAhead)), nil
}

// flush rewrites the persisted file from the in-memory list. A failed save
// is recorded but the in-memory mutation is kept; memory and disk stay
// inconsistent until the next successful save.
func (tm *taskManager) flush() {
	if err := tm.persist.Save(tm.list.All()); err != nil {
		tm.record("ERROR", observability.EventSaveFailed, err.Error(), nil)
	}
}

func (tm *taskManager) record(level, eventType, msg string, data map[string]any) {
	if tm.events == nil {
		return
	}
	_ = tm.events.Write(observability.Event{
		Time:    time.Now(),
		Level:   level,
		Type:    eventType,
		Message: msg,
		Data:    data,
	})
}
