// Package storage provides the in-memory sorted task list and its CSV-backed
// persistence.
package storage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskhorizon/pkg/models"
)

// entry pairs a task with its parsed due time so ordering comparisons never
// re-parse the stored string.
type entry struct {
	task models.Task
	due  time.Time
}

// TaskList is an ordered collection of tasks sorted ascending by due time.
// Ties keep a stable order relative to later inserts. The list exclusively
// owns its tasks: every accessor returns clones, never live references.
type TaskList struct {
	entries []entry
}

// NewTaskList returns an empty task list.
func NewTaskList() *TaskList {
	return &TaskList{}
}

// Len returns the number of stored tasks.
func (l *TaskList) Len() int {
	return len(l.entries)
}

// InsertSorted inserts the task at its due-time position. The insertion point
// is located by binary search; equal due times insert before existing
// entries, matching lower-bound semantics.
func (l *TaskList) InsertSorted(task models.Task) error {
	due, err := task.DueAt()
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	i := sort.Search(len(l.entries), func(i int) bool {
		return !l.entries[i].due.Before(due)
	})
	l.entries = append(l.entries, entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = entry{task: task, due: due}
	return nil
}

// FindByID returns the index of the task with the given identifier, or -1.
//
// The fast path parses the trailing _<unix-seconds> suffix of the identifier,
// binary-searches for that due time, then scans a small neighborhood for the
// exact match (due-time collisions make the position ambiguous). If the task's
// due time was updated after creation the embedded timestamp is stale and the
// fast path misses; that asymmetry is part of the identifier contract.
// A malformed identifier degrades to a full linear scan.
func (l *TaskList) FindByID(id string) int {
	target, ok := idTimestamp(id)
	if !ok {
		return l.linearFind(id)
	}

	i := sort.Search(len(l.entries), func(i int) bool {
		return !l.entries[i].due.Before(target)
	})
	if i > 0 {
		i--
	}
	for ; i < len(l.entries); i++ {
		if l.entries[i].task.ID == id {
			return i
		}
		if l.entries[i].due.After(target) {
			break
		}
	}
	return -1
}

// linearFind is the O(n) fallback for identifiers without a parseable suffix.
func (l *TaskList) linearFind(id string) int {
	for i := range l.entries {
		if l.entries[i].task.ID == id {
			return i
		}
	}
	return -1
}

// idTimestamp extracts the due time embedded in an identifier of the form
// <prefix>_<unix-seconds>.
func idTimestamp(id string) (time.Time, bool) {
	sep := strings.LastIndex(id, "_")
	if sep < 0 || sep == len(id)-1 {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(id[sep+1:], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

// Range returns clones of every task with start <= due time <= end, in
// sorted order. Both boundaries are inclusive: the lower bound search admits
// tasks exactly at start, and the upper index extends forward through tasks
// exactly at end.
func (l *TaskList) Range(start, end time.Time) []models.Task {
	lo := sort.Search(len(l.entries), func(i int) bool {
		return !l.entries[i].due.Before(start)
	})
	hi := sort.Search(len(l.entries), func(i int) bool {
		return !l.entries[i].due.Before(end)
	})
	for hi < len(l.entries) && !l.entries[hi].due.After(end) {
		hi++
	}
	out := make([]models.Task, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, l.entries[i].task.Clone())
	}
	return out
}

// TaskAt returns a clone of the task at index i. An out-of-range index is a
// programming error and panics.
func (l *TaskList) TaskAt(i int) models.Task {
	l.check(i)
	return l.entries[i].task.Clone()
}

// ReplaceAt overwrites the task at index i in place. The replacement must
// share the incumbent's due time; a repositioning change goes through
// RemoveAt plus InsertSorted instead.
func (l *TaskList) ReplaceAt(i int, task models.Task) error {
	l.check(i)
	due, err := task.DueAt()
	if err != nil {
		return fmt.Errorf("replacing task at %d: %w", i, err)
	}
	if !due.Equal(l.entries[i].due) {
		return fmt.Errorf("replacing task at %d: due time changed, reinsert instead", i)
	}
	l.entries[i].task = task
	return nil
}

// RemoveAt removes and returns the task at index i, panicking on an
// out-of-range index.
func (l *TaskList) RemoveAt(i int) models.Task {
	l.check(i)
	t := l.entries[i].task
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return t
}

// All returns clones of every task in sorted order.
func (l *TaskList) All() []models.Task {
	out := make([]models.Task, 0, len(l.entries))
	for i := range l.entries {
		out = append(out, l.entries[i].task.Clone())
	}
	return out
}

// Clear removes every task and returns how many were removed.
func (l *TaskList) Clear() int {
	n := len(l.entries)
	l.entries = nil
	return n
}

func (l *TaskList) check(i int) {
	if i < 0 || i >= len(l.entries) {
		panic(fmt.Sprintf("storage: task index %d out of range [0,%d)", i, len(l.entries)))
	}
}
