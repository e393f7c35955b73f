package core

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"taskhorizon/pkg/models"
)

func genCreateRequest(t *rapid.T) CreateRequest {
	hours := rapid.IntRange(1, 24*400).Draw(t, "dueHours")
	n := rapid.IntRange(0, 9999).Draw(t, "taskNum")
	return CreateRequest{
		Summary: fmt.Sprintf("task %d", n),
		Details: fmt.Sprintf("details %d", n),
		DueTime: time.Now().Add(time.Duration(hours) * time.Hour).Format(models.TimeLayout),
	}
}

// Feature: taskhorizon, Property 4: Store Stays Sorted Under Any Operation Mix
func TestManagerAlwaysSorted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tm := NewTaskManager(&memPersister{}, nil, DefaultHorizonYears)

		var ids []string
		nOps := rapid.IntRange(1, 30).Draw(t, "nOps")
		for op := 0; op < nOps; op++ {
			switch rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("op%d", op)) {
			case 0: // create
				task, err := tm.Create(genCreateRequest(t))
				if err != nil {
					t.Fatal(err)
				}
				ids = append(ids, task.ID)
			case 1: // delete a known or unknown task
				if len(ids) > 0 && rapid.Bool().Draw(t, fmt.Sprintf("delKnown%d", op)) {
					i := rapid.IntRange(0, len(ids)-1).Draw(t, fmt.Sprintf("delIdx%d", op))
					if _, err := tm.Delete(ids[i]); err != nil {
						t.Fatal(err)
					}
					ids = append(ids[:i], ids[i+1:]...)
				} else if _, err := tm.Delete("absent_1"); err != nil {
					t.Fatal(err)
				}
			case 2: // rename a known task
				if len(ids) == 0 {
					continue
				}
				i := rapid.IntRange(0, len(ids)-1).Draw(t, fmt.Sprintf("updIdx%d", op))
				summary := fmt.Sprintf("renamed %d", op)
				if _, err := tm.Update(ids[i], UpdateRequest{Summary: &summary}); err != nil {
					t.Fatal(err)
				}
			}

			all, err := tm.GetAll()
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != len(ids) {
				t.Fatalf("store has %d tasks, expected %d", len(all), len(ids))
			}
			for i := 1; i < len(all); i++ {
				prev, err := all[i-1].DueAt()
				if err != nil {
					t.Fatal(err)
				}
				cur, err := all[i].DueAt()
				if err != nil {
					t.Fatal(err)
				}
				if cur.Before(prev) {
					t.Fatalf("after op %d: task %d due %s precedes task %d due %s",
						op, i, all[i].DueTime, i-1, all[i-1].DueTime)
				}
			}
		}
	})
}
