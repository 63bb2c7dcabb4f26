package tracker

import (
	"sort"
	"time"

	domain "github.com/example/minipm/domain/tracker"
)

// ScheduledTask is one row of a computed schedule. It is derived output
// and never persisted.
type ScheduledTask struct {
	TaskID        string
	Title         string
	ScheduledDate time.Time
}

// Schedule lays out the incomplete tasks on sequential dates starting at
// start. Tasks are ordered by due date ascending with missing due dates
// last; the sort is stable, so ties keep their input order. The cursor
// advances daysPerTask days per task, floored to 1 when daysPerTask is
// zero or negative.
func Schedule(tasks []domain.Task, start time.Time, daysPerTask int) []ScheduledTask {
	incomplete := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted {
			incomplete = append(incomplete, t)
		}
	}

	sort.SliceStable(incomplete, func(i, j int) bool {
		return dueOrMax(incomplete[i]).Before(dueOrMax(incomplete[j]))
	})

	step := daysPerTask
	if step <= 0 {
		step = 1
	}

	schedule := make([]ScheduledTask, 0, len(incomplete))
	day := start
	for _, t := range incomplete {
		schedule = append(schedule, ScheduledTask{
			TaskID:        t.ID,
			Title:         t.Title,
			ScheduledDate: day,
		})
		day = day.AddDate(0, 0, step)
	}
	return schedule
}

// maxDueDate stands in for a missing due date so undated tasks sort last.
var maxDueDate = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

func dueOrMax(t domain.Task) time.Time {
	if t.DueDate == nil {
		return maxDueDate
	}
	return *t.DueDate
}
