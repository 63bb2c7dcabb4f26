package tracker

import (
	"testing"
	"time"

	domain "github.com/example/minipm/domain/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestSchedule_DueDateOrderAndCompletionFilter(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "due later", DueDate: datePtr(dateOf(2024, 3, 5))},
		{ID: "2", Title: "no due date"},
		{ID: "3", Title: "already done", DueDate: datePtr(dateOf(2024, 3, 1)), IsCompleted: true},
	}

	schedule := Schedule(tasks, dateOf(2024, 3, 1), 2)

	require.Len(t, schedule, 2, "completed task must be excluded")

	// A present due date sorts before an absent one
	assert.Equal(t, "1", schedule[0].TaskID)
	assert.Equal(t, dateOf(2024, 3, 1), schedule[0].ScheduledDate)
	assert.Equal(t, "2", schedule[1].TaskID)
	assert.Equal(t, dateOf(2024, 3, 3), schedule[1].ScheduledDate)
}

func TestSchedule_DaysPerTaskFlooredToOne(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
		{ID: "c", Title: "third"},
	}

	for _, daysPerTask := range []int{0, -3} {
		schedule := Schedule(tasks, dateOf(2024, 3, 1), daysPerTask)

		require.Len(t, schedule, 3)
		assert.Equal(t, dateOf(2024, 3, 1), schedule[0].ScheduledDate)
		assert.Equal(t, dateOf(2024, 3, 2), schedule[1].ScheduledDate)
		assert.Equal(t, dateOf(2024, 3, 3), schedule[2].ScheduledDate)
	}
}

func TestSchedule_StableOnTies(t *testing.T) {
	due := dateOf(2024, 4, 10)
	tasks := []domain.Task{
		{ID: "first", Title: "t1", DueDate: datePtr(due)},
		{ID: "second", Title: "t2", DueDate: datePtr(due)},
		{ID: "third", Title: "t3"},
		{ID: "fourth", Title: "t4"},
	}

	schedule := Schedule(tasks, dateOf(2024, 4, 1), 1)

	require.Len(t, schedule, 4)
	// Equal due dates and missing due dates keep input order
	assert.Equal(t, "first", schedule[0].TaskID)
	assert.Equal(t, "second", schedule[1].TaskID)
	assert.Equal(t, "third", schedule[2].TaskID)
	assert.Equal(t, "fourth", schedule[3].TaskID)
}

func TestSchedule_Empty(t *testing.T) {
	assert.Empty(t, Schedule(nil, dateOf(2024, 3, 1), 1))

	onlyCompleted := []domain.Task{
		{ID: "x", Title: "done", IsCompleted: true},
	}
	assert.Empty(t, Schedule(onlyCompleted, dateOf(2024, 3, 1), 1))
}

func TestSchedule_DoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "later", DueDate: datePtr(dateOf(2024, 3, 9))},
		{ID: "2", Title: "sooner", DueDate: datePtr(dateOf(2024, 3, 2))},
	}

	Schedule(tasks, dateOf(2024, 3, 1), 1)

	// The input slice keeps its order; the sort works on a copy
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "2", tasks[1].ID)
}
