package tracker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestService creates a TrackerService on an in-memory database
// with a fixed clock.
func setupTestService(t *testing.T) *TrackerService {
	t.Helper()

	service := NewTrackerService(NewRepository(setupTestDB(t)))
	service.now = func() time.Time {
		return time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	}
	return service
}

func TestTrackerService_CreateProjectTitleBoundaries(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "length 2 rejected", title: strings.Repeat("a", 2), wantErr: ErrTitleLength},
		{name: "length 3 accepted", title: strings.Repeat("a", 3)},
		{name: "length 100 accepted", title: strings.Repeat("a", 100)},
		{name: "length 101 rejected", title: strings.Repeat("a", 101), wantErr: ErrTitleLength},
		{name: "whitespace only rejected", title: "    ", wantErr: ErrTitleLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateProject(ctx, userID, tt.title, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrackerService_CreateProjectDescriptionBoundary(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.CreateProject(ctx, userID, "valid title", strings.Repeat("d", 500))
	assert.NoError(t, err)

	_, err = service.CreateProject(ctx, userID, "valid title", strings.Repeat("d", 501))
	assert.ErrorIs(t, err, ErrDescriptionLength)
}

func TestTrackerService_CreateTask(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	project, err := service.CreateProject(ctx, userID, "Garden work", "")
	require.NoError(t, err)

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := service.CreateTask(ctx, userID, project.ID, "  ", nil)
		assert.ErrorIs(t, err, ErrTaskTitleRequired)
	})

	t.Run("foreign project reported as missing", func(t *testing.T) {
		_, err := service.CreateTask(ctx, uuid.New().String(), project.ID, "weed beds", nil)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("created with defaults", func(t *testing.T) {
		task, err := service.CreateTask(ctx, userID, project.ID, "weed beds", nil)
		require.NoError(t, err)
		assert.False(t, task.IsCompleted)
		assert.Nil(t, task.DueDate)
		assert.Equal(t, project.ID, task.ProjectID)
	})
}

func TestTrackerService_UpdateTaskPartial(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	project, err := service.CreateProject(ctx, userID, "Garden work", "")
	require.NoError(t, err)
	due := dateOf(2024, 3, 10)
	task, err := service.CreateTask(ctx, userID, project.ID, "weed beds", &due)
	require.NoError(t, err)

	t.Run("updates only provided fields", func(t *testing.T) {
		completed := true
		updated, err := service.UpdateTask(ctx, userID, task.ID, nil, nil, &completed)
		require.NoError(t, err)
		assert.Equal(t, "weed beds", updated.Title)
		require.NotNil(t, updated.DueDate)
		assert.True(t, updated.DueDate.Equal(due))
		assert.True(t, updated.IsCompleted)
	})

	t.Run("retitle persists", func(t *testing.T) {
		title := "weed all beds"
		updated, err := service.UpdateTask(ctx, userID, task.ID, &title, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "weed all beds", updated.Title)
		assert.True(t, updated.IsCompleted, "earlier completion survives a retitle")
	})

	t.Run("other user cannot update", func(t *testing.T) {
		title := "hijacked"
		_, err := service.UpdateTask(ctx, uuid.New().String(), task.ID, &title, nil, nil)
		assert.ErrorIs(t, err, ErrTaskNotFound)

		found, err := service.repo.FindOwnedTask(task.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "weed all beds", found.Title, "record unchanged after denied update")
	})
}

func TestTrackerService_ScheduleProject(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	project, err := service.CreateProject(ctx, userID, "Launch prep", "")
	require.NoError(t, err)

	due1 := dateOf(2024, 3, 5)
	_, err = service.CreateTask(ctx, userID, project.ID, "due soon", &due1)
	require.NoError(t, err)
	_, err = service.CreateTask(ctx, userID, project.ID, "no due date", nil)
	require.NoError(t, err)
	done, err := service.CreateTask(ctx, userID, project.ID, "already done", nil)
	require.NoError(t, err)
	completed := true
	_, err = service.UpdateTask(ctx, userID, done.ID, nil, nil, &completed)
	require.NoError(t, err)

	t.Run("explicit start date", func(t *testing.T) {
		start := dateOf(2024, 3, 1)
		schedule, err := service.ScheduleProject(ctx, userID, project.ID, &start, 2)
		require.NoError(t, err)

		require.Len(t, schedule, 2)
		assert.Equal(t, "due soon", schedule[0].Title)
		assert.Equal(t, dateOf(2024, 3, 1), schedule[0].ScheduledDate)
		assert.Equal(t, "no due date", schedule[1].Title)
		assert.Equal(t, dateOf(2024, 3, 3), schedule[1].ScheduledDate)
	})

	t.Run("default start is the clock date at UTC midnight", func(t *testing.T) {
		schedule, err := service.ScheduleProject(ctx, userID, project.ID, nil, 1)
		require.NoError(t, err)

		require.Len(t, schedule, 2)
		assert.Equal(t, dateOf(2024, 3, 1), schedule[0].ScheduledDate)
		assert.Equal(t, dateOf(2024, 3, 2), schedule[1].ScheduledDate)
	})

	t.Run("nothing persisted", func(t *testing.T) {
		fetched, err := service.GetProject(ctx, userID, project.ID)
		require.NoError(t, err)
		assert.Len(t, fetched.Tasks, 3, "scheduling must not change the task set")
	})

	t.Run("other user gets not found", func(t *testing.T) {
		start := dateOf(2024, 3, 1)
		_, err := service.ScheduleProject(ctx, uuid.New().String(), project.ID, &start, 1)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestTrackerService_GetProjectIncludesTasks(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	project, err := service.CreateProject(ctx, userID, "Reading list", "books to finish")
	require.NoError(t, err)
	_, err = service.CreateTask(ctx, userID, project.ID, "finish novel", nil)
	require.NoError(t, err)

	fetched, err := service.GetProject(ctx, userID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading list", fetched.Title)
	require.Len(t, fetched.Tasks, 1)
	assert.Equal(t, "finish novel", fetched.Tasks[0].Title)
}
