package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/minipm/domain/tracker"
	"github.com/google/uuid"
)

var (
	// ErrTitleLength is returned when a project title is outside 3-100 characters.
	ErrTitleLength = errors.New("title must be 3-100 characters")
	// ErrDescriptionLength is returned when a description exceeds 500 characters.
	ErrDescriptionLength = errors.New("description must be at most 500 characters")
	// ErrTaskTitleRequired is returned when a task title is empty.
	ErrTaskTitleRequired = errors.New("task title is required")
)

// TrackerService handles project and task business logic. All operations
// take the resolved owner id and stay scoped to it.
type TrackerService struct {
	repo *Repository
	now  func() time.Time
}

// NewTrackerService creates a new TrackerService using the wall clock.
func NewTrackerService(repo *Repository) *TrackerService {
	return &TrackerService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateProject validates and creates a project for the user.
func (s *TrackerService) CreateProject(_ context.Context, userID, title, description string) (*domain.Project, error) {
	if strings.TrimSpace(title) == "" || len(title) < 3 || len(title) > 100 {
		return nil, ErrTitleLength
	}
	if len(description) > 500 {
		return nil, ErrDescriptionLength
	}

	project := &domain.Project{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns the user's projects, newest first.
func (s *TrackerService) ListProjects(_ context.Context, userID string) ([]*domain.Project, error) {
	return s.repo.ListProjects(userID)
}

// GetProject returns one of the user's projects with its tasks.
func (s *TrackerService) GetProject(_ context.Context, userID, projectID string) (*domain.Project, error) {
	return s.repo.FindOwnedProjectWithTasks(projectID, userID)
}

// DeleteProject removes one of the user's projects and all of its tasks.
func (s *TrackerService) DeleteProject(_ context.Context, userID, projectID string) error {
	return s.repo.DeleteOwnedProject(projectID, userID)
}

// CreateTask validates and adds a task to one of the user's projects.
func (s *TrackerService) CreateTask(_ context.Context, userID, projectID, title string, dueDate *time.Time) (*domain.Task, error) {
	// Resolve the project through the owner first; a foreign project is
	// reported as missing.
	if _, err := s.repo.FindOwnedProject(projectID, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Title:       title,
		DueDate:     dueDate,
		IsCompleted: false,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateTask(task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update to one of the user's tasks.
// Nil fields are left unchanged.
func (s *TrackerService) UpdateTask(_ context.Context, userID, taskID string, title *string, dueDate *time.Time, isCompleted *bool) (*domain.Task, error) {
	task, err := s.repo.FindOwnedTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if title != nil && strings.TrimSpace(*title) != "" {
		task.Title = *title
	}
	if dueDate != nil {
		task.DueDate = dueDate
	}
	if isCompleted != nil {
		task.IsCompleted = *isCompleted
	}

	if err := s.repo.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes one of the user's tasks.
func (s *TrackerService) DeleteTask(_ context.Context, userID, taskID string) error {
	return s.repo.DeleteOwnedTask(taskID, userID)
}

// ToggleTask flips the completion flag of one of the user's tasks.
func (s *TrackerService) ToggleTask(_ context.Context, userID, taskID string) (*domain.Task, error) {
	return s.repo.ToggleOwnedTask(taskID, userID)
}

// ScheduleProject computes a schedule for the incomplete tasks of one of
// the user's projects. When start is nil the current date at UTC
// midnight is used, which makes the result time-dependent; tests inject
// a fixed clock through the service.
func (s *TrackerService) ScheduleProject(_ context.Context, userID, projectID string, start *time.Time, daysPerTask int) ([]ScheduledTask, error) {
	project, err := s.repo.FindOwnedProjectWithTasks(projectID, userID)
	if err != nil {
		return nil, err
	}

	from := s.now().UTC().Truncate(24 * time.Hour)
	if start != nil {
		from = *start
	}

	return Schedule(project.Tasks, from, daysPerTask), nil
}
