package tracker

import (
	"time"
)

// CreateProjectRequest is the request for creating a project.
type CreateProjectRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectResponse represents a project in responses.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListProjectsRequest is the request for listing a user's projects.
type ListProjectsRequest struct {
	UserID string `json:"user_id"`
}

// ListProjectsResponse is the response containing the user's projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

// GetProjectRequest is the request for getting a project with its tasks.
type GetProjectRequest struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
}

// ProjectWithTasksResponse is a project together with its tasks.
type ProjectWithTasksResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	Tasks       []TaskResponse `json:"tasks"`
}

// DeleteProjectRequest is the request for deleting a project.
type DeleteProjectRequest struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
}

// DeleteProjectResponse is the response after deleting a project.
type DeleteProjectResponse struct {
	Deleted bool `json:"deleted"`
}

// CreateTaskRequest is the request for adding a task to a project.
type CreateTaskRequest struct {
	UserID    string     `json:"user_id"`
	ProjectID string     `json:"project_id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UpdateTaskRequest is the request for partially updating a task.
type UpdateTaskRequest struct {
	UserID      string     `json:"user_id"`
	TaskID      string     `json:"task_id"`
	Title       *string    `json:"title,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ToggleTaskRequest is the request for toggling task completion.
type ToggleTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ScheduleProjectRequest is the request for scheduling a project's
// incomplete tasks.
type ScheduleProjectRequest struct {
	UserID      string     `json:"user_id"`
	ProjectID   string     `json:"project_id"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DaysPerTask int        `json:"days_per_task"`
}

// ScheduledTaskResponse is one scheduled task in a schedule response.
type ScheduledTaskResponse struct {
	TaskID        string    `json:"task_id"`
	Title         string    `json:"title"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

// ScheduleProjectResponse is the computed schedule for a project.
type ScheduleProjectResponse struct {
	ProjectID string                  `json:"project_id"`
	Schedule  []ScheduledTaskResponse `json:"schedule"`
}
