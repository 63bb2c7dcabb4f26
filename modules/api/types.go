package api

import (
	"time"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse represents the created user.
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectSummary represents a project without its tasks.
type ProjectSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectWithTasks represents a project together with its tasks.
type ProjectWithTasks struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Tasks       []Task    `json:"tasks"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest represents a partial task update; absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
}

// Task represents a task in responses.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ScheduleRequest represents a schedule computation request.
type ScheduleRequest struct {
	StartDate   *time.Time `json:"startDate,omitempty"`
	DaysPerTask int        `json:"daysPerTask"`
}

// ScheduledTask is one row of a computed schedule.
type ScheduledTask struct {
	TaskID        string    `json:"taskId"`
	Title         string    `json:"title"`
	ScheduledDate time.Time `json:"scheduledDate"`
}

// ScheduleResponse is the computed schedule for a project.
type ScheduleResponse struct {
	ProjectID string          `json:"projectId"`
	Schedule  []ScheduledTask `json:"schedule"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
