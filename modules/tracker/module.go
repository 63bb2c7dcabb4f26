package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/minipm/domain/tracker"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TrackerModule provides project and task CRUD plus the scheduler.
type TrackerModule struct {
	db      *gorm.DB
	service *TrackerService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TrackerModule)(nil)
var _ mono.ServiceProviderModule = (*TrackerModule)(nil)
var _ mono.HealthCheckableModule = (*TrackerModule)(nil)

// NewModule creates a new TrackerModule.
func NewModule() *TrackerModule {
	// Shares the database file with the auth module
	dbPath := os.Getenv("MINIPM_DB_PATH")
	if dbPath == "" {
		dbPath = "minipm.db"
	}
	return &TrackerModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TrackerModule) Name() string {
	return "tracker"
}

// Start initializes the tracker module.
func (m *TrackerModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Project{}, &domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTrackerService(NewRepository(db))

	log.Printf("[tracker] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TrackerModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tracker] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TrackerModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TrackerModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create-project", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create-project", json.Unmarshal, json.Marshal, m.handleCreateProject)
		}},
		{"list-projects", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-projects", json.Unmarshal, json.Marshal, m.handleListProjects)
		}},
		{"get-project", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-project", json.Unmarshal, json.Marshal, m.handleGetProject)
		}},
		{"delete-project", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete-project", json.Unmarshal, json.Marshal, m.handleDeleteProject)
		}},
		{"create-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create-task", json.Unmarshal, json.Marshal, m.handleCreateTask)
		}},
		{"update-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update-task", json.Unmarshal, json.Marshal, m.handleUpdateTask)
		}},
		{"delete-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete-task", json.Unmarshal, json.Marshal, m.handleDeleteTask)
		}},
		{"toggle-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "toggle-task", json.Unmarshal, json.Marshal, m.handleToggleTask)
		}},
		{"schedule-project", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "schedule-project", json.Unmarshal, json.Marshal, m.handleScheduleProject)
		}},
	}

	for _, s := range services {
		if err := s.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", s.name, err)
		}
	}

	log.Printf("[tracker] Registered services: create-project, list-projects, get-project, delete-project, create-task, update-task, delete-task, toggle-task, schedule-project")
	return nil
}

// handleCreateProject handles project creation.
func (m *TrackerModule) handleCreateProject(ctx context.Context, req CreateProjectRequest, _ *mono.Msg) (ProjectResponse, error) {
	project, err := m.service.CreateProject(ctx, req.UserID, req.Title, req.Description)
	if err != nil {
		return ProjectResponse{}, err
	}
	return toProjectResponse(project), nil
}

// handleListProjects handles listing a user's projects.
func (m *TrackerModule) handleListProjects(ctx context.Context, req ListProjectsRequest, _ *mono.Msg) (ListProjectsResponse, error) {
	projects, err := m.service.ListProjects(ctx, req.UserID)
	if err != nil {
		return ListProjectsResponse{}, err
	}

	resp := ListProjectsResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
		Total:    len(projects),
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, toProjectResponse(p))
	}
	return resp, nil
}

// handleGetProject handles fetching a project with its tasks.
func (m *TrackerModule) handleGetProject(ctx context.Context, req GetProjectRequest, _ *mono.Msg) (ProjectWithTasksResponse, error) {
	project, err := m.service.GetProject(ctx, req.UserID, req.ProjectID)
	if err != nil {
		return ProjectWithTasksResponse{}, err
	}

	resp := ProjectWithTasksResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		Tasks:       make([]TaskResponse, 0, len(project.Tasks)),
	}
	for _, t := range project.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&t))
	}
	return resp, nil
}

// handleDeleteProject handles project deletion.
func (m *TrackerModule) handleDeleteProject(ctx context.Context, req DeleteProjectRequest, _ *mono.Msg) (DeleteProjectResponse, error) {
	if err := m.service.DeleteProject(ctx, req.UserID, req.ProjectID); err != nil {
		return DeleteProjectResponse{Deleted: false}, err
	}
	return DeleteProjectResponse{Deleted: true}, nil
}

// handleCreateTask handles task creation.
func (m *TrackerModule) handleCreateTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.CreateTask(ctx, req.UserID, req.ProjectID, req.Title, req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// handleUpdateTask handles partial task updates.
func (m *TrackerModule) handleUpdateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.UpdateTask(ctx, req.UserID, req.TaskID, req.Title, req.DueDate, req.IsCompleted)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// handleDeleteTask handles task deletion.
func (m *TrackerModule) handleDeleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.DeleteTask(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

// handleToggleTask handles flipping a task's completion flag.
func (m *TrackerModule) handleToggleTask(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.ToggleTask(ctx, req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// handleScheduleProject handles schedule computation.
func (m *TrackerModule) handleScheduleProject(ctx context.Context, req ScheduleProjectRequest, _ *mono.Msg) (ScheduleProjectResponse, error) {
	schedule, err := m.service.ScheduleProject(ctx, req.UserID, req.ProjectID, req.StartDate, req.DaysPerTask)
	if err != nil {
		return ScheduleProjectResponse{}, err
	}

	resp := ScheduleProjectResponse{
		ProjectID: req.ProjectID,
		Schedule:  make([]ScheduledTaskResponse, 0, len(schedule)),
	}
	for _, s := range schedule {
		resp.Schedule = append(resp.Schedule, ScheduledTaskResponse{
			TaskID:        s.TaskID,
			Title:         s.Title,
			ScheduledDate: s.ScheduledDate,
		})
	}
	return resp, nil
}

// toProjectResponse converts a Project entity to a ProjectResponse.
func toProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
	}
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		DueDate:     task.DueDate,
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.CreatedAt,
	}
}
