package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/example/minipm/modules/auth"
	"github.com/example/minipm/modules/tracker"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer    mono.ServiceContainer
	trackerContainer mono.ServiceContainer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, trackerContainer mono.ServiceContainer) *Handlers {
	return &Handlers{
		authContainer:    authContainer,
		trackerContainer: trackerContainer,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	authReq := auth.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		ID:       resp.ID,
		Username: resp.Username,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	authReq := auth.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Token: resp.Token,
	})
}

// ListProjects handles listing the caller's projects.
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	req := tracker.ListProjectsRequest{UserID: actx.UserID}
	var resp tracker.ListProjectsResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"list-projects",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	projects := make([]ProjectSummary, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		projects = append(projects, ProjectSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
		})
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

// CreateProject handles project creation.
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	trackerReq := tracker.CreateProjectRequest{
		UserID:      actx.UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	var resp tracker.ProjectResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"create-project",
		json.Marshal,
		json.Unmarshal,
		&trackerReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ProjectSummary{
		ID:          resp.ID,
		Title:       resp.Title,
		Description: resp.Description,
		CreatedAt:   resp.CreatedAt,
	})
}

// GetProject handles fetching one project with its tasks.
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	req := tracker.GetProjectRequest{
		UserID:    actx.UserID,
		ProjectID: c.Params("id"),
	}
	var resp tracker.ProjectWithTasksResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"get-project",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	tasks := make([]Task, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, toAPITask(t))
	}
	return c.Status(fiber.StatusOK).JSON(ProjectWithTasks{
		ID:          resp.ID,
		Title:       resp.Title,
		Description: resp.Description,
		CreatedAt:   resp.CreatedAt,
		Tasks:       tasks,
	})
}

// DeleteProject handles project deletion.
func (h *Handlers) DeleteProject(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	req := tracker.DeleteProjectRequest{
		UserID:    actx.UserID,
		ProjectID: c.Params("id"),
	}
	var resp tracker.DeleteProjectResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"delete-project",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTask handles adding a task to a project.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	trackerReq := tracker.CreateTaskRequest{
		UserID:    actx.UserID,
		ProjectID: c.Params("id"),
		Title:     req.Title,
		DueDate:   req.DueDate,
	}
	var resp tracker.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		&trackerReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAPITask(resp))
}

// UpdateTask handles a partial task update.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	trackerReq := tracker.UpdateTaskRequest{
		UserID:      actx.UserID,
		TaskID:      c.Params("id"),
		Title:       req.Title,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	}
	var resp tracker.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"update-task",
		json.Marshal,
		json.Unmarshal,
		&trackerReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAPITask(resp))
}

// DeleteTask handles task deletion.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	req := tracker.DeleteTaskRequest{
		UserID: actx.UserID,
		TaskID: c.Params("id"),
	}
	var resp tracker.DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"delete-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleTask handles flipping a task's completion flag.
func (h *Handlers) ToggleTask(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	req := tracker.ToggleTaskRequest{
		UserID: actx.UserID,
		TaskID: c.Params("id"),
	}
	var resp tracker.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"toggle-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAPITask(resp))
}

// ScheduleProject handles computing a schedule for a project.
func (h *Handlers) ScheduleProject(c *fiber.Ctx) error {
	actx, ok := authContextFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	trackerReq := tracker.ScheduleProjectRequest{
		UserID:      actx.UserID,
		ProjectID:   c.Params("id"),
		StartDate:   req.StartDate,
		DaysPerTask: req.DaysPerTask,
	}
	var resp tracker.ScheduleProjectResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.trackerContainer,
		"schedule-project",
		json.Marshal,
		json.Unmarshal,
		&trackerReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	schedule := make([]ScheduledTask, 0, len(resp.Schedule))
	for _, s := range resp.Schedule {
		schedule = append(schedule, ScheduledTask{
			TaskID:        s.TaskID,
			Title:         s.Title,
			ScheduledDate: s.ScheduledDate,
		})
	}
	return c.Status(fiber.StatusOK).JSON(ScheduleResponse{
		ProjectID: resp.ProjectID,
		Schedule:  schedule,
	})
}

// handleServiceError maps module errors to HTTP responses. Errors cross
// the service container as messages, so they are matched by content;
// anything unrecognized is logged and returned as a generic 500.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "username must be at least"):
		return badRequest(c, "Username must be at least 3 characters")
	case strings.Contains(errStr, "password must be at least"):
		return badRequest(c, "Password must be at least 6 characters")
	case strings.Contains(errStr, "title must be 3-100"):
		return badRequest(c, "Title must be 3-100 characters")
	case strings.Contains(errStr, "description must be at most"):
		return badRequest(c, "Description must be at most 500 characters")
	case strings.Contains(errStr, "task title is required"):
		return badRequest(c, "Task title is required")
	case strings.Contains(errStr, "username already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Username already exists",
		})
	case strings.Contains(errStr, "invalid username or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid username or password",
		})
	case strings.Contains(errStr, "project not found"):
		return notFound(c, "Project not found")
	case strings.Contains(errStr, "task not found"):
		return notFound(c, "Task not found")
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

// toAPITask converts a tracker task response to the API representation.
func toAPITask(t tracker.TaskResponse) Task {
	return Task{
		ID:          t.ID,
		Title:       t.Title,
		DueDate:     t.DueDate,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
	}
}
