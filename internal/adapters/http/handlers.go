package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles account creation. Anyone may call it; no token required.
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Registration failed", "error", err, "email", req.Email)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask creates a task under the caller's organization.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), p, req)
	if err != nil {
		h.logger.Errorw("Create task failed", "error", err, "user_id", p.UserID)
		return httpError(err)
	}

	SetAuditEntityID(c, task.ID)

	return c.JSON(http.StatusCreated, task)
}

// ListTasks returns every task in the caller's organization.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	tasks, err := h.taskService.List(c.Request().Context(), p)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err, "user_id", p.UserID)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task if the caller may see it.
func (h *TaskHandler) GetTask(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), p, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Update(c.Request().Context(), p, id, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing principal")
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), p, id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task deleted successfully"})
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}
	return id, nil
}
