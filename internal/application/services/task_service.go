package services

import (
	"context"
	"fmt"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/domain/policy"
	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// TaskService is the access guard for task operations. Every method walks
// the same sequence: scope check (the record must belong to the principal's
// organization), policy check (the role table must permit the action), then
// the data operation itself. Handlers never touch the repository directly.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// Create creates a task under the principal's own organization. There is no
// scope check because no prior resource exists; organization and creator
// come from the principal, never from caller input.
func (s *TaskService) Create(ctx context.Context, p entities.Principal, req ports.CreateTaskRequest) (*entities.Task, error) {
	if !policy.Permits(p.Role, policy.ActionCreateTask, true) {
		return nil, entities.ErrForbidden
	}

	task := &entities.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         entities.TaskStatusTodo,
		Category:       req.Category,
		CreatorID:      p.UserID,
		OrganizationID: p.OrganizationID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.LogUserAction(p.UserID.String(), "task_created", map[string]interface{}{
		"task_id":         task.ID,
		"organization_id": task.OrganizationID,
	})

	return task, nil
}

// Get returns a single task. An absent id is not-found; an existing task in
// a different organization is forbidden. The two cases stay distinct.
func (s *TaskService) Get(ctx context.Context, p entities.Principal, id int64) (*entities.Task, error) {
	task, err := s.loadScoped(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if !policy.Permits(p.Role, policy.ActionViewTask, task.CreatedBy(p.UserID)) {
		return nil, entities.ErrForbidden
	}

	return task, nil
}

// List returns every task in the principal's organization and nothing else.
func (s *TaskService) List(ctx context.Context, p entities.Principal) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListByOrganization(ctx, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update applies a partial update after the scope and policy checks pass.
func (s *TaskService) Update(ctx context.Context, p entities.Principal, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.loadScoped(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if !policy.Permits(p.Role, policy.ActionUpdateTask, task.CreatedBy(p.UserID)) {
		s.logger.LogSecurityEvent("task_update_denied", p.UserID.String(), "", map[string]interface{}{
			"task_id": task.ID,
			"role":    p.Role,
		})
		return nil, entities.ErrForbidden
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		status := entities.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
		task.Status = status
	}
	if req.Category != nil {
		task.Category = req.Category
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.LogUserAction(p.UserID.String(), "task_updated", map[string]interface{}{
		"task_id": task.ID,
	})

	return task, nil
}

// Delete removes a task. The role table ignores creator identity here:
// owners and admins may delete anything in their organization, viewers
// nothing.
func (s *TaskService) Delete(ctx context.Context, p entities.Principal, id int64) error {
	task, err := s.loadScoped(ctx, p, id)
	if err != nil {
		return err
	}

	if !policy.Permits(p.Role, policy.ActionDeleteTask, task.CreatedBy(p.UserID)) {
		s.logger.LogSecurityEvent("task_delete_denied", p.UserID.String(), "", map[string]interface{}{
			"task_id": task.ID,
			"role":    p.Role,
		})
		return entities.ErrForbidden
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.LogUserAction(p.UserID.String(), "task_deleted", map[string]interface{}{
		"task_id": task.ID,
	})

	return nil
}

// loadScoped loads a task by id and enforces the organization boundary.
func (s *TaskService) loadScoped(ctx context.Context, p entities.Principal, id int64) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.InOrganization(p.OrganizationID) {
		s.logger.LogSecurityEvent("cross_org_access", p.UserID.String(), "", map[string]interface{}{
			"task_id":              task.ID,
			"task_organization":    task.OrganizationID,
			"caller_organization":  p.OrganizationID,
		})
		return nil, entities.ErrForbidden
	}

	return task, nil
}
