package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

func principal(role entities.Role, orgID int64) entities.Principal {
	return entities.Principal{
		UserID:         uuid.New(),
		Email:          "user@example.com",
		Role:           role,
		OrganizationID: orgID,
	}
}

func newTestTaskService() (*TaskService, *fakeTaskRepo) {
	repo := newFakeTaskRepo()
	return NewTaskService(repo, logger.NewNop()), repo
}

func TestCreateTaskUsesPrincipalScope(t *testing.T) {
	svc, _ := newTestTaskService()
	p := principal(entities.RoleViewer, 7)

	desc := "write the launch notes"
	task, err := svc.Create(context.Background(), p, ports.CreateTaskRequest{
		Title:       "Launch prep",
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if task.ID == 0 {
		t.Error("task id not assigned")
	}
	if task.OrganizationID != p.OrganizationID {
		t.Errorf("organization id = %d, want %d", task.OrganizationID, p.OrganizationID)
	}
	if task.CreatorID != p.UserID {
		t.Errorf("creator id = %s, want %s", task.CreatorID, p.UserID)
	}
	if task.Status != entities.TaskStatusTodo {
		t.Errorf("status = %q, want %q", task.Status, entities.TaskStatusTodo)
	}
}

func TestListIsOrganizationScoped(t *testing.T) {
	svc, _ := newTestTaskService()

	pOrg1 := principal(entities.RoleViewer, 1)
	pOrg2 := principal(entities.RoleViewer, 2)

	for _, title := range []string{"one", "two"} {
		if _, err := svc.Create(context.Background(), pOrg1, ports.CreateTaskRequest{Title: title}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Create(context.Background(), pOrg2, ports.CreateTaskRequest{Title: "other"}); err != nil {
		t.Fatal(err)
	}

	tasks, err := svc.List(context.Background(), pOrg1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.OrganizationID != 1 {
			t.Errorf("task %d leaked from organization %d", task.ID, task.OrganizationID)
		}
	}
}

func TestGetDistinguishesMissingFromForeign(t *testing.T) {
	svc, _ := newTestTaskService()

	creator := principal(entities.RoleViewer, 1)
	task, err := svc.Create(context.Background(), creator, ports.CreateTaskRequest{Title: "internal"})
	if err != nil {
		t.Fatal(err)
	}

	outsider := principal(entities.RoleOwner, 2)

	// Absent id: not found, regardless of role.
	if _, err := svc.Get(context.Background(), outsider, 999); !errors.Is(err, entities.ErrTaskNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrTaskNotFound", err)
	}

	// Existing task in another organization: forbidden, never not-found.
	if _, err := svc.Get(context.Background(), outsider, task.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("Get(foreign) error = %v, want ErrForbidden", err)
	}

	// Same organization: visible to any role.
	sameOrg := principal(entities.RoleViewer, 1)
	got, err := svc.Get(context.Background(), sameOrg, task.ID)
	if err != nil {
		t.Fatalf("Get(same org) error = %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("Get() id = %d, want %d", got.ID, task.ID)
	}
}

func TestUpdatePermissions(t *testing.T) {
	creatorID := uuid.New()

	tests := []struct {
		name      string
		role      entities.Role
		isCreator bool
		wantErr   error
	}{
		{"viewer updates own task", entities.RoleViewer, true, nil},
		{"viewer updates another's task", entities.RoleViewer, false, entities.ErrForbidden},
		{"admin updates another's task", entities.RoleAdmin, false, nil},
		{"owner updates another's task", entities.RoleOwner, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestTaskService()
			task := &entities.Task{
				Title:          "original",
				Status:         entities.TaskStatusTodo,
				CreatorID:      creatorID,
				OrganizationID: 1,
			}
			if err := repo.Create(context.Background(), task); err != nil {
				t.Fatal(err)
			}

			p := principal(tt.role, 1)
			if tt.isCreator {
				p.UserID = creatorID
			}

			title := "changed"
			updated, err := svc.Update(context.Background(), p, task.ID, ports.UpdateTaskRequest{Title: &title})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
				}
				stored, _ := repo.GetByID(context.Background(), task.ID)
				if stored.Title != "original" {
					t.Error("denied update still modified the task")
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if updated.Title != "changed" {
				t.Errorf("title = %q, want %q", updated.Title, "changed")
			}
		})
	}
}

func TestUpdateIsPartial(t *testing.T) {
	svc, _ := newTestTaskService()
	p := principal(entities.RoleAdmin, 1)

	desc := "keep me"
	task, err := svc.Create(context.Background(), p, ports.CreateTaskRequest{
		Title:       "title",
		Description: &desc,
	})
	if err != nil {
		t.Fatal(err)
	}

	status := "done"
	updated, err := svc.Update(context.Background(), p, task.ID, ports.UpdateTaskRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != entities.TaskStatusDone {
		t.Errorf("status = %q, want %q", updated.Status, entities.TaskStatusDone)
	}
	if updated.Title != "title" {
		t.Errorf("title changed to %q on a status-only update", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "keep me" {
		t.Error("description changed on a status-only update")
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, _ := newTestTaskService()
	p := principal(entities.RoleAdmin, 1)

	task, err := svc.Create(context.Background(), p, ports.CreateTaskRequest{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}

	status := "archived"
	_, err = svc.Update(context.Background(), p, task.ID, ports.UpdateTaskRequest{Status: &status})
	if !errors.Is(err, entities.ErrInvalidStatus) {
		t.Errorf("Update() error = %v, want ErrInvalidStatus", err)
	}
}

func TestDeletePermissions(t *testing.T) {
	creatorID := uuid.New()

	tests := []struct {
		name      string
		role      entities.Role
		isCreator bool
		wantErr   error
	}{
		{"viewer deletes own task", entities.RoleViewer, true, entities.ErrForbidden},
		{"viewer deletes another's task", entities.RoleViewer, false, entities.ErrForbidden},
		{"admin deletes", entities.RoleAdmin, false, nil},
		{"owner deletes", entities.RoleOwner, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestTaskService()
			task := &entities.Task{
				Title:          "t",
				Status:         entities.TaskStatusTodo,
				CreatorID:      creatorID,
				OrganizationID: 1,
			}
			if err := repo.Create(context.Background(), task); err != nil {
				t.Fatal(err)
			}

			p := principal(tt.role, 1)
			if tt.isCreator {
				p.UserID = creatorID
			}

			err := svc.Delete(context.Background(), p, task.ID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
				}
				if _, err := repo.GetByID(context.Background(), task.ID); err != nil {
					t.Error("denied delete still removed the task")
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := repo.GetByID(context.Background(), task.ID); !errors.Is(err, entities.ErrTaskNotFound) {
				t.Error("task still present after delete")
			}
		})
	}
}

func TestDeleteAcrossOrganizations(t *testing.T) {
	svc, _ := newTestTaskService()

	creator := principal(entities.RoleViewer, 1)
	task, err := svc.Create(context.Background(), creator, ports.CreateTaskRequest{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}

	foreignOwner := principal(entities.RoleOwner, 2)
	if err := svc.Delete(context.Background(), foreignOwner, task.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("Delete(foreign) error = %v, want ErrForbidden", err)
	}
}

// TestCrossOrgLifecycle walks the full scenario: a viewer creates a task,
// a viewer in another organization cannot read it, an admin in the same
// organization can update it, the creating viewer cannot delete it, and the
// admin can.
func TestCrossOrgLifecycle(t *testing.T) {
	svc, _ := newTestTaskService()
	ctx := context.Background()

	viewerA := principal(entities.RoleViewer, 1)
	viewerB := principal(entities.RoleViewer, 2)
	adminC := principal(entities.RoleAdmin, 1)

	task, err := svc.Create(ctx, viewerA, ports.CreateTaskRequest{Title: "quarterly report"})
	if err != nil {
		t.Fatalf("viewer create failed: %v", err)
	}

	if _, err := svc.Get(ctx, viewerB, task.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("foreign viewer Get() error = %v, want ErrForbidden", err)
	}

	status := "inprogress"
	if _, err := svc.Update(ctx, adminC, task.ID, ports.UpdateTaskRequest{Status: &status}); err != nil {
		t.Errorf("admin Update() error = %v", err)
	}

	if err := svc.Delete(ctx, viewerA, task.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("creating viewer Delete() error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(ctx, adminC, task.ID); err != nil {
		t.Errorf("admin Delete() error = %v", err)
	}

	if _, err := svc.Get(ctx, adminC, task.ID); !errors.Is(err, entities.ErrTaskNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrTaskNotFound", err)
	}
}
