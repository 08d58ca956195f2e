package services

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/infrastructure/logger"
)

func TestDescribeReturnsOwnOrganizationWithChildren(t *testing.T) {
	orgRepo := newFakeOrgRepo()
	ctx := context.Background()

	parent := &entities.Organization{Name: "HQ"}
	if err := orgRepo.Create(ctx, parent); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"North", "South"} {
		child := &entities.Organization{Name: name, ParentID: &parent.ID}
		if err := orgRepo.Create(ctx, child); err != nil {
			t.Fatal(err)
		}
	}
	unrelated := &entities.Organization{Name: "Elsewhere"}
	if err := orgRepo.Create(ctx, unrelated); err != nil {
		t.Fatal(err)
	}

	svc := NewOrganizationService(orgRepo, logger.NewNop())

	view, err := svc.Describe(ctx, principal(entities.RoleViewer, parent.ID))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if view.Name != "HQ" {
		t.Errorf("name = %q, want %q", view.Name, "HQ")
	}
	if len(view.Children) != 2 {
		t.Fatalf("children count = %d, want 2", len(view.Children))
	}
	for _, child := range view.Children {
		if child.ParentID == nil || *child.ParentID != parent.ID {
			t.Errorf("child %q not parented to %d", child.Name, parent.ID)
		}
	}
}

func TestDescribeUnknownOrganization(t *testing.T) {
	svc := NewOrganizationService(newFakeOrgRepo(), logger.NewNop())

	_, err := svc.Describe(context.Background(), principal(entities.RoleOwner, 99))
	if !errors.Is(err, entities.ErrOrganizationNotFound) {
		t.Errorf("Describe() error = %v, want ErrOrganizationNotFound", err)
	}
}
