package services

import (
	"context"
	"fmt"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// OrganizationService exposes organization reads. The children list is
// derived by query from the parent-id relation each time; no bidirectional
// reference graph is kept in memory.
type OrganizationService struct {
	orgRepo ports.OrganizationRepository
	logger  *logger.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo ports.OrganizationRepository, logger *logger.Logger) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

// Describe returns the principal's own organization with its children.
// A principal can only ever describe the organization it belongs to.
func (s *OrganizationService) Describe(ctx context.Context, p entities.Principal) (*ports.OrganizationView, error) {
	org, err := s.orgRepo.GetByID(ctx, p.OrganizationID)
	if err != nil {
		return nil, err
	}

	children, err := s.orgRepo.GetChildren(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child organizations: %w", err)
	}

	return &ports.OrganizationView{
		Organization: *org,
		Children:     children,
	}, nil
}
