package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/ports"
)

// OrganizationRepositoryImpl implements the OrganizationRepository interface
type OrganizationRepositoryImpl struct {
	db *sqlx.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *sqlx.DB) ports.OrganizationRepository {
	return &OrganizationRepositoryImpl{db: db}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *entities.Organization) error {
	query := `
		INSERT INTO organizations (name, parent_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, org.Name, org.ParentID).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create organization: %w", err)
	}

	return nil
}

func (r *OrganizationRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Organization, error) {
	query := `
		SELECT id, name, parent_id, created_at, updated_at
		FROM organizations
		WHERE id = $1`

	var org entities.Organization
	err := r.db.GetContext(ctx, &org, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization by id: %w", err)
	}

	return &org, nil
}

func (r *OrganizationRepositoryImpl) GetChildren(ctx context.Context, parentID int64) ([]*entities.Organization, error) {
	query := `
		SELECT id, name, parent_id, created_at, updated_at
		FROM organizations
		WHERE parent_id = $1
		ORDER BY name`

	var orgs []*entities.Organization
	err := r.db.SelectContext(ctx, &orgs, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("get child organizations: %w", err)
	}

	return orgs, nil
}

// Delete removes an organization. The schema nullifies children's parent
// reference and cascades to the organization's tasks.
func (r *OrganizationRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM organizations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrOrganizationNotFound
	}

	return nil
}
