package postgres

import (
	"context"
	"fmt"

	"mapchain-escrow/internal/core/domain"
)

// RoleRepo implements ports.RoleRepository.
type RoleRepo struct {
	pool Pool
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(pool Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Grant stores a grant; granting an existing role is a no-op.
func (r *RoleRepo) Grant(ctx context.Context, g *domain.RoleGrant) error {
	query := `INSERT INTO role_grants (role, subject_id, granted_by, granted_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT (role, subject_id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, g.Role, g.SubjectID, g.GrantedBy, g.GrantedAt); err != nil {
		return fmt.Errorf("insert role grant: %w", err)
	}
	return nil
}

// HasRole reports whether subjectID holds role.
func (r *RoleRepo) HasRole(ctx context.Context, subjectID string, role domain.Role) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM role_grants WHERE subject_id = $1 AND role = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, subjectID, role).Scan(&exists); err != nil {
		return false, fmt.Errorf("check role grant: %w", err)
	}
	return exists, nil
}

// ListByRole returns every subject holding role.
func (r *RoleRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.RoleGrant, error) {
	query := `SELECT role, subject_id, granted_by, granted_at FROM role_grants WHERE role = $1 ORDER BY granted_at`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list role grants: %w", err)
	}
	defer rows.Close()

	var grants []domain.RoleGrant
	for rows.Next() {
		var g domain.RoleGrant
		if err := rows.Scan(&g.Role, &g.SubjectID, &g.GrantedBy, &g.GrantedAt); err != nil {
			return nil, fmt.Errorf("scan role grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
