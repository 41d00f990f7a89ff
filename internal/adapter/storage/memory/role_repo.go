package memory

import (
	"context"
	"sort"

	"mapchain-escrow/internal/core/domain"
)

type RoleRepo struct {
	store *Store
}

func NewRoleRepo(store *Store) *RoleRepo {
	return &RoleRepo{store: store}
}

// Grant is idempotent; the first grant wins.
func (r *RoleRepo) Grant(ctx context.Context, g *domain.RoleGrant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	k := roleKey{role: g.Role, subject: g.SubjectID}
	if _, ok := r.store.roles[k]; !ok {
		r.store.roles[k] = *g
	}
	return nil
}

func (r *RoleRepo) HasRole(ctx context.Context, subjectID string, role domain.Role) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.roles[roleKey{role: role, subject: subjectID}]
	return ok, nil
}

func (r *RoleRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.RoleGrant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.RoleGrant
	for k, g := range r.store.roles {
		if k.role == role {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GrantedAt.Before(out[j].GrantedAt) })
	return out, nil
}
