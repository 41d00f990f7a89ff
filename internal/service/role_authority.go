package service

import (
	"context"
	"fmt"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/apperror"

	"github.com/rs/zerolog"
)

// DisputePolicy selects which party may raise a dispute.
type DisputePolicy string

const (
	DisputePolicyClient   DisputePolicy = "client"
	DisputePolicyValuator DisputePolicy = "valuator"
	DisputePolicyEither   DisputePolicy = "either"
)

// RoleAuthorityImpl implements ports.RoleAuthority over a RoleRepository.
// A roles claim carried by a verified token is honoured as well as stored grants.
type RoleAuthorityImpl struct {
	repo   ports.RoleRepository
	policy DisputePolicy
	log    zerolog.Logger
}

// NewRoleAuthority creates a new RoleAuthorityImpl.
func NewRoleAuthority(repo ports.RoleRepository, policy DisputePolicy, log zerolog.Logger) *RoleAuthorityImpl {
	if policy == "" {
		policy = DisputePolicyEither
	}
	return &RoleAuthorityImpl{repo: repo, policy: policy, log: log}
}

// IsArbiter reports whether actor holds the arbiter role.
func (a *RoleAuthorityImpl) IsArbiter(ctx context.Context, actor domain.Actor) (bool, error) {
	if actor.ID == "" {
		return false, nil
	}
	if actor.HasRole(domain.RoleArbiter) {
		return true, nil
	}
	ok, err := a.repo.HasRole(ctx, actor.ID, domain.RoleArbiter)
	if err != nil {
		return false, fmt.Errorf("lookup role grant: %w", err)
	}
	return ok, nil
}

// IsAssignedValuator reports whether actor is the record's valuator.
func (a *RoleAuthorityImpl) IsAssignedValuator(actor domain.Actor, escrow *domain.Escrow) bool {
	return actor.ID != "" && actor.ID == escrow.ValuatorID
}

// CanCancel allows the client, an arbiter or the system actor.
func (a *RoleAuthorityImpl) CanCancel(ctx context.Context, actor domain.Actor, escrow *domain.Escrow) (bool, error) {
	if actor.IsSystem() || (actor.ID != "" && actor.ID == escrow.ClientID) {
		return true, nil
	}
	return a.IsArbiter(ctx, actor)
}

// CanRaiseDispute applies the configured dispute policy.
func (a *RoleAuthorityImpl) CanRaiseDispute(actor domain.Actor, escrow *domain.Escrow) bool {
	if actor.ID == "" {
		return false
	}
	isClient := actor.ID == escrow.ClientID
	isValuator := actor.ID == escrow.ValuatorID

	switch a.policy {
	case DisputePolicyClient:
		return isClient
	case DisputePolicyValuator:
		return isValuator
	default:
		return isClient || isValuator
	}
}

// Grant records a role for subjectID. Only arbiters and the system actor may grant.
func (a *RoleAuthorityImpl) Grant(ctx context.Context, actor domain.Actor, role domain.Role, subjectID string) error {
	if !role.Valid() {
		return apperror.Validation(fmt.Sprintf("unknown role %q", role))
	}
	if subjectID == "" || subjectID == domain.SystemActorID {
		return apperror.Validation("subject_id is required")
	}
	if !actor.IsSystem() {
		ok, err := a.IsArbiter(ctx, actor)
		if err != nil {
			return apperror.InternalError(err)
		}
		if !ok {
			return apperror.ErrUnauthorized("only an arbiter may grant roles")
		}
	}

	grant := &domain.RoleGrant{
		Role:      role,
		SubjectID: subjectID,
		GrantedBy: actor.ID,
		GrantedAt: time.Now().UTC(),
	}
	if err := a.repo.Grant(ctx, grant); err != nil {
		return apperror.InternalError(fmt.Errorf("grant role: %w", err))
	}

	a.log.Info().Str("role", string(role)).Str("subject_id", subjectID).Str("granted_by", actor.ID).Msg("role granted")
	return nil
}
