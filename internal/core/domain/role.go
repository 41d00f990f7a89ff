package domain

import "time"

// Role is a platform capability granted to a subject.
type Role string

// RoleArbiter may complete valuations, resolve disputes and grant roles.
const RoleArbiter Role = "ARBITER"

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleArbiter
}

// RoleGrant binds a role to a subject id.
type RoleGrant struct {
	Role      Role      `json:"role"`
	SubjectID string    `json:"subject_id"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}

// SystemActorID identifies internal callers such as the deadline scheduler.
const SystemActorID = "system"

// Actor is the authenticated caller of a ledger operation.
type Actor struct {
	ID    string
	Roles []Role
}

// SystemActor returns the actor used for scheduled transitions.
func SystemActor() Actor {
	return Actor{ID: SystemActorID}
}

// IsSystem returns true for internal callers.
func (a Actor) IsSystem() bool {
	return a.ID == SystemActorID
}

// HasRole reports whether the actor's token carried role r.
func (a Actor) HasRole(r Role) bool {
	for _, have := range a.Roles {
		if have == r {
			return true
		}
	}
	return false
}
