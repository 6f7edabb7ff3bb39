package actor

import (
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/apperror"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleHost  = "host"
	RoleGuest = "guest"
)

// Actor is the authenticated principal attached to a request
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor owns a record with the given owner column value
func (a Actor) Owns(ownerID *uuid.UUID) bool {
	return ownerID != nil && *ownerID == a.ID
}

// AssertAdmin returns ForbiddenError unless the actor is an admin
func (a Actor) AssertAdmin() error {
	if !a.IsAdmin() {
		return apperror.NewForbidden("Admin access required")
	}
	return nil
}

// AssertOwnerOrAdmin returns ForbiddenError unless the actor owns the
// record or is an admin. A nil ownerID means the record has no owner
// and only admins may touch it.
func (a Actor) AssertOwnerOrAdmin(ownerID *uuid.UUID) error {
	if a.IsAdmin() || a.Owns(ownerID) {
		return nil
	}
	return apperror.NewForbidden("You do not have permission to modify this resource")
}
