package crud

import (
	"time"

	"github.com/google/uuid"
)

// Audit is embedded by every persisted entity. It carries the primary
// key, the created/updated stamps and the soft-delete pair. deleted_at
// and deleted_by_id are always set and cleared together.
type Audit struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" db:"created_by_id"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	UpdatedByID *uuid.UUID `json:"updated_by_id,omitempty" db:"updated_by_id"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	DeletedByID *uuid.UUID `json:"deleted_by_id,omitempty" db:"deleted_by_id"`
}

// AuditColumns lists the audit block, in insert order
var AuditColumns = []string{
	"id",
	"created_at", "created_by_id",
	"updated_at", "updated_by_id",
	"deleted_at", "deleted_by_id",
}

func (a *Audit) GetID() uuid.UUID {
	return a.ID
}

func (a *Audit) SetID(id uuid.UUID) {
	a.ID = id
}

func (a *Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}

// StampCreate fills the audit block for a fresh insert
func (a *Audit) StampCreate(actorID uuid.UUID, now time.Time) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if actorID != uuid.Nil {
		a.CreatedByID = &actorID
		a.UpdatedByID = &actorID
	}
}

// StampUpdate refreshes the updated pair
func (a *Audit) StampUpdate(actorID uuid.UUID, now time.Time) {
	a.UpdatedAt = now
	if actorID != uuid.Nil {
		a.UpdatedByID = &actorID
	}
}

// Entity is the contract every persisted model satisfies through its
// embedded Audit block plus a per-entity owner accessor
type Entity interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	IsDeleted() bool
	StampCreate(actorID uuid.UUID, now time.Time)
	StampUpdate(actorID uuid.UUID, now time.Time)

	// OwnerID returns the value of the entity's owner column, or nil
	// when the entity has no owner
	OwnerID() *uuid.UUID
}
