package model

import (
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
)

// Account statuses
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type User struct {
	crud.Audit

	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	FullName     string  `json:"full_name" db:"full_name"`
	Role         string  `json:"role" db:"role"`
	Status       string  `json:"status" db:"status"`
	AvatarURL    *string `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio          *string `json:"bio,omitempty" db:"bio"`
}

// OwnerID: a user record is owned by the user it describes
func (u *User) OwnerID() *uuid.UUID {
	return &u.ID
}

var Table = crud.Table{
	Name: "users",
	Columns: append(crud.AuditColumns,
		"email", "password_hash", "full_name", "role", "status", "avatar_url", "bio",
	),
	SearchColumns: []string{"email", "full_name"},
	OwnerColumn:   "id",
	DefaultOrder:  "created_at DESC",
}
