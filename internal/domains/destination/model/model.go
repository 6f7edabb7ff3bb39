package model

import (
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
)

type Destination struct {
	crud.Audit

	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Description string          `json:"description" db:"description"`
	Country     string          `json:"country" db:"country"`
	Region      *string         `json:"region,omitempty" db:"region"`
	Media       types.MediaList `json:"media" db:"media"`
	Featured    bool            `json:"featured" db:"featured"`
}

// Destinations are curated by admins and carry no owner
func (d *Destination) OwnerID() *uuid.UUID {
	return nil
}

var Table = crud.Table{
	Name: "destinations",
	Columns: append(crud.AuditColumns,
		"name", "slug", "description", "country", "region", "media", "featured",
	),
	SearchColumns: []string{"name", "description", "country"},
	DefaultOrder:  "name ASC",
}
