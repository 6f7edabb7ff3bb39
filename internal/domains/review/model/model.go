package model

import (
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
)

type Review struct {
	crud.Audit

	AccommodationID uuid.UUID `json:"accommodation_id" db:"accommodation_id"`
	AuthorID        uuid.UUID `json:"author_id" db:"author_id"`
	Comment         string    `json:"comment" db:"comment"`

	// Category scores, 1..5 each
	Cleanliness   int `json:"cleanliness" db:"cleanliness"`
	Hospitality   int `json:"hospitality" db:"hospitality"`
	Services      int `json:"services" db:"services"`
	Accuracy      int `json:"accuracy" db:"accuracy"`
	Communication int `json:"communication" db:"communication"`
	Location      int `json:"location" db:"location"`
}

func (r *Review) OwnerID() *uuid.UUID {
	return &r.AuthorID
}

var Table = crud.Table{
	Name: "reviews",
	Columns: append(crud.AuditColumns,
		"accommodation_id", "author_id", "comment",
		"cleanliness", "hospitality", "services", "accuracy", "communication", "location",
	),
	SearchColumns: []string{"comment"},
	OwnerColumn:   "author_id",
	DefaultOrder:  "created_at DESC",
}
