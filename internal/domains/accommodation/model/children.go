package model

import (
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
)

// Amenity is a curated catalog entry attached to accommodations
// through the accommodation_amenities join table
type Amenity struct {
	crud.Audit

	Name     string `json:"name" db:"name"`
	Icon     string `json:"icon" db:"icon"`
	Category string `json:"category" db:"category"`
}

func (a *Amenity) OwnerID() *uuid.UUID {
	return nil
}

var AmenityTable = crud.Table{
	Name:          "amenities",
	Columns:       append(crud.AuditColumns, "name", "icon", "category"),
	SearchColumns: []string{"name"},
	DefaultOrder:  "category ASC, name ASC",
}

// Faq belongs to one accommodation and is owned by its host
type Faq struct {
	crud.Audit

	AccommodationID uuid.UUID `json:"accommodation_id" db:"accommodation_id"`
	HostID          uuid.UUID `json:"host_id" db:"host_id"`
	Question        string    `json:"question" db:"question"`
	Answer          string    `json:"answer" db:"answer"`
	Position        int       `json:"position" db:"position"`
}

func (f *Faq) OwnerID() *uuid.UUID {
	return &f.HostID
}

var FaqTable = crud.Table{
	Name: "faqs",
	Columns: append(crud.AuditColumns,
		"accommodation_id", "host_id", "question", "answer", "position",
	),
	SearchColumns: []string{"question", "answer"},
	OwnerColumn:   "host_id",
	DefaultOrder:  "position ASC, created_at ASC",
}

// AI content kinds
const (
	AiKindSummary     = "summary"
	AiKindDescription = "description"
	AiKindHighlights  = "highlights"
)

// AiContent holds generated copy for an accommodation. It is only
// visible to the host and admins.
type AiContent struct {
	crud.Audit

	AccommodationID uuid.UUID `json:"accommodation_id" db:"accommodation_id"`
	HostID          uuid.UUID `json:"host_id" db:"host_id"`
	Kind            string    `json:"kind" db:"kind"`
	Content         string    `json:"content" db:"content"`
	Model           string    `json:"model" db:"model"`
}

func (a *AiContent) OwnerID() *uuid.UUID {
	return &a.HostID
}

var AiContentTable = crud.Table{
	Name: "ai_contents",
	Columns: append(crud.AuditColumns,
		"accommodation_id", "host_id", "kind", "content", "model",
	),
	SearchColumns: []string{"content"},
	OwnerColumn:   "host_id",
	DefaultOrder:  "created_at DESC",
}
