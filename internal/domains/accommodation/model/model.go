package model

import (
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
)

// Accommodation types
const (
	TypeHotel     = "hotel"
	TypeVilla     = "villa"
	TypeApartment = "apartment"
	TypeResort    = "resort"
	TypeHomestay  = "homestay"
)

// Publication states
const (
	StateDraft     = "draft"
	StatePublished = "published"
	StateArchived  = "archived"
)

var Types = []string{TypeHotel, TypeVilla, TypeApartment, TypeResort, TypeHomestay}
var States = []string{StateDraft, StatePublished, StateArchived}

type Accommodation struct {
	crud.Audit

	Name          string                `json:"name" db:"name"`
	Slug          string                `json:"slug" db:"slug"`
	Description   string                `json:"description" db:"description"`
	Type          string                `json:"type" db:"type"`
	State         string                `json:"state" db:"state"`
	HostID        uuid.UUID             `json:"host_id" db:"host_id"`
	DestinationID uuid.UUID             `json:"destination_id" db:"destination_id"`
	Address       string                `json:"address" db:"address"`
	City          string                `json:"city" db:"city"`
	Price         types.Price           `json:"price" db:"price"`
	Rating        types.RatingBreakdown `json:"rating" db:"rating"`
	Media         types.MediaList       `json:"media" db:"media"`
	MaxGuests     int                   `json:"max_guests" db:"max_guests"`
	Bedrooms      int                   `json:"bedrooms" db:"bedrooms"`
	Bathrooms     int                   `json:"bathrooms" db:"bathrooms"`
}

func (a *Accommodation) OwnerID() *uuid.UUID {
	return &a.HostID
}

var Table = crud.Table{
	Name: "accommodations",
	Columns: append(crud.AuditColumns,
		"name", "slug", "description", "type", "state",
		"host_id", "destination_id", "address", "city",
		"price", "rating", "media",
		"max_guests", "bedrooms", "bathrooms",
	),
	SearchColumns: []string{"name", "description", "city"},
	OwnerColumn:   "host_id",
	DefaultOrder:  "created_at DESC",
}
