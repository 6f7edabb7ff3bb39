package model

import (
	"time"

	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
)

// Event categories
const (
	CategoryFestival   = "festival"
	CategoryConcert    = "concert"
	CategoryExhibition = "exhibition"
	CategoryFoodDrink  = "food-drink"
	CategorySport      = "sport"
	CategoryCultural   = "cultural"
)

var Categories = []string{
	CategoryFestival, CategoryConcert, CategoryExhibition,
	CategoryFoodDrink, CategorySport, CategoryCultural,
}

type Event struct {
	crud.Audit

	Title         string          `json:"title" db:"title"`
	Slug          string          `json:"slug" db:"slug"`
	Description   string          `json:"description" db:"description"`
	Category      string          `json:"category" db:"category"`
	OrganizerID   uuid.UUID       `json:"organizer_id" db:"organizer_id"`
	DestinationID uuid.UUID       `json:"destination_id" db:"destination_id"`
	VenueName     string          `json:"venue_name" db:"venue_name"`
	StartsAt      time.Time       `json:"starts_at" db:"starts_at"`
	EndsAt        time.Time       `json:"ends_at" db:"ends_at"`
	Media         types.MediaList `json:"media" db:"media"`
}

func (e *Event) OwnerID() *uuid.UUID {
	return &e.OrganizerID
}

var Table = crud.Table{
	Name: "events",
	Columns: append(crud.AuditColumns,
		"title", "slug", "description", "category",
		"organizer_id", "destination_id", "venue_name",
		"starts_at", "ends_at", "media",
	),
	SearchColumns: []string{"title", "description", "venue_name"},
	OwnerColumn:   "organizer_id",
	DefaultOrder:  "starts_at ASC",
}
