package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
)

// Entity types that can carry tags
const (
	EntityAccommodation = "accommodation"
	EntityDestination   = "destination"
	EntityEvent         = "event"
	EntityPost          = "post"
)

var EntityTypes = []string{EntityAccommodation, EntityDestination, EntityEvent, EntityPost}

type Tag struct {
	crud.Audit

	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// Tags are shared vocabulary and carry no owner
func (t *Tag) OwnerID() *uuid.UUID {
	return nil
}

var Table = crud.Table{
	Name:          "tags",
	Columns:       append(crud.AuditColumns, "name", "slug"),
	SearchColumns: []string{"name"},
	DefaultOrder:  "name ASC",
}

// PopularTag pairs a tag with its usage count
type PopularTag struct {
	Tag   Tag `json:"tag"`
	Count int `json:"count"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 50)),
	)
}

func IsValidEntityType(t string) bool {
	for _, v := range EntityTypes {
		if v == t {
			return true
		}
	}
	return false
}
