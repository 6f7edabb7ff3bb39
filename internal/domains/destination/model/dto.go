package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"stayhub-backend/internal/shared/types"
)

type CreateDestinationRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Country     string          `json:"country"`
	Region      *string         `json:"region"`
	Media       types.MediaList `json:"media"`
	Featured    bool            `json:"featured"`
}

func (r CreateDestinationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 150)),
		validation.Field(&r.Description, validation.Required, validation.Length(10, 10000)),
		validation.Field(&r.Country, validation.Required, validation.Length(2, 100)),
	)
}

type UpdateDestinationRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Country     *string          `json:"country"`
	Region      *string          `json:"region"`
	Media       *types.MediaList `json:"media"`
	Featured    *bool            `json:"featured"`
}

func (r UpdateDestinationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 150)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(10, 10000)),
		validation.Field(&r.Country, validation.NilOrNotEmpty, validation.Length(2, 100)),
	)
}

func (r UpdateDestinationRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Country != nil {
		changes["country"] = *r.Country
	}
	if r.Region != nil {
		changes["region"] = *r.Region
	}
	if r.Media != nil {
		changes["media"] = *r.Media
	}
	if r.Featured != nil {
		changes["featured"] = *r.Featured
	}
	return changes
}
