package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	AccommodationID uuid.UUID `json:"accommodation_id"`
	Comment         string    `json:"comment"`
	Cleanliness     int       `json:"cleanliness"`
	Hospitality     int       `json:"hospitality"`
	Services        int       `json:"services"`
	Accuracy        int       `json:"accuracy"`
	Communication   int       `json:"communication"`
	Location        int       `json:"location"`
}

func scoreRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Min(1), validation.Max(5)}
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AccommodationID, validation.Required),
		validation.Field(&r.Comment, validation.Required, validation.Length(10, 5000)),
		validation.Field(&r.Cleanliness, scoreRules()...),
		validation.Field(&r.Hospitality, scoreRules()...),
		validation.Field(&r.Services, scoreRules()...),
		validation.Field(&r.Accuracy, scoreRules()...),
		validation.Field(&r.Communication, scoreRules()...),
		validation.Field(&r.Location, scoreRules()...),
	)
}

type UpdateReviewRequest struct {
	Comment       *string `json:"comment"`
	Cleanliness   *int    `json:"cleanliness"`
	Hospitality   *int    `json:"hospitality"`
	Services      *int    `json:"services"`
	Accuracy      *int    `json:"accuracy"`
	Communication *int    `json:"communication"`
	Location      *int    `json:"location"`
}

func optionalScore(v *int) []validation.Rule {
	return []validation.Rule{validation.When(v != nil, validation.Min(1), validation.Max(5))}
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment, validation.NilOrNotEmpty, validation.Length(10, 5000)),
		validation.Field(&r.Cleanliness, optionalScore(r.Cleanliness)...),
		validation.Field(&r.Hospitality, optionalScore(r.Hospitality)...),
		validation.Field(&r.Services, optionalScore(r.Services)...),
		validation.Field(&r.Accuracy, optionalScore(r.Accuracy)...),
		validation.Field(&r.Communication, optionalScore(r.Communication)...),
		validation.Field(&r.Location, optionalScore(r.Location)...),
	)
}

func (r UpdateReviewRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Comment != nil {
		changes["comment"] = *r.Comment
	}
	if r.Cleanliness != nil {
		changes["cleanliness"] = *r.Cleanliness
	}
	if r.Hospitality != nil {
		changes["hospitality"] = *r.Hospitality
	}
	if r.Services != nil {
		changes["services"] = *r.Services
	}
	if r.Accuracy != nil {
		changes["accuracy"] = *r.Accuracy
	}
	if r.Communication != nil {
		changes["communication"] = *r.Communication
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	return changes
}
