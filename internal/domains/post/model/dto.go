package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"stayhub-backend/internal/shared/types"
)

type CreatePostRequest struct {
	Title    string          `json:"title"`
	Excerpt  string          `json:"excerpt"`
	Body     string          `json:"body"`
	Category string          `json:"category"`
	Media    types.MediaList `json:"media"`
	Publish  bool            `json:"publish"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Excerpt, validation.Required, validation.Length(10, 500)),
		validation.Field(&r.Body, validation.Required, validation.Length(50, 100000)),
		validation.Field(&r.Category, validation.Required, validation.In(categoriesAny()...)),
	)
}

type UpdatePostRequest struct {
	Title    *string          `json:"title"`
	Excerpt  *string          `json:"excerpt"`
	Body     *string          `json:"body"`
	Category *string          `json:"category"`
	Media    *types.MediaList `json:"media"`
	Publish  *bool            `json:"publish"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&r.Excerpt, validation.NilOrNotEmpty, validation.Length(10, 500)),
		validation.Field(&r.Body, validation.NilOrNotEmpty, validation.Length(50, 100000)),
		validation.Field(&r.Category, validation.When(r.Category != nil, validation.In(categoriesAny()...))),
	)
}

func (r UpdatePostRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Excerpt != nil {
		changes["excerpt"] = *r.Excerpt
	}
	if r.Body != nil {
		changes["body"] = *r.Body
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.Media != nil {
		changes["media"] = *r.Media
	}
	return changes
}

func categoriesAny() []any {
	out := make([]any, len(Categories))
	for i, c := range Categories {
		out[i] = c
	}
	return out
}
