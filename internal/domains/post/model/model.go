package model

import (
	"time"

	"github.com/google/uuid"

	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
)

// Post categories
const (
	CategoryGuide       = "guide"
	CategoryNews        = "news"
	CategoryTips        = "tips"
	CategoryItinerary   = "itinerary"
	CategoryFoodCulture = "food-culture"
)

var Categories = []string{
	CategoryGuide, CategoryNews, CategoryTips, CategoryItinerary, CategoryFoodCulture,
}

type Post struct {
	crud.Audit

	Title       string          `json:"title" db:"title"`
	Slug        string          `json:"slug" db:"slug"`
	Excerpt     string          `json:"excerpt" db:"excerpt"`
	Body        string          `json:"body" db:"body"`
	Category    string          `json:"category" db:"category"`
	AuthorID    uuid.UUID       `json:"author_id" db:"author_id"`
	Media       types.MediaList `json:"media" db:"media"`
	PublishedAt *time.Time      `json:"published_at,omitempty" db:"published_at"`
}

func (p *Post) OwnerID() *uuid.UUID {
	return &p.AuthorID
}

func (p *Post) IsPublished() bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(time.Now())
}

var Table = crud.Table{
	Name: "posts",
	Columns: append(crud.AuditColumns,
		"title", "slug", "excerpt", "body", "category", "author_id", "media", "published_at",
	),
	SearchColumns: []string{"title", "excerpt", "body"},
	OwnerColumn:   "author_id",
	DefaultOrder:  "published_at DESC NULLS LAST, created_at DESC",
}
