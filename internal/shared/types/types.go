package types

import (
	"github.com/shopspring/decimal"
)

// Price is stored as a jsonb aggregate. Amounts are decimals, never
// floats, so currency math stays exact.
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Unit     string          `json:"unit,omitempty"` // "night", "person", ...
}

// MediaItem is one uploaded asset with its processed variants
type MediaItem struct {
	URL      string            `json:"url"`
	Kind     string            `json:"kind"` // "image" | "video"
	Alt      string            `json:"alt,omitempty"`
	Variants map[string]string `json:"variants,omitempty"` // large/medium/thumbnail
}

// MediaList is the jsonb media column
type MediaList []MediaItem

// Cover returns the first image URL, or empty when there is none
func (m MediaList) Cover() string {
	for _, item := range m {
		if item.Kind == "image" {
			return item.URL
		}
	}
	return ""
}

// Rating categories
const (
	RatingCleanliness   = "cleanliness"
	RatingHospitality   = "hospitality"
	RatingServices      = "services"
	RatingAccuracy      = "accuracy"
	RatingCommunication = "communication"
	RatingLocation      = "location"
)

// RatingBreakdown is the per-category average aggregate. All six
// categories are always present; zero reviews produce all zeros.
type RatingBreakdown struct {
	Cleanliness   float64 `json:"cleanliness"`
	Hospitality   float64 `json:"hospitality"`
	Services      float64 `json:"services"`
	Accuracy      float64 `json:"accuracy"`
	Communication float64 `json:"communication"`
	Location      float64 `json:"location"`
	Count         int     `json:"count"`
}

// Overall is the unweighted mean of the six category averages
func (r RatingBreakdown) Overall() float64 {
	return (r.Cleanliness + r.Hospitality + r.Services + r.Accuracy + r.Communication + r.Location) / 6
}
