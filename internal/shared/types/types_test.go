package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingBreakdownOverall(t *testing.T) {
	tests := []struct {
		name string
		in   RatingBreakdown
		want float64
	}{
		{"zero reviews", RatingBreakdown{}, 0},
		{"all fives", RatingBreakdown{5, 5, 5, 5, 5, 5, 10}, 5},
		{"mixed categories", RatingBreakdown{Cleanliness: 4, Hospitality: 5, Services: 3, Accuracy: 4, Communication: 5, Location: 3, Count: 7}, 4},
		{"single category rated", RatingBreakdown{Cleanliness: 3}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.in.Overall(), 1e-9)
		})
	}
}

func TestMediaListCover(t *testing.T) {
	list := MediaList{
		{URL: "https://cdn.example.com/tour.mp4", Kind: "video"},
		{URL: "https://cdn.example.com/front.jpg", Kind: "image"},
		{URL: "https://cdn.example.com/pool.jpg", Kind: "image"},
	}

	assert.Equal(t, "https://cdn.example.com/front.jpg", list.Cover())
	assert.Equal(t, "", MediaList{}.Cover())
	assert.Equal(t, "", MediaList{{URL: "v.mp4", Kind: "video"}}.Cover())
}
