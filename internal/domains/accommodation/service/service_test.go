package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/internal/domains/accommodation/model"
	reviewModel "stayhub-backend/internal/domains/review/model"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
)

func TestRoundBreakdown(t *testing.T) {
	got := roundBreakdown(types.RatingBreakdown{
		Cleanliness:   4.6666666,
		Hospitality:   4.25,
		Services:      3.04,
		Accuracy:      5.0,
		Communication: 0,
		Location:      2.96,
		Count:         3,
	})

	assert.InDelta(t, 4.7, got.Cleanliness, 1e-9)
	assert.InDelta(t, 4.3, got.Hospitality, 1e-9)
	assert.InDelta(t, 3.0, got.Services, 1e-9)
	assert.InDelta(t, 5.0, got.Accuracy, 1e-9)
	assert.InDelta(t, 0.0, got.Communication, 1e-9)
	assert.InDelta(t, 3.0, got.Location, 1e-9)
	assert.Equal(t, 3, got.Count, "review count passes through untouched")
}

func TestSearchDoc(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	acc := &model.Accommodation{
		Audit:       crud.Audit{ID: id, CreatedAt: created},
		Name:        "Pine Ridge Lodge",
		Description: "Timber lodge above the treeline",
		Type:        model.TypeVilla,
		State:       model.StatePublished,
		City:        "Queenstown",
		Rating: types.RatingBreakdown{
			Cleanliness: 4, Hospitality: 4, Services: 4,
			Accuracy: 4, Communication: 4, Location: 4,
		},
	}

	doc := SearchDoc(acc)

	assert.Equal(t, id.String(), doc["id"])
	assert.Equal(t, "Pine Ridge Lodge", doc["name"])
	assert.Equal(t, "Timber lodge above the treeline", doc["description"])
	assert.Equal(t, model.TypeVilla, doc["type"])
	assert.Equal(t, "Queenstown", doc["city"])
	assert.InDelta(t, 4.0, doc["rating"].(float64), 1e-9)
	assert.Equal(t, created.Unix(), doc["created_at"])

	require.NotContains(t, doc, "host_id", "owner identity stays out of the index")
	require.NotContains(t, doc, "state")
}

// fakeStore serves the derived read operations from memory
type fakeStore struct {
	listings  []*model.Accommodation
	ratings   map[uuid.UUID]types.RatingBreakdown
	amenities []*model.Amenity
	faqs      []*model.Faq
	aiContent []*model.AiContent
	reviews   []*reviewModel.Review

	lastFilter crud.Filter
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID, _ bool) (*model.Accommodation, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(_ context.Context, filter crud.Filter) ([]*model.Accommodation, int, error) {
	f.lastFilter = filter
	out := f.listings
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, len(f.listings), nil
}

func (f *fakeStore) ComputeRating(_ context.Context, id uuid.UUID) (types.RatingBreakdown, error) {
	return f.ratings[id], nil
}

func (f *fakeStore) ListAmenities(_ context.Context, _ uuid.UUID) ([]*model.Amenity, error) {
	return f.amenities, nil
}

func (f *fakeStore) ListFaqs(_ context.Context, _ uuid.UUID) ([]*model.Faq, error) {
	return f.faqs, nil
}

func (f *fakeStore) ListAiContents(_ context.Context, _ uuid.UUID) ([]*model.AiContent, error) {
	return f.aiContent, nil
}

func (f *fakeStore) ListReviews(_ context.Context, _ uuid.UUID, _ int) ([]*reviewModel.Review, error) {
	return f.reviews, nil
}

func publishedListing(name string, rating int) *model.Accommodation {
	acc := &model.Accommodation{
		Name:  name,
		Type:  model.TypeHotel,
		State: model.StatePublished,
		Rating: types.RatingBreakdown{
			Cleanliness: float64(rating), Hospitality: float64(rating), Services: float64(rating),
			Accuracy: float64(rating), Communication: float64(rating), Location: float64(rating),
		},
	}
	acc.SetID(uuid.New())
	return acc
}

func TestGetTopRatedOrdersByOverallDescending(t *testing.T) {
	store := &fakeStore{listings: []*model.Accommodation{
		publishedListing("middling", 3),
		publishedListing("best", 5),
		publishedListing("worst", 1),
		publishedListing("good", 4),
	}}
	svc := &Service{store: store}

	top, err := svc.GetTopRated(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, top, 3, "result is truncated to the requested limit")
	assert.Equal(t, "best", top[0].Name)
	assert.Equal(t, "good", top[1].Name)
	assert.Equal(t, "middling", top[2].Name)

	assert.Equal(t, []crud.Condition{{Column: "state", Value: model.StatePublished}}, store.lastFilter.Conditions,
		"only published listings compete")
	assert.Equal(t, TopRatedCandidateCap, store.lastFilter.Limit)
}

func TestRecommendSimilarExcludesSourceAndCaps(t *testing.T) {
	source := publishedListing("source", 4)
	others := []*model.Accommodation{
		publishedListing("a", 4),
		publishedListing("b", 4),
		source,
		publishedListing("c", 4),
	}
	store := &fakeStore{listings: others}
	svc := &Service{store: store}

	similar, err := svc.RecommendSimilar(context.Background(), source.ID, 2)
	require.NoError(t, err)

	require.Len(t, similar, 2)
	for _, s := range similar {
		assert.NotEqual(t, source.ID, s.ID, "the source listing never recommends itself")
	}

	assert.Contains(t, store.lastFilter.Conditions, crud.Condition{Column: "type", Value: source.Type})
	assert.Equal(t, 3, store.lastFilter.Limit, "one extra candidate absorbs the source row")
}

func TestRecommendSimilarUnknownSource(t *testing.T) {
	svc := &Service{store: &fakeStore{}}

	_, err := svc.RecommendSimilar(context.Background(), uuid.New(), 4)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.StatusOf(err))
}

func TestGetAverageRatingZeroReviews(t *testing.T) {
	acc := publishedListing("quiet place", 0)
	store := &fakeStore{
		listings: []*model.Accommodation{acc},
		ratings:  map[uuid.UUID]types.RatingBreakdown{},
	}
	svc := &Service{store: store}

	got, err := svc.GetAverageRating(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RatingBreakdown{}, got, "no reviews means all zeros, never an error")
}

func TestGetWithDetailsIncludesReviews(t *testing.T) {
	host := uuid.New()
	acc := publishedListing("reviewed place", 4)
	acc.HostID = host

	store := &fakeStore{
		listings:  []*model.Accommodation{acc},
		amenities: []*model.Amenity{{Name: "wifi"}},
		faqs:      []*model.Faq{{Question: "Parking?"}},
		reviews:   []*reviewModel.Review{{Comment: "lovely"}, {Comment: "ok"}},
		aiContent: []*model.AiContent{{Kind: model.AiKindSummary}},
	}
	svc := &Service{store: store}

	t.Run("visitor sees reviews but no AI content", func(t *testing.T) {
		details, err := svc.GetWithDetails(context.Background(), actor.Actor{ID: uuid.New(), Role: actor.RoleGuest}, acc.ID)
		require.NoError(t, err)

		require.Len(t, details.Reviews, 2)
		assert.Equal(t, "lovely", details.Reviews[0].Comment)
		assert.Len(t, details.Amenities, 1)
		assert.Len(t, details.Faqs, 1)
		assert.Empty(t, details.AiContents)
	})

	t.Run("host also sees AI content", func(t *testing.T) {
		details, err := svc.GetWithDetails(context.Background(), actor.Actor{ID: host, Role: actor.RoleHost}, acc.ID)
		require.NoError(t, err)

		require.Len(t, details.AiContents, 1)
		require.Len(t, details.Reviews, 2)
	})

	t.Run("unknown listing is not found", func(t *testing.T) {
		_, err := svc.GetWithDetails(context.Background(), actor.Actor{}, uuid.New())
		require.Error(t, err)
		assert.Equal(t, 404, apperror.StatusOf(err))
	})
}
