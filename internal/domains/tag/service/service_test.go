package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/internal/domains/tag/model"
	"stayhub-backend/internal/domains/tag/repository"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
)

// fakeResolver maps entity ids to owners; unknown ids are not found
type fakeResolver struct {
	owners map[uuid.UUID]*uuid.UUID
}

func (f *fakeResolver) ResolveOwner(_ context.Context, id uuid.UUID) (*uuid.UUID, error) {
	owner, ok := f.owners[id]
	if !ok {
		return nil, apperror.NewNotFound("Accommodation")
	}
	return owner, nil
}

func newTagService(resolvers map[string]OwnerResolver) *Service {
	return NewService(repository.NewRepository(nil), resolvers)
}

func TestAttachAuthorization(t *testing.T) {
	hostA := uuid.New()
	hostB := uuid.New()
	listing := uuid.New()
	destination := uuid.New()
	tagID := uuid.New()

	svc := newTagService(map[string]OwnerResolver{
		model.EntityAccommodation: &fakeResolver{owners: map[uuid.UUID]*uuid.UUID{listing: &hostA}},
		model.EntityDestination:   &fakeResolver{owners: map[uuid.UUID]*uuid.UUID{destination: nil}},
	})
	ctx := context.Background()

	t.Run("guest rejected", func(t *testing.T) {
		err := svc.Attach(ctx, actor.Actor{ID: hostB, Role: actor.RoleGuest}, model.EntityAccommodation, listing, tagID)
		require.Error(t, err)
		assert.Equal(t, 403, apperror.StatusOf(err))
	})

	t.Run("unknown entity type rejected", func(t *testing.T) {
		err := svc.Attach(ctx, actor.Actor{ID: hostA, Role: actor.RoleHost}, "reviews", listing, tagID)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.StatusOf(err))
	})

	t.Run("missing entity is not found", func(t *testing.T) {
		err := svc.Attach(ctx, actor.Actor{ID: hostA, Role: actor.RoleHost}, model.EntityAccommodation, uuid.New(), tagID)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.StatusOf(err))
	})

	t.Run("other host cannot tag a listing they do not own", func(t *testing.T) {
		err := svc.Attach(ctx, actor.Actor{ID: hostB, Role: actor.RoleHost}, model.EntityAccommodation, listing, tagID)
		require.Error(t, err)
		assert.Equal(t, 403, apperror.StatusOf(err))
	})

	t.Run("host cannot tag an unowned entity", func(t *testing.T) {
		err := svc.Attach(ctx, actor.Actor{ID: hostA, Role: actor.RoleHost}, model.EntityDestination, destination, tagID)
		require.Error(t, err)
		assert.Equal(t, 403, apperror.StatusOf(err))
	})

	t.Run("owner passes the entity check", func(t *testing.T) {
		err := svc.authorizeEntity(ctx, actor.Actor{ID: hostA, Role: actor.RoleHost}, model.EntityAccommodation, listing)
		assert.NoError(t, err)
	})

	t.Run("admin passes for any entity", func(t *testing.T) {
		err := svc.authorizeEntity(ctx, actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin}, model.EntityDestination, destination)
		assert.NoError(t, err)
	})
}

func TestDetachAuthorization(t *testing.T) {
	owner := uuid.New()
	listing := uuid.New()
	tagID := uuid.New()

	svc := newTagService(map[string]OwnerResolver{
		model.EntityAccommodation: &fakeResolver{owners: map[uuid.UUID]*uuid.UUID{listing: &owner}},
	})

	err := svc.Detach(context.Background(), actor.Actor{ID: uuid.New(), Role: actor.RoleHost}, model.EntityAccommodation, listing, tagID)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.StatusOf(err))
}
