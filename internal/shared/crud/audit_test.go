package crud

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampCreate(t *testing.T) {
	actorID := uuid.New()
	now := time.Now()

	var a Audit
	a.StampCreate(actorID, now)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, now, a.UpdatedAt)
	require.NotNil(t, a.CreatedByID)
	require.NotNil(t, a.UpdatedByID)
	assert.Equal(t, actorID, *a.CreatedByID)
	assert.Equal(t, actorID, *a.UpdatedByID)
	assert.False(t, a.IsDeleted())
}

func TestStampCreateKeepsAssignedID(t *testing.T) {
	id := uuid.New()

	var a Audit
	a.SetID(id)
	a.StampCreate(uuid.New(), time.Now())

	assert.Equal(t, id, a.GetID())
}

func TestStampCreateWithoutActor(t *testing.T) {
	var a Audit
	a.StampCreate(uuid.Nil, time.Now())

	assert.Nil(t, a.CreatedByID)
	assert.Nil(t, a.UpdatedByID)
}

func TestStampUpdate(t *testing.T) {
	creator := uuid.New()
	editor := uuid.New()
	created := time.Now().Add(-time.Hour)
	edited := time.Now()

	var a Audit
	a.StampCreate(creator, created)
	a.StampUpdate(editor, edited)

	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, edited, a.UpdatedAt)
	assert.Equal(t, creator, *a.CreatedByID)
	assert.Equal(t, editor, *a.UpdatedByID)
}

func TestIsDeleted(t *testing.T) {
	var a Audit
	assert.False(t, a.IsDeleted())

	now := time.Now()
	a.DeletedAt = &now
	assert.True(t, a.IsDeleted())
}
