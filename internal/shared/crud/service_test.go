package crud

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub-backend/internal/shared/actor"
)

type listing struct {
	Audit

	Name   string    `json:"name" db:"name"`
	Slug   string    `json:"slug" db:"slug"`
	State  string    `json:"state" db:"state"`
	HostID uuid.UUID `json:"host_id" db:"host_id"`
}

func (l *listing) OwnerID() *uuid.UUID {
	return &l.HostID
}

func newListingService() *Service[listing, *listing] {
	repo := NewRepository[listing, *listing](nil, testTable)
	return NewService(repo, "Listing")
}

func TestSanitizeChangesStripsAuditColumns(t *testing.T) {
	svc := newListingService()
	host := actor.Actor{ID: uuid.New(), Role: actor.RoleHost}

	out := svc.sanitizeChanges(host, map[string]any{
		"name":          "Sea View Villa",
		"id":            uuid.New(),
		"created_at":    "2020-01-01",
		"deleted_at":    nil,
		"updated_by_id": uuid.New(),
	})

	assert.Equal(t, map[string]any{"name": "Sea View Villa"}, out)
}

func TestSanitizeChangesBlocksOwnerForNonAdmins(t *testing.T) {
	svc := newListingService()
	host := actor.Actor{ID: uuid.New(), Role: actor.RoleHost}
	admin := actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin}
	newOwner := uuid.New()

	changes := map[string]any{"name": "Renamed", "host_id": newOwner}

	hostOut := svc.sanitizeChanges(host, changes)
	assert.Equal(t, map[string]any{"name": "Renamed"}, hostOut)

	adminOut := svc.sanitizeChanges(admin, changes)
	assert.Equal(t, map[string]any{"name": "Renamed", "host_id": newOwner}, adminOut)
}

func TestSanitizeChangesDoesNotMutateInput(t *testing.T) {
	svc := newListingService()
	changes := map[string]any{"name": "x", "id": uuid.New()}

	svc.sanitizeChanges(actor.Actor{Role: actor.RoleHost}, changes)

	assert.Len(t, changes, 2)
}

func TestColumnValuesMatchesTableOrder(t *testing.T) {
	hostID := uuid.New()
	l := &listing{
		Name:   "Sea View Villa",
		Slug:   "sea-view-villa",
		State:  "published",
		HostID: hostID,
	}
	l.SetID(uuid.New())

	args, err := columnValues(l, testTable.Columns)
	require.NoError(t, err)
	require.Len(t, args, len(testTable.Columns))

	// Audit columns lead, entity columns follow in declared order
	assert.Equal(t, l.GetID(), args[0])
	assert.Equal(t, "Sea View Villa", args[7])
	assert.Equal(t, "sea-view-villa", args[8])
	assert.Equal(t, "published", args[9])
	assert.Equal(t, hostID, args[10])
}

func TestColumnValuesRejectsUnknownColumn(t *testing.T) {
	_, err := columnValues(&listing{}, []string{"no_such_column"})
	assert.Error(t, err)
}
