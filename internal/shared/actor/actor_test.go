package actor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwns(t *testing.T) {
	id := uuid.New()
	other := uuid.New()
	a := Actor{ID: id, Role: RoleHost}

	assert.True(t, a.Owns(&id))
	assert.False(t, a.Owns(&other))
	assert.False(t, a.Owns(nil))
}

func TestAssertAdmin(t *testing.T) {
	assert.NoError(t, Actor{Role: RoleAdmin}.AssertAdmin())
	assert.Error(t, Actor{Role: RoleHost}.AssertAdmin())
	assert.Error(t, Actor{Role: RoleGuest}.AssertAdmin())
}

func TestAssertOwnerOrAdmin(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		act     Actor
		ownerID *uuid.UUID
		wantErr bool
	}{
		{"owner may modify", Actor{ID: ownerID, Role: RoleHost}, &ownerID, false},
		{"admin may modify anything", Actor{ID: uuid.New(), Role: RoleAdmin}, &ownerID, false},
		{"stranger is forbidden", Actor{ID: uuid.New(), Role: RoleHost}, &ownerID, true},
		{"unowned record is admin only", Actor{ID: uuid.New(), Role: RoleHost}, nil, true},
		{"admin may modify unowned record", Actor{ID: uuid.New(), Role: RoleAdmin}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.act.AssertOwnerOrAdmin(tt.ownerID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
