package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryJoinAndMembers(t *testing.T) {
	r := NewRegistry()

	p1 := r.Join(1, RolePlayer, 10, newFakeOutbox())
	p2 := r.Join(1, RolePlayer, 11, newFakeOutbox())
	r.Join(1, RoleAdmin, 99, newFakeOutbox())
	r.Join(2, RolePlayer, 12, newFakeOutbox())

	require.NotEqual(t, p1.ID, p2.ID)

	assert.Len(t, r.Members(1, RolePlayer), 2)
	assert.Len(t, r.Members(1, RoleAdmin), 1)
	assert.Len(t, r.Members(2, RolePlayer), 1)
	assert.Empty(t, r.Members(2, RoleAdmin))
	assert.Equal(t, 2, r.Count(1, RolePlayer))
	assert.Equal(t, 1, r.Count(1, RoleAdmin))
}

func TestRegistryChannelsAreDisjoint(t *testing.T) {
	r := NewRegistry()
	r.Join(1, RolePlayer, 10, newFakeOutbox())
	admin := r.Join(1, RoleAdmin, 99, newFakeOutbox())

	for _, sub := range r.Members(1, RolePlayer) {
		assert.NotEqual(t, admin.ID, sub.ID)
	}
}

func TestRegistryMultipleAdmins(t *testing.T) {
	r := NewRegistry()
	r.Join(1, RoleAdmin, 98, newFakeOutbox())
	r.Join(1, RoleAdmin, 99, newFakeOutbox())

	assert.Equal(t, 2, r.Count(1, RoleAdmin))
}

func TestRegistryLeaveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	sub := r.Join(1, RolePlayer, 10, newFakeOutbox())

	r.Leave(sub)
	assert.Equal(t, 0, r.Count(1, RolePlayer))

	r.Leave(sub)
	r.Leave(nil)
	assert.Equal(t, 0, r.Count(1, RolePlayer))
}
