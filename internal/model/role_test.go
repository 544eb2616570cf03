package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOrdering(t *testing.T) {
	assert.Less(t, RoleUser.Level(), RoleModerator.Level())
	assert.Less(t, RoleModerator.Level(), RoleAdmin.Level())

	assert.True(t, RoleAdmin.AtLeast(RoleUser))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleModerator.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.False(t, RoleUser.AtLeast(RoleAdmin))
}

func TestUnknownRoleNeverSatisfies(t *testing.T) {
	unknown := Role("superuser")
	assert.False(t, unknown.Valid())
	assert.Zero(t, unknown.Level())
	assert.False(t, unknown.AtLeast(RoleUser))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, role)

	role, ok = ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}
