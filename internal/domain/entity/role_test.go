package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleViewer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("seller").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRole_OwnsShop(t *testing.T) {
	assert.True(t, RoleAdmin.OwnsShop())
	assert.False(t, RoleViewer.OwnsShop())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("user")
	assert.False(t, ok)
}

func TestRoles_Contains(t *testing.T) {
	assert.True(t, AllRoles.Contains(RoleViewer))
	assert.False(t, Roles{RoleViewer}.Contains(RoleAdmin))
}

func TestAccount_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&Account{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&Account{FirstName: "Ada"}).FullName())
	assert.Equal(t, "Lovelace", (&Account{LastName: "Lovelace"}).FullName())
}
