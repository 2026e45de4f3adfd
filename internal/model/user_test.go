package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	u := &User{EmployeeID: "E1"}
	require.NoError(t, u.SetPassword("secret"))

	assert.NotEqual(t, "secret", u.Password)
	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("wrong"))

	var nilUser *User

	assert.False(t, nilUser.CheckPassword("secret"))
	assert.False(t, nilUser.IsAdmin())
	assert.Nil(t, nilUser.DTO())
}

func TestUserDTO(t *testing.T) {
	u := &User{EmployeeID: "E1", Role: RoleAdmin, Password: "hash"}

	dto := u.DTO()
	assert.Equal(t, RoleAdmin, dto.Role)
	assert.NotNil(t, dto.Permissions)
	assert.True(t, u.IsAdmin())
}

func TestCabHasMember(t *testing.T) {
	cab := &CabAllocation{AssignedMembers: []string{"E1", "E2"}}

	assert.True(t, cab.HasMember("E1"))
	assert.False(t, cab.HasMember("E3"))

	var nilCab *CabAllocation

	assert.False(t, nilCab.HasMember("E1"))
	assert.Nil(t, nilCab.DTO())
}
