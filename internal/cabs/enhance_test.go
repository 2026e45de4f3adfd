package cabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lancelot03/pmconnect/internal/model"
)

func TestEnhance(t *testing.T) {
	invitees := []*model.Invitee{
		{EmployeeID: "E1", EmployeeName: "Asha Rao", Cadre: "M2", ProjectName: "Metro"},
		{EmployeeID: "E2", EmployeeName: "Vikram Shah", Cadre: "M1", ProjectName: "Ports"},
	}
	responses := []*model.Response{
		{EmployeeID: "E1", MobileNumber: "9876543210"},
	}

	cab := &model.CabAllocation{
		CabID:           "c1",
		CabNumber:       1,
		AssignedMembers: []string{"E1", "E2", "GHOST"},
		PickupLocation:  "Hotel",
		PickupTime:      "09:00",
	}

	dto, warnings := NewEnhancer(invitees, responses).Enhance(cab, "E2")
	require.NotNil(t, dto)

	assert.Equal(t, 3, dto.TotalMembers)
	assert.Equal(t, 1, dto.RespondedMembers)
	require.Len(t, dto.MemberDetails, 3)

	m1 := dto.MemberDetails[0]
	assert.Equal(t, "Asha Rao", m1.EmployeeName)
	assert.Equal(t, "Metro", m1.ProjectName)
	assert.True(t, m1.HasResponded)
	assert.Equal(t, "9876543210", m1.MobileNumber)
	assert.False(t, m1.IsCurrentUser)

	m2 := dto.MemberDetails[1]
	assert.True(t, m2.IsCurrentUser)
	assert.False(t, m2.HasResponded)

	ghost := dto.MemberDetails[2]
	assert.Equal(t, "Unknown", ghost.EmployeeName)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnUnknownInvitee, warnings[0].Kind)
	assert.Contains(t, warnings[0].Detail, "GHOST")
}

func TestEnhanceFirstResponseWins(t *testing.T) {
	responses := []*model.Response{
		{EmployeeID: "E1", MobileNumber: "111"},
		{EmployeeID: "E1", MobileNumber: "222"},
	}

	cab := &model.CabAllocation{AssignedMembers: []string{"E1"}}

	dto, _ := NewEnhancer(nil, responses).Enhance(cab, "")
	require.Len(t, dto.MemberDetails, 1)
	assert.Equal(t, "111", dto.MemberDetails[0].MobileNumber)
}

func TestEnhanceAllOrder(t *testing.T) {
	cabsIn := []*model.CabAllocation{
		{CabNumber: 5, AssignedMembers: []string{"E1"}},
		{CabNumber: 2, AssignedMembers: []string{"E2"}},
	}

	dtos, warnings := NewEnhancer(nil, nil).EnhanceAll(cabsIn, "")
	require.Len(t, dtos, 2)
	assert.Equal(t, 5, dtos[0].CabNumber)
	assert.Equal(t, 2, dtos[1].CabNumber)
	assert.Len(t, warnings, 2)
}

func TestEnhanceNil(t *testing.T) {
	dto, warnings := NewEnhancer(nil, nil).Enhance(nil, "")
	assert.Nil(t, dto)
	assert.Nil(t, warnings)
}
