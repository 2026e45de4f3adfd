package cabs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lancelot03/pmconnect/internal/tabular"
)

func table(t *testing.T, csvData string) *tabular.Table {
	t.Helper()

	tab, err := tabular.Read("upload.csv", []byte(csvData))
	require.NoError(t, err)

	return tab
}

func TestGroupByCabNumber(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		"1,E1,Hotel Ashoka,09:00\n"+
		"1,E2,Hotel Ashoka,09:00\n"+
		"2,E3,Airport,10:30\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)
	require.True(t, res.OK())

	require.Len(t, res.Allocations, 2)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 3, res.ValidRows)

	cab1 := res.Allocations[0]
	assert.Equal(t, 1, cab1.CabNumber)
	assert.Equal(t, []string{"E1", "E2"}, cab1.AssignedMembers)
	assert.Equal(t, "Hotel Ashoka", cab1.PickupLocation)
	assert.Equal(t, "09:00", cab1.PickupTime)
	assert.NotEmpty(t, cab1.CabID)

	cab2 := res.Allocations[1]
	assert.Equal(t, 2, cab2.CabNumber)
	assert.Equal(t, []string{"E3"}, cab2.AssignedMembers)
}

func TestDuplicateAssignmentKeepsFirst(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		"1,E1,Hotel,09:00\n"+
		"2,E1,Airport,10:00\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)
	require.True(t, res.OK())

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, []string{"E1"}, res.Allocations[0].AssignedMembers)
	assert.Empty(t, res.Allocations[1].AssignedMembers)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnDuplicateAssignment, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Detail, "E1")
}

func TestDuplicateRowSameCabNoWarning(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		"1,E1,Hotel,09:00\n"+
		"1,E1,Hotel,09:00\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, []string{"E1"}, res.Allocations[0].AssignedMembers)
	assert.Empty(t, res.Warnings)
}

func TestCapacityWarning(t *testing.T) {
	var sb strings.Builder

	sb.WriteString("Cab Number,Employee ID,Pickup Location,Time\n")

	for _, id := range []string{"E1", "E2", "E3", "E4"} {
		sb.WriteString("1," + id + ",Hotel,09:00\n")
	}

	res, err := NewGrouper(3).GroupTable(table(t, sb.String()))
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnCapacity, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Detail, "capacity 3")
}

func TestPickupConflictKeepsFirst(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		"1,E1,Hotel,09:00\n"+
		"1,E2,Airport,11:00\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, "Hotel", res.Allocations[0].PickupLocation)
	assert.Equal(t, "09:00", res.Allocations[0].PickupTime)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnPickupConflict, res.Warnings[0].Kind)
}

func TestRowErrors(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		",E1,Hotel,09:00\n"+
		"abc,E2,Hotel,09:00\n"+
		"-1,E3,Hotel,09:00\n"+
		"2,,Hotel,09:00\n"+
		"2,E5,,09:00\n"+
		"2,E6,Hotel,\n"+
		"3,E7,Hotel,09:00\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)
	require.True(t, res.OK())

	assert.Equal(t, 7, res.TotalRows)
	assert.Equal(t, 1, res.ValidRows)
	require.Len(t, res.Errors, 6)

	fields := make(map[string]int)
	for _, e := range res.Errors {
		fields[e.Field]++
	}

	assert.Equal(t, 3, fields[ColCabNumber])
	assert.Equal(t, 1, fields[ColEmployeeID])
	assert.Equal(t, 1, fields[ColPickupLocation])
	assert.Equal(t, 1, fields[ColTime])

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, []string{"E7"}, res.Allocations[0].AssignedMembers)
}

func TestAllRowsInvalid(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		",,,\n"+
		"x,,,\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Empty(t, res.Allocations)
}

func TestMissingColumnsFatal(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID\n1,E1\n")

	_, err := NewGrouper(8).GroupTable(tab)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pickup Location")
	assert.Contains(t, err.Error(), "Time")
}

func TestTimeFormatWarning(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		"1,E1,Hotel,morning\n"+
		"1,E2,Hotel,9:30 am\n"+
		"1,E3,Hotel,17:45\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)

	// unparsable time is a warning, not an error
	assert.Equal(t, 3, res.ValidRows)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnTimeFormat, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Detail, "morning")
}

func TestFloatCabNumber(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n"+
		"3.0,E1,Hotel,09:00\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, 3, res.Allocations[0].CabNumber)
}

func TestEmptyFileRejected(t *testing.T) {
	tab := table(t, "Cab Number,Employee ID,Pickup Location,Time\n")

	res, err := NewGrouper(8).GroupTable(tab)
	require.NoError(t, err)

	// a header-only file must never pass: accepting it would replace the
	// stored batch with nothing
	assert.False(t, res.OK())
	assert.Zero(t, res.TotalRows)
	assert.Empty(t, res.Allocations)
}
