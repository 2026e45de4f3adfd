package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lancelot03/pmconnect/internal/model"
)

func prepare(t *testing.T) *DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

func TestReplaceInvitees(t *testing.T) {
	dbm := prepare(t)

	require.NoError(t, dbm.Create(&model.Invitee{EmployeeID: "OLD1"}))
	require.NoError(t, dbm.Create(&model.Invitee{EmployeeID: "OLD2"}))

	n, err := dbm.ReplaceInvitees([]*model.Invitee{
		{EmployeeID: "E1", EmployeeName: "Asha Rao"},
		{EmployeeID: "E2", EmployeeName: "Vikram Shah"},
		{EmployeeID: "E3", EmployeeName: "Meera Iyer"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all := dbm.InviteeQuery().Get()
	require.Len(t, all, 3)
	assert.Nil(t, dbm.InviteeQuery().ID("OLD1").One())
}

func TestMergeInvitees(t *testing.T) {
	dbm := prepare(t)

	require.NoError(t, dbm.Create(&model.Invitee{EmployeeID: "E1", EmployeeName: "Old Name"}))

	n, err := dbm.MergeInvitees([]*model.Invitee{
		{EmployeeID: "E1", EmployeeName: "New Name"},
		{EmployeeID: "E2", EmployeeName: "Vikram Shah"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.EqualValues(t, 2, dbm.InviteeQuery().Count())

	e1 := dbm.InviteeQuery().ID("E1").One()
	require.NotNil(t, e1)
	assert.Equal(t, "New Name", e1.EmployeeName)
}

func TestInviteeRespondedFilter(t *testing.T) {
	dbm := prepare(t)

	require.NoError(t, dbm.Create(&model.Invitee{EmployeeID: "E1", HasResponded: true}))
	require.NoError(t, dbm.Create(&model.Invitee{EmployeeID: "E2"}))
	require.NoError(t, dbm.Create(&model.Invitee{EmployeeID: "E3"}))

	assert.EqualValues(t, 1, dbm.InviteeQuery().Responded(true).Count())
	assert.EqualValues(t, 2, dbm.InviteeQuery().Responded(false).Count())

	require.NoError(t, dbm.InviteeQuery().ID("E2").Update(map[string]any{"has_responded": true}))
	assert.EqualValues(t, 2, dbm.InviteeQuery().Responded(true).Count())

	// updating a missing record is an error
	require.Error(t, dbm.InviteeQuery().ID("NOPE").Update(map[string]any{"has_responded": true}))
}

func TestCabOrderAndLookup(t *testing.T) {
	dbm := prepare(t)

	n, err := dbm.ReplaceCabAllocations([]*model.CabAllocation{
		{CabID: "c1", Seq: 0, CabNumber: 7, AssignedMembers: []string{"E1", "E2"}},
		{CabID: "c2", Seq: 1, CabNumber: 2, AssignedMembers: []string{"E3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// batch order preserved, not cab number order
	cabs := dbm.CabQuery().Get()
	require.Len(t, cabs, 2)
	assert.Equal(t, 7, cabs[0].CabNumber)
	assert.Equal(t, []string{"E1", "E2"}, cabs[0].AssignedMembers)

	cab := dbm.CabForEmployee("E3")
	require.NotNil(t, cab)
	assert.Equal(t, 2, cab.CabNumber)
	assert.Nil(t, dbm.CabForEmployee("GHOST"))

	// replace wipes the previous batch
	n, err = dbm.ReplaceCabAllocations([]*model.CabAllocation{
		{CabID: "c3", Seq: 0, CabNumber: 1, AssignedMembers: []string{"E9"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 1, dbm.CabQuery().Count())
	assert.Nil(t, dbm.CabForEmployee("E1"))
}

func TestResponseQuery(t *testing.T) {
	dbm := prepare(t)

	now := time.Now()

	require.NoError(t, dbm.Create(&model.Response{
		ResponseID: "r2", EmployeeID: "E2", RequiresAccommodation: true,
		FoodPreference: model.FoodNonVeg, SubmissionTimestamp: now,
	}))
	require.NoError(t, dbm.Create(&model.Response{
		ResponseID: "r1", EmployeeID: "E1",
		FoodPreference: model.FoodVeg, SubmissionTimestamp: now.Add(-time.Hour),
	}))

	// ordered by submission time
	all := dbm.ResponseQuery().Get()
	require.Len(t, all, 2)
	assert.Equal(t, "r1", all[0].ResponseID)

	assert.EqualValues(t, 1, dbm.ResponseQuery().Accommodation(true).Count())

	r := dbm.ResponseQuery().EmployeeID("E1").One()
	require.NotNil(t, r)
	assert.Equal(t, "r1", r.ResponseID)
	assert.Nil(t, dbm.ResponseQuery().EmployeeID("E9").One())
}

func TestFoodPreferenceCounts(t *testing.T) {
	dbm := prepare(t)

	assert.Empty(t, dbm.FoodPreferenceCounts())

	for i, pref := range []string{model.FoodVeg, model.FoodVeg, model.FoodNonVeg, model.FoodNotRequired} {
		require.NoError(t, dbm.Create(&model.Response{
			ResponseID: string(rune('a' + i)), EmployeeID: "E1", FoodPreference: pref,
		}))
	}

	counts := dbm.FoodPreferenceCounts()
	assert.Equal(t, map[string]int{
		model.FoodVeg:         2,
		model.FoodNonVeg:      1,
		model.FoodNotRequired: 1,
	}, counts)
}

func TestSetAgendaReplaces(t *testing.T) {
	dbm := prepare(t)

	require.NoError(t, dbm.SetAgenda(&model.Agenda{AgendaID: "a1", AgendaTitle: "Day 1", PdfBase64: "x", UploadTimestamp: time.Now()}))
	require.NoError(t, dbm.SetAgenda(&model.Agenda{AgendaID: "a2", AgendaTitle: "Day 2", PdfBase64: "x", UploadTimestamp: time.Now()}))

	assert.EqualValues(t, 1, dbm.AgendaQuery().Count())

	a := dbm.AgendaQuery().One()
	require.NotNil(t, a)
	assert.Equal(t, "Day 2", a.AgendaTitle)
}

func TestGalleryQueryFilters(t *testing.T) {
	dbm := prepare(t)

	require.NoError(t, dbm.Create(&model.GalleryPhoto{
		PhotoID: "p1", EmployeeID: "E1", EventVersion: model.CurrentEventVersion, ImageBase64: "x",
	}))
	require.NoError(t, dbm.Create(&model.GalleryPhoto{
		PhotoID: "p2", EmployeeID: "E1", EventVersion: "PM Connect 2.0", ImageBase64: "x",
	}))
	require.NoError(t, dbm.Create(&model.GalleryPhoto{
		PhotoID: "p3", EmployeeID: "E2", EventVersion: model.CurrentEventVersion, ImageBase64: "x",
	}))

	assert.EqualValues(t, 2, dbm.GalleryQuery().EventVersion(model.CurrentEventVersion).Count())
	assert.EqualValues(t, 1, dbm.GalleryQuery().EmployeeID("E1").EventVersion(model.CurrentEventVersion).Count())

	require.NoError(t, dbm.GalleryQuery().ID("p1").Delete())
	assert.Nil(t, dbm.GalleryQuery().ID("p1").One())
	assert.EqualValues(t, 2, dbm.GalleryQuery().Count())
}

func TestTotalsRoundTrip(t *testing.T) {
	dbm := prepare(t)

	assert.Nil(t, dbm.GetTotals())

	require.NoError(t, dbm.SaveTotals(&model.DashboardTotals{
		TotalInvitees: 10, RsvpYes: 4, RsvpNo: 6,
		FoodPreferences: map[string]int{model.FoodVeg: 4},
	}))

	got := dbm.GetTotals()
	require.NotNil(t, got)
	assert.Equal(t, 10, got.TotalInvitees)
	assert.Equal(t, map[string]int{model.FoodVeg: 4}, got.FoodPreferences)

	// single row, overwritten on save
	require.NoError(t, dbm.SaveTotals(&model.DashboardTotals{TotalInvitees: 11}))
	got = dbm.GetTotals()
	assert.Equal(t, 11, got.TotalInvitees)
}
