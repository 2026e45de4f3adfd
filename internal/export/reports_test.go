package export

import (
	"bytes"
	"encoding/base64"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lancelot03/pmconnect/internal/database"
	"github.com/lancelot03/pmconnect/internal/model"
)

func prepare(t *testing.T) *database.DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

func openExport(t *testing.T, e *Export) *excelize.File {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(e.ExcelData)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)

	return f
}

func seedResponses(t *testing.T, dbm *database.DatabaseManager) {
	t.Helper()

	require.NoError(t, dbm.Create(&model.Invitee{
		EmployeeID: "E1", EmployeeName: "Asha Rao", Cadre: "M2",
		ProjectName: "Metro", HasResponded: true,
	}))
	require.NoError(t, dbm.Create(&model.Invitee{
		EmployeeID: "E2", EmployeeName: "Vikram Shah", Cadre: "M1", ProjectName: "Ports",
	}))

	require.NoError(t, dbm.Create(&model.Response{
		ResponseID: "r1", EmployeeID: "E1", MobileNumber: "9000000001",
		RequiresAccommodation: true, ArrivalDate: "2026-09-01",
		DepartureDate: "2026-09-03", FoodPreference: model.FoodVeg,
		SubmissionTimestamp: time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
	}))
}

func TestResponsesEmpty(t *testing.T) {
	svc := NewService(prepare(t))

	_, err := svc.Responses()
	require.ErrorIs(t, err, ErrNoData)
}

func TestResponsesSimple(t *testing.T) {
	dbm := prepare(t)
	seedResponses(t, dbm)

	e, err := NewService(dbm).Responses()
	require.NoError(t, err)
	require.Contains(t, e.Filename, "PM_Connect_Responses_")

	f := openExport(t, e)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Employee ID", rows[0][0])
	require.Equal(t, "E1", rows[1][0])
	require.Equal(t, "Yes", rows[1][2])
}

func TestResponsesAdvancedSheets(t *testing.T) {
	dbm := prepare(t)
	seedResponses(t, dbm)

	e, err := NewService(dbm).ResponsesAdvanced()
	require.NoError(t, err)
	require.NotEmpty(t, e.ExportID)
	require.Equal(t, 1, e.Summary["total_responses"])
	require.Equal(t, 1, e.Summary["accommodation_requests"])

	f := openExport(t, e)
	defer f.Close()

	require.ElementsMatch(t,
		[]string{"All Responses", "Accommodation Analysis", "Food Preferences", "Project Breakdown"},
		f.GetSheetList())

	rows, err := f.GetRows("All Responses")
	require.NoError(t, err)
	require.Equal(t, "Asha Rao", rows[1][1])
	require.Equal(t, "Metro", rows[1][3])

	food, err := f.GetRows("Food Preferences")
	require.NoError(t, err)
	require.Equal(t, model.FoodVeg, food[2][0])
	require.Equal(t, "100.0%", food[2][2])
}

func TestResponsesAdvancedUnknownInvitee(t *testing.T) {
	dbm := prepare(t)

	require.NoError(t, dbm.Create(&model.Response{
		ResponseID: "r9", EmployeeID: "GHOST", FoodPreference: model.FoodNonVeg,
		SubmissionTimestamp: time.Now(),
	}))

	e, err := NewService(dbm).ResponsesAdvanced()
	require.NoError(t, err)

	f := openExport(t, e)
	defer f.Close()

	rows, err := f.GetRows("All Responses")
	require.NoError(t, err)
	require.Equal(t, "Unknown", rows[1][1])
	require.Equal(t, "Not Specified", rows[1][2])
}

func TestInviteesWithStatus(t *testing.T) {
	dbm := prepare(t)
	seedResponses(t, dbm)

	e, err := NewService(dbm).InviteesWithStatus()
	require.NoError(t, err)
	require.Equal(t, 2, e.Summary["total_invitees"])
	require.Equal(t, 1, e.Summary["responded"])
	require.Equal(t, 1, e.Summary["pending"])

	f := openExport(t, e)
	defer f.Close()

	rows, err := f.GetRows("Invitees with Status")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byID := make(map[string][]string)
	for _, row := range rows[1:] {
		byID[row[0]] = row
	}

	require.Equal(t, "Responded", byID["E1"][4])
	require.Equal(t, "Pending", byID["E2"][4])
}

func TestCabAllocationsExport(t *testing.T) {
	dbm := prepare(t)
	seedResponses(t, dbm)

	require.NoError(t, dbm.Create(&model.CabAllocation{
		CabID: "c1", Seq: 0, CabNumber: 1,
		AssignedMembers: []string{"E1", "E9"},
		PickupLocation:  "Gate 4", PickupTime: "08:30",
	}))

	e, err := NewService(dbm).CabAllocations()
	require.NoError(t, err)
	require.Equal(t, 1, e.Summary["total_cabs"])
	require.Equal(t, 2, e.Summary["total_members"])

	f := openExport(t, e)
	defer f.Close()

	rows, err := f.GetRows("Cab Allocations")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Asha Rao", rows[1][2])
	require.Equal(t, "Unknown", rows[2][2])
	require.Equal(t, "Gate 4", rows[1][5])
}

func TestExportProgress(t *testing.T) {
	dbm := prepare(t)
	seedResponses(t, dbm)

	svc := NewService(dbm)

	e, err := svc.ResponsesAdvanced()
	require.NoError(t, err)
	require.NotEmpty(t, e.ExportID)

	status := svc.Progress(e.ExportID)
	require.NotNil(t, status)
	require.Equal(t, "completed", status.Status)
	require.Equal(t, e.Filename, status.Filename)

	require.Nil(t, svc.Progress("no-such-export"))
}
