package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCsv(t *testing.T) {
	data := []byte("Employee ID, Employee Name ,Cadre\nE1,Asha Rao,M2\nE2,Vikram Shah\n")

	tab, err := Read("invitees.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee ID", "Employee Name", "Cadre"}, tab.Header)
	require.Len(t, tab.Rows, 2)

	// short row tolerated via Cell
	assert.Equal(t, "Vikram Shah", Cell(tab.Rows[1], 1))
	assert.Equal(t, "", Cell(tab.Rows[1], 2))
}

func TestReadXlsx(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Employee ID", "Employee Name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"E1", "Asha Rao"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tab, err := Read("invitees.XLSX", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee ID", "Employee Name"}, tab.Header)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "E1", Cell(tab.Rows[0], 0))
}

func TestReadBadExtension(t *testing.T) {
	_, err := Read("invitees.txt", []byte("a,b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV or Excel")
}

func TestReadEmpty(t *testing.T) {
	_, err := Read("invitees.csv", nil)
	require.Error(t, err)

	_, err = Read("invitees.xlsx", bytes.Repeat([]byte{0}, 16))
	require.Error(t, err)
}

func TestColumnLookup(t *testing.T) {
	tab, err := Read("x.csv", []byte("Employee ID,Cab Number\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, tab.Column("employee id"))
	assert.Equal(t, 1, tab.Column("CAB NUMBER"))
	assert.Equal(t, -1, tab.Column("Time"))

	missing := tab.MissingColumns("Employee ID", "Pickup Location", "Time")
	assert.Equal(t, []string{"Pickup Location", "Time"}, missing)
	assert.Empty(t, tab.MissingColumns("Cab Number"))
}

func TestCellBounds(t *testing.T) {
	row := []string{" a ", "b"}

	assert.Equal(t, "a", Cell(row, 0))
	assert.Equal(t, "", Cell(row, -1))
	assert.Equal(t, "", Cell(row, 5))
}
