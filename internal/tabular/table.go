package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is an uploaded spreadsheet reduced to a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read parses uploaded file contents by extension (.csv or .xlsx).
func Read(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCsv(data)
	case ".xlsx":
		return readXlsx(data)
	default:
		return nil, fmt.Errorf("file must be CSV or Excel format")
	}
}

func readCsv(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}

	return fromRecords(records)
}

func readXlsx(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error reading workbook: %w", err)
	}

	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	return fromRecords(records)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &Table{Header: header, Rows: records[1:]}, nil
}

// Column returns the index of the named column, matching case-insensitively,
// or -1 if the header does not contain it.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(h, name) {
			return i
		}
	}

	return -1
}

// MissingColumns reports which of the required columns are absent.
func (t *Table) MissingColumns(required ...string) []string {
	var missing []string

	for _, name := range required {
		if t.Column(name) == -1 {
			missing = append(missing, name)
		}
	}

	return missing
}

// Cell returns the trimmed value at idx, tolerating short rows.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
