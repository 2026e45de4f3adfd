package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/lancelot03/pmconnect/internal/database"
)

// ErrNoData means the source collection is empty. The API layer turns
// this into a {message: ...} payload instead of a workbook.
var ErrNoData = errors.New("no data to export")

const (
	headerColor = "2F75B5"
	maxColWidth = 50
)

// Export is the payload returned for every workbook download: the file
// itself as base64 plus a summary of what went into it.
type Export struct {
	ExportID  string         `json:"export_id,omitempty"`
	ExcelData string         `json:"excel_data"`
	Filename  string         `json:"filename"`
	Summary   map[string]any `json:"summary,omitempty"`
}

// Status describes a finished export. Workbooks are built synchronously,
// so every known id is already completed; an unknown id means no such
// export was ever produced.
type Status struct {
	ExportID    string    `json:"export_id"`
	Status      string    `json:"status"`
	Filename    string    `json:"filename"`
	CompletedAt time.Time `json:"completed_at"`
}

type Service struct {
	dbm      *database.DatabaseManager
	logger   *slog.Logger
	statuses sync.Map
}

func NewService(dbm *database.DatabaseManager) *Service {
	return &Service{
		dbm:    dbm,
		logger: slog.With("logger", "export"),
	}
}

// track records a produced export so its id can be queried later.
func (s *Service) track(e *Export) *Export {
	if e.ExportID != "" {
		s.statuses.Store(e.ExportID, &Status{
			ExportID:    e.ExportID,
			Status:      "completed",
			Filename:    e.Filename,
			CompletedAt: time.Now(),
		})
	}

	return e
}

// Progress returns the status of a previously produced export, or nil
// for an unknown id.
func (s *Service) Progress(exportID string) *Status {
	if v, ok := s.statuses.Load(exportID); ok {
		return v.(*Status)
	}

	return nil
}

func timestampedName(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
}

func newExportID() string {
	return uuid.NewString()
}

// sheet accumulates rows for one worksheet before it is written out.
type sheet struct {
	name string
	rows [][]any
}

func (s *sheet) add(cells ...any) {
	s.rows = append(s.rows, cells)
}

// writeWorkbook renders the sheets into a styled xlsx file and returns
// it base64-encoded. The first row of every sheet is treated as the
// header and gets the bold white-on-blue treatment the reports use.
func writeWorkbook(sheets ...*sheet) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return "", err
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return "", err
			}
		} else {
			if _, err := f.NewSheet(sh.name); err != nil {
				return "", err
			}
		}

		widths := make([]int, 0)

		for rowIdx, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return "", err
			}

			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return "", err
			}

			for colIdx, v := range row {
				w := len(fmt.Sprint(v))

				if colIdx >= len(widths) {
					widths = append(widths, w)
				} else if w > widths[colIdx] {
					widths[colIdx] = w
				}
			}
		}

		if len(sh.rows) > 0 && len(sh.rows[0]) > 0 {
			last, err := excelize.CoordinatesToCellName(len(sh.rows[0]), 1)
			if err != nil {
				return "", err
			}

			if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
				return "", err
			}
		}

		for colIdx, w := range widths {
			col, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return "", err
			}

			width := w + 2
			if width > maxColWidth {
				width = maxColWidth
			}

			if err := f.SetColWidth(sh.name, col, col, float64(width)); err != nil {
				return "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}

	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
