package cabs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lancelot03/pmconnect/internal/model"
	"github.com/lancelot03/pmconnect/internal/tabular"
)

const (
	ColCabNumber      = "Cab Number"
	ColEmployeeID     = "Employee ID"
	ColPickupLocation = "Pickup Location"
	ColTime           = "Time"
)

const (
	WarnDuplicateAssignment = "duplicate_assignment"
	WarnCapacity            = "capacity"
	WarnPickupConflict      = "pickup_conflict"
	WarnTimeFormat          = "time_format"
	WarnUnknownInvitee      = "unknown_invitee"
)

var timeFormats = []string{"15:04", "3:04 PM", "15:04:05", "3:04:05 PM"}

// Row is one flat employee-to-cab line from an uploaded file.
type Row struct {
	Line           int
	CabNumber      int
	EmployeeID     string
	PickupLocation string
	PickupTime     string
}

type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Warning struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Result is the outcome of grouping one upload batch. Warnings never fail
// the batch; it fails when the header is unusable, the file has no data
// rows, or no row parses. A failed batch must never replace the stored one.
type Result struct {
	Allocations []*model.CabAllocation `json:"allocations"`
	Errors      []*RowError            `json:"errors"`
	Warnings    []*Warning             `json:"warnings"`
	TotalRows   int                    `json:"total_rows"`
	ValidRows   int                    `json:"valid_rows"`
}

func (r *Result) OK() bool {
	return r != nil && r.ValidRows > 0
}

type Grouper struct {
	capacity int
}

// NewGrouper creates a grouper with the given per-cab capacity threshold.
// Exceeding the threshold produces warnings, never rejections.
func NewGrouper(capacity int) *Grouper {
	if capacity <= 0 {
		capacity = 8
	}

	return &Grouper{capacity: capacity}
}

// ParseTable turns a tabular upload into rows, collecting per-row errors.
// A missing required column is fatal for the whole file.
func (g *Grouper) ParseTable(t *tabular.Table) ([]Row, []*RowError, []*Warning, error) {
	if missing := t.MissingColumns(ColCabNumber, ColEmployeeID, ColPickupLocation, ColTime); len(missing) > 0 {
		return nil, nil, nil, fmt.Errorf("file must contain columns: %s", strings.Join(missing, ", "))
	}

	cabIdx := t.Column(ColCabNumber)
	empIdx := t.Column(ColEmployeeID)
	locIdx := t.Column(ColPickupLocation)
	timeIdx := t.Column(ColTime)

	rows := make([]Row, 0, len(t.Rows))
	errs := make([]*RowError, 0)
	warnings := make([]*Warning, 0)

	for i, rec := range t.Rows {
		line := i + 1
		rowOk := true

		cabRaw := tabular.Cell(rec, cabIdx)
		cabNum, err := parseCabNumber(cabRaw)

		switch {
		case cabRaw == "":
			errs = append(errs, &RowError{Row: line, Field: ColCabNumber, Message: "Cab Number cannot be empty"})
			rowOk = false
		case err != nil:
			errs = append(errs, &RowError{Row: line, Field: ColCabNumber, Message: "Cab Number must be a valid integer"})
			rowOk = false
		case cabNum <= 0:
			errs = append(errs, &RowError{Row: line, Field: ColCabNumber, Message: "Cab Number must be positive"})
			rowOk = false
		}

		empID := tabular.Cell(rec, empIdx)
		if empID == "" {
			errs = append(errs, &RowError{Row: line, Field: ColEmployeeID, Message: "Employee ID cannot be empty"})
			rowOk = false
		}

		loc := tabular.Cell(rec, locIdx)
		if loc == "" {
			errs = append(errs, &RowError{Row: line, Field: ColPickupLocation, Message: "Pickup Location cannot be empty"})
			rowOk = false
		}

		pickupTime := tabular.Cell(rec, timeIdx)
		if pickupTime == "" {
			errs = append(errs, &RowError{Row: line, Field: ColTime, Message: "Pickup Time cannot be empty"})
			rowOk = false
		} else if !validTime(pickupTime) {
			warnings = append(warnings, &Warning{
				Kind:   WarnTimeFormat,
				Detail: fmt.Sprintf("row %d: time %q is not a standard format (HH:MM recommended)", line, pickupTime),
			})
		}

		if rowOk {
			rows = append(rows, Row{
				Line:           line,
				CabNumber:      cabNum,
				EmployeeID:     empID,
				PickupLocation: loc,
				PickupTime:     pickupTime,
			})
		}
	}

	return rows, errs, warnings, nil
}

// Group collapses flat rows into one allocation per cab number.
// Pickup location and time come from the first row of each cab; an employee
// seen under a second cab stays in the first one and produces a warning.
func (g *Grouper) Group(rows []Row, parseErrs []*RowError, parseWarnings []*Warning, totalRows int) *Result {
	res := &Result{
		Allocations: make([]*model.CabAllocation, 0),
		Errors:      parseErrs,
		Warnings:    parseWarnings,
		TotalRows:   totalRows,
		ValidRows:   len(rows),
	}

	if res.Errors == nil {
		res.Errors = make([]*RowError, 0)
	}

	if res.Warnings == nil {
		res.Warnings = make([]*Warning, 0)
	}

	byNumber := make(map[int]*model.CabAllocation)
	firstCab := make(map[string]int)

	for _, row := range rows {
		cab, ok := byNumber[row.CabNumber]
		if !ok {
			cab = &model.CabAllocation{
				CabID:           uuid.NewString(),
				Seq:             len(res.Allocations),
				CabNumber:       row.CabNumber,
				AssignedMembers: make([]string, 0, 4),
				PickupLocation:  row.PickupLocation,
				PickupTime:      row.PickupTime,
			}
			byNumber[row.CabNumber] = cab
			res.Allocations = append(res.Allocations, cab)
		} else {
			if row.PickupLocation != cab.PickupLocation || row.PickupTime != cab.PickupTime {
				res.Warnings = append(res.Warnings, &Warning{
					Kind: WarnPickupConflict,
					Detail: fmt.Sprintf("row %d: cab %d pickup differs from first row (%s %s), keeping first",
						row.Line, row.CabNumber, cab.PickupLocation, cab.PickupTime),
				})
			}
		}

		if first, seen := firstCab[row.EmployeeID]; seen {
			if first != row.CabNumber {
				res.Warnings = append(res.Warnings, &Warning{
					Kind: WarnDuplicateAssignment,
					Detail: fmt.Sprintf("employee %s is assigned to cab %d and cab %d, keeping cab %d",
						row.EmployeeID, first, row.CabNumber, first),
				})
			}

			continue
		}

		firstCab[row.EmployeeID] = row.CabNumber
		cab.AssignedMembers = append(cab.AssignedMembers, row.EmployeeID)
	}

	for _, cab := range res.Allocations {
		if n := len(cab.AssignedMembers); n > g.capacity {
			res.Warnings = append(res.Warnings, &Warning{
				Kind:   WarnCapacity,
				Detail: fmt.Sprintf("cab %d has %d members (capacity %d)", cab.CabNumber, n, g.capacity),
			})
		}
	}

	return res
}

// GroupTable is ParseTable followed by Group.
func (g *Grouper) GroupTable(t *tabular.Table) (*Result, error) {
	rows, errs, warnings, err := g.ParseTable(t)
	if err != nil {
		return nil, err
	}

	return g.Group(rows, errs, warnings, len(t.Rows)), nil
}

func parseCabNumber(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	// excel sometimes renders integers as floats
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return int(f), nil
}

func validTime(s string) bool {
	for _, f := range timeFormats {
		if _, err := time.Parse(f, strings.ToUpper(s)); err == nil {
			return true
		}
	}

	return false
}
