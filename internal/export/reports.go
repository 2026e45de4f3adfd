package export

import (
	"sort"

	"github.com/lancelot03/pmconnect/internal/model"
)

// Responses builds the plain one-sheet responses download.
func (s *Service) Responses() (*Export, error) {
	responses := s.dbm.ResponseQuery().Limit(0).Get()
	if len(responses) == 0 {
		return nil, ErrNoData
	}

	sh := &sheet{name: "Responses"}
	sh.add("Employee ID", "Mobile Number", "Requires Accommodation",
		"Arrival Date", "Departure Date", "Food Preference", "Submission Time")

	for _, r := range responses {
		sh.add(r.EmployeeID, r.MobileNumber, yesNo(r.RequiresAccommodation),
			r.ArrivalDate, r.DepartureDate, r.FoodPreference,
			r.SubmissionTimestamp.Format("2006-01-02 15:04:05"))
	}

	data, err := writeWorkbook(sh)
	if err != nil {
		return nil, err
	}

	return &Export{
		ExcelData: data,
		Filename:  timestampedName("PM_Connect_Responses"),
	}, nil
}

// ResponsesAdvanced builds the four-sheet comprehensive report: every
// response enriched with invitee fields, plus accommodation, food and
// project analytics.
func (s *Service) ResponsesAdvanced() (*Export, error) {
	responses := s.dbm.ResponseQuery().Limit(0).Get()
	if len(responses) == 0 {
		return nil, ErrNoData
	}

	invitees := inviteeLookup(s.dbm.InviteeQuery().Limit(0).Get())
	total := len(responses)

	main := &sheet{name: "All Responses"}
	main.add("Employee ID", "Employee Name", "Cadre", "Project Name",
		"Mobile Number", "Requires Accommodation", "Arrival Date",
		"Departure Date", "Food Preference", "Departure Time Preference",
		"Arrival Time Preference", "Special Flight Requirements",
		"Submission Date", "Submission Time")

	accommodationYes := 0
	foodCounts := make(map[string]int)
	projectCounts := make(map[string]int)

	type stayer struct {
		id, name, arrival, departure string
	}

	stayers := make([]stayer, 0)

	for _, r := range responses {
		name, cadre, project := "Unknown", "Not Specified", "Not Specified"

		if inv, ok := invitees[r.EmployeeID]; ok {
			name, cadre, project = inv.EmployeeName, inv.Cadre, inv.ProjectName
		}

		main.add(r.EmployeeID, name, cadre, project, r.MobileNumber,
			yesNo(r.RequiresAccommodation), r.ArrivalDate, r.DepartureDate,
			r.FoodPreference, r.DepartureTimePreference,
			r.ArrivalTimePreference, r.SpecialFlightRequirements,
			r.SubmissionTimestamp.Format("2006-01-02"),
			r.SubmissionTimestamp.Format("15:04:05"))

		if r.RequiresAccommodation {
			accommodationYes++

			stayers = append(stayers, stayer{r.EmployeeID, name, r.ArrivalDate, r.DepartureDate})
		}

		foodCounts[r.FoodPreference]++
		projectCounts[project]++
	}

	accommodation := &sheet{name: "Accommodation Analysis"}
	accommodation.add("Accommodation Summary", "", "")
	accommodation.add("Total Responses", total, "")
	accommodation.add("Requires Accommodation", accommodationYes, percent(accommodationYes, total))
	accommodation.add("No Accommodation", total-accommodationYes, percent(total-accommodationYes, total))
	accommodation.add("", "", "")
	accommodation.add("Accommodation Details", "", "")
	accommodation.add("Employee ID", "Employee Name", "Arrival Date", "Departure Date")

	for _, st := range stayers {
		accommodation.add(st.id, st.name, st.arrival, st.departure)
	}

	food := &sheet{name: "Food Preferences"}
	food.add("Food Preference Analysis", "", "")
	food.add("Food Type", "Count", "Percentage")

	for _, k := range sortedByCount(foodCounts) {
		food.add(k, foodCounts[k], percent(foodCounts[k], total))
	}

	food.add("", "", "")
	food.add("Total Responses", total, "100%")

	projects := &sheet{name: "Project Breakdown"}
	projects.add("Project-wise Response Analysis", "", "")
	projects.add("Project Name", "Responses", "Percentage")

	for _, k := range sortedByCount(projectCounts) {
		projects.add(k, projectCounts[k], percent(projectCounts[k], total))
	}

	data, err := writeWorkbook(main, accommodation, food, projects)
	if err != nil {
		return nil, err
	}

	return s.track(&Export{
		ExportID:  newExportID(),
		ExcelData: data,
		Filename:  timestampedName("PM_Connect_Comprehensive_Report"),
		Summary: map[string]any{
			"total_responses":        total,
			"accommodation_requests": accommodationYes,
			"food_preferences":       foodCounts,
			"project_breakdown":      projectCounts,
			"sheets_created": []string{"All Responses", "Accommodation Analysis",
				"Food Preferences", "Project Breakdown"},
		},
	}), nil
}

// InviteesWithStatus exports the invitee list with each person's
// response status, one row per invitee.
func (s *Service) InviteesWithStatus() (*Export, error) {
	invitees := s.dbm.InviteeQuery().Limit(0).Get()
	if len(invitees) == 0 {
		return nil, ErrNoData
	}

	byEmployee := make(map[string]*model.Response)

	for _, r := range s.dbm.ResponseQuery().Limit(0).Get() {
		if _, ok := byEmployee[r.EmployeeID]; !ok {
			byEmployee[r.EmployeeID] = r
		}
	}

	sh := &sheet{name: "Invitees with Status"}
	sh.add("Employee ID", "Employee Name", "Cadre", "Project Name",
		"Response Status", "Mobile Number", "Accommodation",
		"Food Preference", "Response Date")

	responded := 0

	for _, inv := range invitees {
		if r, ok := byEmployee[inv.EmployeeID]; ok {
			responded++

			sh.add(inv.EmployeeID, inv.EmployeeName, inv.Cadre, inv.ProjectName,
				"Responded", r.MobileNumber, yesNo(r.RequiresAccommodation),
				r.FoodPreference, r.SubmissionTimestamp.Format("2006-01-02"))
		} else {
			sh.add(inv.EmployeeID, inv.EmployeeName, inv.Cadre, inv.ProjectName,
				"Pending", "", "", "", "")
		}
	}

	data, err := writeWorkbook(sh)
	if err != nil {
		return nil, err
	}

	return s.track(&Export{
		ExportID:  newExportID(),
		ExcelData: data,
		Filename:  timestampedName("PM_Connect_Invitees_Status"),
		Summary: map[string]any{
			"total_invitees": len(invitees),
			"responded":      responded,
			"pending":        len(invitees) - responded,
		},
	}), nil
}

// CabAllocations exports the current batch flattened to one row per
// assigned member, joined with invitee names.
func (s *Service) CabAllocations() (*Export, error) {
	cabs := s.dbm.CabQuery().Limit(0).Get()
	if len(cabs) == 0 {
		return nil, ErrNoData
	}

	invitees := inviteeLookup(s.dbm.InviteeQuery().Limit(0).Get())

	sh := &sheet{name: "Cab Allocations"}
	sh.add("Cab Number", "Employee ID", "Employee Name", "Cadre",
		"Project Name", "Pickup Location", "Pickup Time")

	members := 0

	for _, cab := range cabs {
		for _, empID := range cab.AssignedMembers {
			members++

			name, cadre, project := "Unknown", "", ""

			if inv, ok := invitees[empID]; ok {
				name, cadre, project = inv.EmployeeName, inv.Cadre, inv.ProjectName
			}

			sh.add(cab.CabNumber, empID, name, cadre, project,
				cab.PickupLocation, cab.PickupTime)
		}
	}

	data, err := writeWorkbook(sh)
	if err != nil {
		return nil, err
	}

	return s.track(&Export{
		ExportID:  newExportID(),
		ExcelData: data,
		Filename:  timestampedName("PM_Connect_Cab_Allocations"),
		Summary: map[string]any{
			"total_cabs":    len(cabs),
			"total_members": members,
		},
	}), nil
}

func inviteeLookup(invitees []*model.Invitee) map[string]*model.Invitee {
	m := make(map[string]*model.Invitee, len(invitees))

	for _, inv := range invitees {
		m[inv.EmployeeID] = inv
	}

	return m
}

// sortedByCount orders keys by descending count, name as tie-break, so
// the analytics sheets are deterministic.
func sortedByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))

	for k := range counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}

		return keys[i] < keys[j]
	})

	return keys
}
