package integrity

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lancelot03/pmconnect/internal/database"
	"github.com/lancelot03/pmconnect/internal/model"
	"github.com/lancelot03/pmconnect/pkg/util"
)

const (
	CheckInviteeResponse = "Invitee-Response Consistency"
	CheckFoodTotals      = "Food Preference Totals"
	CheckCabDuplicates   = "Cab Assignment Duplicates"
	CheckOrphans         = "Orphaned Data Check"
)

const (
	StatusHealthy = "healthy"
	StatusWarning = "warning"
	StatusError   = "error"

	checkPassed = "passed"
	checkFailed = "failed"
)

type CheckResult struct {
	CheckName   string   `json:"checkName"`
	Status      string   `json:"status"`
	IssuesFound int      `json:"issuesFound"`
	Details     []string `json:"details"`
}

type Report struct {
	Timestamp     time.Time      `json:"timestamp"`
	OverallStatus string         `json:"overall_status"`
	Checks        []*CheckResult `json:"checks"`
	Statistics    map[string]any `json:"statistics"`
}

// FixResult is the outcome of repairing a single issue. One failed repair
// never aborts the remaining ones.
type FixResult struct {
	Type    string `json:"type"`
	Target  string `json:"target"`
	Fixed   bool   `json:"fixed"`
	Message string `json:"message,omitempty"`
}

type FixReport struct {
	Timestamp time.Time    `json:"timestamp"`
	Fixes     []*FixResult `json:"fixes_applied"`
	Success   bool         `json:"success"`
}

// Service runs read-only consistency checks across collections and, as a
// separate opt-in operation, applies deterministic repairs.
type Service struct {
	dbm    *database.DatabaseManager
	logger *slog.Logger
}

func New(dbm *database.DatabaseManager) *Service {
	return &Service{
		dbm:    dbm,
		logger: slog.With("logger", "integrity"),
	}
}

// RunChecks executes the fixed battery of checks. It never writes, so
// running it twice with no intervening writes yields identical counts.
func (s *Service) RunChecks() *Report {
	report := &Report{
		Timestamp:     time.Now(),
		OverallStatus: StatusHealthy,
		Checks:        make([]*CheckResult, 0, 4),
		Statistics:    make(map[string]any),
	}

	invitees := s.dbm.InviteeQuery().Limit(0).Get()
	responses := s.dbm.ResponseQuery().Limit(0).Get()
	cabs := s.dbm.CabQuery().Limit(0).Get()

	report.Statistics["total_invitees"] = len(invitees)
	report.Statistics["total_responses"] = len(responses)
	report.Statistics["total_cab_allocations"] = len(cabs)

	respondedIDs := util.NewStringSet()
	for _, r := range responses {
		respondedIDs.Add(r.EmployeeID)
	}

	inviteeIDs := util.NewStringSet()
	for _, inv := range invitees {
		inviteeIDs.Add(inv.EmployeeID)
	}

	c1 := s.checkInviteeResponse(invitees, respondedIDs)
	c2 := s.checkFoodTotals(len(responses))
	c3 := s.checkCabDuplicates(cabs)
	c4 := s.checkOrphans(responses, cabs, inviteeIDs)

	report.Checks = append(report.Checks, c1, c2, c3, c4)

	for _, c := range report.Checks {
		if c.IssuesFound == 0 {
			continue
		}

		if c.CheckName == CheckCabDuplicates {
			report.OverallStatus = StatusError
		} else if report.OverallStatus == StatusHealthy {
			report.OverallStatus = StatusWarning
		}
	}

	return report
}

// checkInviteeResponse reports every invitee whose hasResponded flag
// disagrees with actual response existence.
func (s *Service) checkInviteeResponse(invitees []*model.Invitee, responded util.StringSet) *CheckResult {
	res := &CheckResult{CheckName: CheckInviteeResponse, Status: checkPassed, Details: make([]string, 0)}

	for _, inv := range invitees {
		actual := responded.Has(inv.EmployeeID)
		if inv.HasResponded != actual {
			res.IssuesFound++
			res.Details = append(res.Details,
				fmt.Sprintf("invitee %s: hasResponded=%t but response exists=%t", inv.EmployeeID, inv.HasResponded, actual))
		}
	}

	if res.IssuesFound > 0 {
		res.Status = checkFailed
	}

	return res
}

// checkFoodTotals compares the cached dashboard food counters against a live
// grouping of responses. With no cached row there is nothing to disagree with.
func (s *Service) checkFoodTotals(totalResponses int) *CheckResult {
	res := &CheckResult{CheckName: CheckFoodTotals, Status: checkPassed, Details: make([]string, 0)}

	cached := s.dbm.GetTotals()
	if cached == nil {
		res.Details = append(res.Details, "no cached totals, nothing to verify")
		return res
	}

	live := s.dbm.FoodPreferenceCounts()

	var cachedSum int
	for pref, n := range cached.FoodPreferences {
		cachedSum += n

		if live[pref] != n {
			res.IssuesFound++
			res.Details = append(res.Details,
				fmt.Sprintf("food preference %q: cached=%d live=%d", pref, n, live[pref]))
		}
	}

	for pref, n := range live {
		if _, ok := cached.FoodPreferences[pref]; !ok {
			res.IssuesFound++
			res.Details = append(res.Details,
				fmt.Sprintf("food preference %q: cached=0 live=%d", pref, n))
		}
	}

	if cachedSum != totalResponses {
		res.IssuesFound++
		res.Details = append(res.Details,
			fmt.Sprintf("cached food preference total (%d) does not match response total (%d)", cachedSum, totalResponses))
	}

	if res.IssuesFound > 0 {
		res.Status = checkFailed
	}

	return res
}

// checkCabDuplicates reports every employee present in more than one
// allocation, walking cabs in batch order.
func (s *Service) checkCabDuplicates(cabs []*model.CabAllocation) *CheckResult {
	res := &CheckResult{CheckName: CheckCabDuplicates, Status: checkPassed, Details: make([]string, 0)}

	firstCab := make(map[string]int)
	flagged := util.NewStringSet()

	for _, cab := range cabs {
		for _, id := range cab.AssignedMembers {
			first, seen := firstCab[id]
			if !seen {
				firstCab[id] = cab.CabNumber
				continue
			}

			if !flagged.Has(id) {
				flagged.Add(id)
				res.IssuesFound++
			}

			res.Details = append(res.Details,
				fmt.Sprintf("employee %s assigned to cab %d and cab %d", id, first, cab.CabNumber))
		}
	}

	if res.IssuesFound > 0 {
		res.Status = checkFailed
	}

	return res
}

// checkOrphans reports responses and cab members whose employeeId has no
// invitee record. One issue per orphaned employee per collection.
func (s *Service) checkOrphans(responses []*model.Response, cabs []*model.CabAllocation, invitees util.StringSet) *CheckResult {
	res := &CheckResult{CheckName: CheckOrphans, Status: checkPassed, Details: make([]string, 0)}

	seen := util.NewStringSet()

	for _, r := range responses {
		if !invitees.Has(r.EmployeeID) && !seen.Has(r.EmployeeID) {
			seen.Add(r.EmployeeID)
			res.IssuesFound++
			res.Details = append(res.Details, fmt.Sprintf("response for non-invitee %s", r.EmployeeID))
		}
	}

	orphanMembers := util.NewStringSet()

	for _, cab := range cabs {
		for _, id := range cab.AssignedMembers {
			if !invitees.Has(id) && !orphanMembers.Has(id) {
				orphanMembers.Add(id)
				res.IssuesFound++
				res.Details = append(res.Details, fmt.Sprintf("cab %d member %s has no invitee record", cab.CabNumber, id))
			}
		}
	}

	if res.IssuesFound > 0 {
		res.Status = checkFailed
	}

	return res
}
