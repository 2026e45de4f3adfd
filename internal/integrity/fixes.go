package integrity

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lancelot03/pmconnect/internal/model"
	"github.com/lancelot03/pmconnect/pkg/util"
)

const (
	FixResponseFlag  = "response_flag_sync"
	FixCabDuplicates = "duplicate_cab_assignment"
)

// FixIssues repairs the findings of the invitee-response and cab-duplicate
// checks. Food-totals and orphan findings are reported only: the right
// resolution there is a policy call, not a deterministic rewrite.
func (s *Service) FixIssues() *FixReport {
	report := &FixReport{
		Timestamp: time.Now(),
		Fixes:     make([]*FixResult, 0),
		Success:   true,
	}

	s.fixResponseFlags(report)
	s.fixCabDuplicates(report)

	return report
}

// fixResponseFlags sets every invitee's hasResponded to match actual
// response existence, one invitee at a time so a single failure does not
// block the rest.
func (s *Service) fixResponseFlags(report *FixReport) {
	responded := util.NewStringSet()
	for _, r := range s.dbm.ResponseQuery().Limit(0).Get() {
		responded.Add(r.EmployeeID)
	}

	for _, inv := range s.dbm.InviteeQuery().Limit(0).Get() {
		actual := responded.Has(inv.EmployeeID)
		if inv.HasResponded == actual {
			continue
		}

		f := &FixResult{
			Type:   FixResponseFlag,
			Target: inv.EmployeeID,
			Fixed:  true,
		}

		if err := s.dbm.InviteeQuery().ID(inv.EmployeeID).Update(map[string]any{"has_responded": actual}); err != nil {
			s.logger.Error("error fixing response flag", slog.String("employee", inv.EmployeeID), slog.Any("error", err))

			f.Fixed = false
			f.Message = err.Error()
			report.Success = false
		} else {
			f.Message = fmt.Sprintf("hasResponded set to %t", actual)
		}

		report.Fixes = append(report.Fixes, f)
	}
}

// fixCabDuplicates removes every duplicated employee from all allocations
// except the first-seen one.
func (s *Service) fixCabDuplicates(report *FixReport) {
	seen := util.NewStringSet()

	for _, cab := range s.dbm.CabQuery().Limit(0).Get() {
		unique := make([]string, 0, len(cab.AssignedMembers))

		for _, id := range cab.AssignedMembers {
			if seen.Has(id) {
				continue
			}

			seen.Add(id)
			unique = append(unique, id)
		}

		if len(unique) == len(cab.AssignedMembers) {
			continue
		}

		removed := len(cab.AssignedMembers) - len(unique)
		cab.AssignedMembers = unique

		f := &FixResult{
			Type:   FixCabDuplicates,
			Target: fmt.Sprintf("cab %d", cab.CabNumber),
			Fixed:  true,
		}

		if err := s.dbm.Save(cab); err != nil {
			s.logger.Error("error fixing cab duplicates", slog.Int("cab", cab.CabNumber), slog.Any("error", err))

			f.Fixed = false
			f.Message = err.Error()
			report.Success = false
		} else {
			f.Message = fmt.Sprintf("removed %d duplicate member(s)", removed)
		}

		report.Fixes = append(report.Fixes, f)
	}
}

// RefreshTotals recomputes every dashboard counter from the source
// collections and overwrites the cached row.
func (s *Service) RefreshTotals() (*model.DashboardTotals, error) {
	totals := &model.DashboardTotals{
		TotalInvitees:         int(s.dbm.InviteeQuery().Count()),
		RsvpYes:               int(s.dbm.InviteeQuery().Responded(true).Count()),
		AccommodationRequests: int(s.dbm.ResponseQuery().Accommodation(true).Count()),
		FoodPreferences:       s.dbm.FoodPreferenceCounts(),
	}

	totals.RsvpNo = totals.TotalInvitees - totals.RsvpYes

	if err := s.dbm.SaveTotals(totals); err != nil {
		return nil, err
	}

	return totals, nil
}
