package cabs

import (
	"fmt"

	"github.com/lancelot03/pmconnect/internal/model"
)

const unknownName = "Unknown"

// Enhancer joins cab members with invitee names and response status.
type Enhancer struct {
	invitees  map[string]*model.Invitee
	responses map[string]*model.Response
}

func NewEnhancer(invitees []*model.Invitee, responses []*model.Response) *Enhancer {
	e := &Enhancer{
		invitees:  make(map[string]*model.Invitee, len(invitees)),
		responses: make(map[string]*model.Response, len(responses)),
	}

	for _, inv := range invitees {
		e.invitees[inv.EmployeeID] = inv
	}

	for _, r := range responses {
		if _, ok := e.responses[r.EmployeeID]; !ok {
			e.responses[r.EmployeeID] = r
		}
	}

	return e
}

// Enhance resolves member details for one allocation. A member without an
// invitee record is kept with a placeholder name and reported as a warning.
func (e *Enhancer) Enhance(cab *model.CabAllocation, currentUser string) (*model.EnhancedCabDTO, []*Warning) {
	if cab == nil {
		return nil, nil
	}

	dto := &model.EnhancedCabDTO{
		CabID:          cab.CabID,
		CabNumber:      cab.CabNumber,
		PickupLocation: cab.PickupLocation,
		PickupTime:     cab.PickupTime,
		MemberDetails:  make([]*model.CabMemberDTO, 0, len(cab.AssignedMembers)),
	}

	var warnings []*Warning

	for _, id := range cab.AssignedMembers {
		m := &model.CabMemberDTO{
			EmployeeID:    id,
			EmployeeName:  unknownName,
			IsCurrentUser: currentUser != "" && id == currentUser,
		}

		if inv, ok := e.invitees[id]; ok {
			m.EmployeeName = inv.EmployeeName
			m.Cadre = inv.Cadre
			m.ProjectName = inv.ProjectName
		} else {
			warnings = append(warnings, &Warning{
				Kind:   WarnUnknownInvitee,
				Detail: fmt.Sprintf("cab %d: no invitee record for employee %s", cab.CabNumber, id),
			})
		}

		if r, ok := e.responses[id]; ok {
			m.HasResponded = true
			m.MobileNumber = r.MobileNumber
			dto.RespondedMembers++
		}

		dto.MemberDetails = append(dto.MemberDetails, m)
	}

	dto.TotalMembers = len(dto.MemberDetails)

	return dto, warnings
}

// EnhanceAll enhances every allocation, preserving batch order.
func (e *Enhancer) EnhanceAll(cabs []*model.CabAllocation, currentUser string) ([]*model.EnhancedCabDTO, []*Warning) {
	res := make([]*model.EnhancedCabDTO, 0, len(cabs))

	var warnings []*Warning

	for _, cab := range cabs {
		dto, w := e.Enhance(cab, currentUser)
		res = append(res, dto)
		warnings = append(warnings, w...)
	}

	return res, warnings
}
