package model

type CabAllocation struct {
	CabID           string   `gorm:"primaryKey"`
	// Seq is the first-seen position of the cab in its upload batch.
	Seq             int      `gorm:"not null;default:0;index"`
	CabNumber       int      `gorm:"not null;index"`
	AssignedMembers []string `gorm:"serializer:json"`
	PickupLocation  string   `gorm:"not null;default:''"`
	PickupTime      string   `gorm:"not null;default:''"`
}

type CabAllocationDTO struct {
	CabID           string   `json:"cabId"`
	CabNumber       int      `json:"cabNumber"`
	AssignedMembers []string `json:"assignedMembers"`
	PickupLocation  string   `json:"pickupLocation"`
	PickupTime      string   `json:"pickupTime"`
}

// CabMemberDTO is a cab member joined with invitee and response data.
type CabMemberDTO struct {
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	Cadre         string `json:"cadre,omitempty"`
	ProjectName   string `json:"projectName,omitempty"`
	MobileNumber  string `json:"mobileNumber,omitempty"`
	HasResponded  bool   `json:"hasResponded"`
	IsCurrentUser bool   `json:"isCurrentUser,omitempty"`
}

type EnhancedCabDTO struct {
	CabID            string          `json:"cabId"`
	CabNumber        int             `json:"cabNumber"`
	PickupLocation   string          `json:"pickupLocation"`
	PickupTime       string          `json:"pickupTime"`
	MemberDetails    []*CabMemberDTO `json:"memberDetails"`
	TotalMembers     int             `json:"totalMembers"`
	RespondedMembers int             `json:"respondedMembers"`
}

func (c *CabAllocation) DTO() *CabAllocationDTO {
	if c == nil {
		return nil
	}

	members := c.AssignedMembers
	if members == nil {
		members = make([]string, 0)
	}

	return &CabAllocationDTO{
		CabID:           c.CabID,
		CabNumber:       c.CabNumber,
		AssignedMembers: members,
		PickupLocation:  c.PickupLocation,
		PickupTime:      c.PickupTime,
	}
}

func (c *CabAllocation) HasMember(employeeID string) bool {
	if c == nil {
		return false
	}

	for _, m := range c.AssignedMembers {
		if m == employeeID {
			return true
		}
	}

	return false
}
