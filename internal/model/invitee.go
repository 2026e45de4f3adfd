package model

type Invitee struct {
	EmployeeID   string `gorm:"primaryKey"`
	EmployeeName string `gorm:"not null;default:''"`
	Cadre        string `gorm:"not null;default:''"`
	ProjectName  string `gorm:"not null;default:''"`
	Email        string `gorm:"not null;default:''"`
	Department   string `gorm:"not null;default:''"`
	Phone        string `gorm:"not null;default:''"`
	HasResponded bool   `gorm:"not null;default:false"`
}

type InviteeDTO struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Cadre        string `json:"cadre"`
	ProjectName  string `json:"projectName"`
	Email        string `json:"email,omitempty"`
	Department   string `json:"department,omitempty"`
	Phone        string `json:"phone,omitempty"`
	HasResponded bool   `json:"hasResponded"`
}

func (i *Invitee) DTO() *InviteeDTO {
	if i == nil {
		return nil
	}

	return &InviteeDTO{
		EmployeeID:   i.EmployeeID,
		EmployeeName: i.EmployeeName,
		Cadre:        i.Cadre,
		ProjectName:  i.ProjectName,
		Email:        i.Email,
		Department:   i.Department,
		Phone:        i.Phone,
		HasResponded: i.HasResponded,
	}
}
