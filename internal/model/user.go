package model

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

const (
	RoleAdmin   = "admin"
	RoleInvitee = "invitee"

	OfficeHead = "Head Office"
	OfficeSite = "Site Office"
)

type User struct {
	EmployeeID         string     `gorm:"primaryKey" yaml:"employee_id"`
	EmployeeName       string     `gorm:"not null;default:''" yaml:"name,omitempty"`
	Password           string     `gorm:"not null" yaml:"password"`
	Role               string     `gorm:"not null;default:'invitee'" yaml:"role,omitempty"`
	IsFirstLogin       bool       `gorm:"not null;default:true" yaml:"-"`
	MustChangePassword bool       `gorm:"not null;default:true" yaml:"-"`
	OfficeType         string     `gorm:"not null;default:''" yaml:"office_type,omitempty"`
	Permissions        []string   `gorm:"serializer:json" yaml:"permissions,omitempty"`
	Disabled           bool       `gorm:"not null;default:false" yaml:"disabled,omitempty"`
	LastLogin          *time.Time `yaml:"-"`
	CreatedAt          time.Time  `yaml:"-"`
}

type UserDTO struct {
	EmployeeID         string     `json:"employeeId"`
	EmployeeName       string     `json:"employeeName,omitempty"`
	Role               string     `json:"role"`
	IsFirstLogin       bool       `json:"isFirstLogin"`
	MustChangePassword bool       `json:"mustChangePassword"`
	OfficeType         string     `json:"officeType,omitempty"`
	Permissions        []string   `json:"permissions"`
	LastLogin          *time.Time `json:"lastLogin,omitempty"`
}

func (u *User) GetRole() string {
	if u == nil {
		return ""
	}

	return u.Role
}

func (u *User) IsAdmin() bool {
	return u.GetRole() == RoleAdmin
}

func (u *User) CheckPassword(password string) bool {
	if u == nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		slog.Debug("password check failed", slog.Any("error", err))
		return false
	}

	return true
}

func (u *User) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.Password = string(b)

	return nil
}

func (u *User) DTO() *UserDTO {
	if u == nil {
		return nil
	}

	perms := u.Permissions
	if perms == nil {
		perms = make([]string, 0)
	}

	return &UserDTO{
		EmployeeID:         u.EmployeeID,
		EmployeeName:       u.EmployeeName,
		Role:               u.Role,
		IsFirstLogin:       u.IsFirstLogin,
		MustChangePassword: u.MustChangePassword,
		OfficeType:         u.OfficeType,
		Permissions:        perms,
		LastLogin:          u.LastLogin,
	}
}
