package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lancelot03/pmconnect/internal/database"
	"github.com/lancelot03/pmconnect/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownEmployee    = errors.New("no invitee record for employee")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidOfficeType  = errors.New("office type must be 'Head Office' or 'Site Office'")
)

var adminPermissions = []string{
	"manage_invitees",
	"manage_responses",
	"manage_agenda",
	"manage_gallery",
	"manage_cab_allocations",
	"export_data",
	"view_analytics",
}

var inviteePermissions = []string{
	"view_own_profile",
	"submit_rsvp",
	"view_agenda",
	"upload_gallery",
	"view_cab_details",
}

type Claims struct {
	jwt.RegisteredClaims
	EmployeeID string `json:"employeeId"`
	Role       string `json:"role"`
}

// Service owns the login flow, JWT issue/verify and account maintenance.
// It is constructor-injected, never a package-level singleton.
type Service struct {
	dbm    *database.DatabaseManager
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func New(dbm *database.DatabaseManager, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour * 24
	}

	return &Service{
		dbm:    dbm,
		secret: []byte(secret),
		ttl:    ttl,
		logger: slog.With("logger", "auth"),
	}
}

// Login authenticates an employee, auto-provisioning an account from the
// invitee collection on first contact. The default password is the
// employee id and must be changed on first login.
func (s *Service) Login(employeeID, password string) (*model.User, string, error) {
	user := s.dbm.UserQuery().ID(employeeID).One()

	if user == nil {
		var err error

		user, err = s.provisionFromInvitee(employeeID)
		if err != nil {
			return nil, "", err
		}
	}

	if user.Disabled {
		return nil, "", ErrUserDisabled
	}

	if !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now

	if err := s.dbm.UserQuery().ID(employeeID).Update(map[string]any{"last_login": now}); err != nil {
		s.logger.Warn("error updating last login", slog.Any("error", err))
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) provisionFromInvitee(employeeID string) (*model.User, error) {
	invitee := s.dbm.InviteeQuery().ID(employeeID).One()
	if invitee == nil {
		return nil, ErrUnknownEmployee
	}

	user := &model.User{
		EmployeeID:         employeeID,
		EmployeeName:       invitee.EmployeeName,
		Role:               model.RoleInvitee,
		IsFirstLogin:       true,
		MustChangePassword: true,
		Permissions:        inviteePermissions,
		CreatedAt:          time.Now(),
	}

	if err := user.SetPassword(employeeID); err != nil {
		return nil, err
	}

	if err := s.dbm.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("provisioned user from invitee", slog.String("employee", employeeID))

	return user, nil
}

func (s *Service) IssueToken(u *model.User) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.EmployeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a bearer token, distinguishing an
// expired token from a malformed or mis-signed one.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) GetUser(employeeID string) *model.User {
	return s.dbm.UserQuery().ID(employeeID).One()
}

func (s *Service) ChangePassword(employeeID, oldPassword, newPassword string) error {
	user := s.dbm.UserQuery().ID(employeeID).One()
	if user == nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	return s.dbm.UserQuery().ID(employeeID).Update(map[string]any{
		"password":             user.Password,
		"must_change_password": false,
		"is_first_login":       false,
	})
}

func (s *Service) SetOfficeType(employeeID, officeType string) error {
	if officeType != model.OfficeHead && officeType != model.OfficeSite {
		return ErrInvalidOfficeType
	}

	err := s.dbm.UserQuery().ID(employeeID).Update(map[string]any{"office_type": officeType})
	if err != nil {
		return ErrUserNotFound
	}

	return nil
}

// Permissions returns the effective permission set for a user. Explicit
// grants win; otherwise the role default applies.
func (s *Service) Permissions(u *model.User) []string {
	if u == nil {
		return nil
	}

	if len(u.Permissions) > 0 {
		return u.Permissions
	}

	if u.IsAdmin() {
		return adminPermissions
	}

	return inviteePermissions
}
