package main

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/model"
)

// profileUpdate is the set of fields a profile PUT may touch. Anything
// else in the body is ignored and not reported as updated.
type profileUpdate struct {
	OfficeType   string `mapstructure:"officeType"`
	Email        string `mapstructure:"email"`
	Phone        string `mapstructure:"phone"`
	Department   string `mapstructure:"department"`
	EmployeeName string `mapstructure:"employeeName"`
}

func getProfileHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		employeeID := ctx.Params("employeeId")

		if Role(ctx) != model.RoleAdmin && employeeID != Username(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "cannot view another employee's profile"})
		}

		invitee := app.dbm.InviteeQuery().ID(employeeID).One()
		if invitee == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}

		profile := fiber.Map{
			"employeeId":   invitee.EmployeeID,
			"employeeName": invitee.EmployeeName,
			"cadre":        invitee.Cadre,
			"projectName":  invitee.ProjectName,
			"email":        invitee.Email,
			"phone":        invitee.Phone,
			"department":   invitee.Department,
			"hasResponded": invitee.HasResponded,
			"rsvp_details": app.dbm.ResponseQuery().EmployeeID(employeeID).One().DTO(),
		}

		if user := app.auth.GetUser(employeeID); user != nil {
			profile["officeType"] = user.OfficeType
			profile["role"] = user.Role
			profile["lastLogin"] = user.LastLogin
		}

		return ctx.JSON(profile)
	}
}

func getProfileUpdateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		employeeID := ctx.Params("employeeId")

		if Role(ctx) != model.RoleAdmin && employeeID != Username(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "cannot update another employee's profile"})
		}

		invitee := app.dbm.InviteeQuery().ID(employeeID).One()
		if invitee == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}

		body := make(map[string]any)
		if err := json.Unmarshal(ctx.Body(), &body); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}

		var update profileUpdate

		fields, err := decodeMapToStruct(body, &update)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		inviteeFields := make(map[string]any)
		userFields := make(map[string]any)

		for _, f := range fields {
			switch f {
			case "email":
				inviteeFields["email"] = update.Email
			case "phone":
				inviteeFields["phone"] = update.Phone
			case "department":
				inviteeFields["department"] = update.Department
			case "employeeName":
				inviteeFields["employee_name"] = update.EmployeeName
				userFields["employee_name"] = update.EmployeeName
			case "officeType":
				userFields["office_type"] = update.OfficeType
			}
		}

		inviteeUpdated := false
		userUpdated := false

		if len(inviteeFields) > 0 {
			if err := app.dbm.InviteeQuery().ID(employeeID).Update(inviteeFields); err != nil {
				app.logger.Error("invitee update error", slog.Any("error", err))
			} else {
				inviteeUpdated = true
			}
		}

		if len(userFields) > 0 && app.auth.GetUser(employeeID) != nil {
			if err := app.dbm.UserQuery().ID(employeeID).Update(userFields); err != nil {
				app.logger.Error("user update error", slog.Any("error", err))
			} else {
				userUpdated = true
			}
		}

		updated := make([]string, 0, len(fields))

		for _, f := range fields {
			switch f {
			case "email", "phone", "department", "employeeName", "officeType":
				updated = append(updated, f)
			}
		}

		return ctx.JSON(fiber.Map{
			"message":         "Profile updated",
			"updated_fields":  updated,
			"user_updated":    userUpdated,
			"invitee_updated": inviteeUpdated,
		})
	}
}
