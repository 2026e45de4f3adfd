package main

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/auth"
)

func getLoginHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req struct {
			EmployeeID string `json:"employeeId"`
			Password   string `json:"password"`
		}

		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}

		if req.EmployeeID == "" || req.Password == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "employeeId and password are required"})
		}

		user, token, err := app.auth.Login(req.EmployeeID, req.Password)

		switch {
		case errors.Is(err, auth.ErrUnknownEmployee):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "employee not found in invitee list"})
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUserDisabled):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "invalid credentials"})
		case err != nil:
			app.logger.Error("login error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{
			"token": token,
			"user":  user.DTO(),
		})
	}
}

func getChangePasswordHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}

		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}

		if len(req.NewPassword) < 4 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "new password is too short"})
		}

		err := app.auth.ChangePassword(Username(ctx), req.CurrentPassword, req.NewPassword)

		switch {
		case errors.Is(err, auth.ErrWrongPassword):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "current password is incorrect"})
		case errors.Is(err, auth.ErrUserNotFound):
			return ctx.SendStatus(fiber.StatusNotFound)
		case err != nil:
			app.logger.Error("change password error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{"message": "Password changed successfully"})
	}
}

func getSetOfficeTypeHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req struct {
			OfficeType string `json:"officeType"`
		}

		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}

		err := app.auth.SetOfficeType(Username(ctx), req.OfficeType)

		switch {
		case errors.Is(err, auth.ErrInvalidOfficeType):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		case errors.Is(err, auth.ErrUserNotFound):
			return ctx.SendStatus(fiber.StatusNotFound)
		case err != nil:
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{"message": "Office type updated", "officeType": req.OfficeType})
	}
}

func getMeHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.auth.GetUser(Username(ctx))
		if user == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		dto := user.DTO()
		dto.Permissions = app.auth.Permissions(user)

		return ctx.JSON(dto)
	}
}

// Tokens are stateless, so logout is a client-side contract: the server
// just acknowledges.
func getLogoutHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "Logged out"})
	}
}
