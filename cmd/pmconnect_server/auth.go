package main

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/auth"
	"github.com/lancelot03/pmconnect/internal/model"
)

const (
	UsernameKey = "username"
	RoleKey     = "role"
)

// getTokenAuth validates the bearer token and stores the employee id
// and role in request locals. Expired tokens get a distinct message so
// clients know to re-login rather than report a bug.
func getTokenAuth(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)

		if !strings.HasPrefix(header, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "missing bearer token"})
		}

		claims, err := app.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			detail := "invalid token"
			if err == auth.ErrExpiredToken {
				detail = "token has expired"
			}

			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
		}

		ctx.Locals(UsernameKey, claims.EmployeeID)
		ctx.Locals(RoleKey, claims.Role)

		return ctx.Next()
	}
}

func adminOnly(h fiber.Handler) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if Role(ctx) != model.RoleAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "admin access required"})
		}

		return h(ctx)
	}
}

func Username(c *fiber.Ctx) string {
	u := c.Locals(UsernameKey)

	if u == nil {
		return ""
	}

	return u.(string)
}

func Role(c *fiber.Ctx) string {
	r := c.Locals(RoleKey)

	if r == nil {
		return ""
	}

	return r.(string)
}
