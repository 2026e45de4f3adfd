package main

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/export"
)

func exportHandler(app *App, build func() (*export.Export, error), emptyMsg string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		e, err := build()

		if errors.Is(err, export.ErrNoData) {
			return ctx.JSON(fiber.Map{"message": emptyMsg})
		}

		if err != nil {
			app.logger.Error("export error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(e)
	}
}

func getAdvancedExportHandler(app *App) fiber.Handler {
	return exportHandler(app, app.exports.ResponsesAdvanced, "No responses to export")
}

func getInviteesExportHandler(app *App) fiber.Handler {
	return exportHandler(app, app.exports.InviteesWithStatus, "No invitees to export")
}

func getCabsExportHandler(app *App) fiber.Handler {
	return exportHandler(app, app.exports.CabAllocations, "No cab allocations to export")
}

func getExportProgressHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		status := app.exports.Progress(ctx.Params("exportId"))
		if status == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Export not found"})
		}

		return ctx.JSON(status)
	}
}
