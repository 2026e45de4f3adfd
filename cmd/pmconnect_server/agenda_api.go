package main

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lancelot03/pmconnect/internal/model"
)

func getAgendaPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		title := ctx.FormValue("title")
		if title == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "title is required"})
		}

		name, content, err := readFormFile(ctx, "file")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file is required"})
		}

		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "File must be PDF format"})
		}

		agenda := &model.Agenda{
			AgendaID:        uuid.NewString(),
			AgendaTitle:     title,
			PdfBase64:       base64.StdEncoding.EncodeToString(content),
			UploadTimestamp: time.Now(),
		}

		if err := app.dbm.SetAgenda(agenda); err != nil {
			app.logger.Error("agenda save error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{
			"message":  "Agenda uploaded successfully",
			"agendaId": agenda.AgendaID,
		})
	}
}

func getAgendaHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		agenda := app.dbm.AgendaQuery().One()
		if agenda == nil {
			return ctx.JSON(fiber.Map{"message": "No agenda available"})
		}

		return ctx.JSON(agenda.DTO())
	}
}
