package main

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lancelot03/pmconnect/internal/model"
)

func getGalleryUploadHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		employeeID := ctx.FormValue("employeeId")
		eventVersion := ctx.FormValue("eventVersion")

		if employeeID == "" || eventVersion == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "employeeId and eventVersion are required"})
		}

		// invitees may only post to their own gallery
		if Role(ctx) != model.RoleAdmin && employeeID != Username(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "cannot upload for another employee"})
		}

		_, content, err := readFormFile(ctx, "file")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file is required"})
		}

		if !strings.HasPrefix(http.DetectContentType(content), "image/") {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "File must be an image"})
		}

		if eventVersion == model.CurrentEventVersion {
			count := app.dbm.GalleryQuery().EmployeeID(employeeID).EventVersion(eventVersion).Count()
			if count >= model.MaxPhotosPerEmployee {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"detail": fmt.Sprintf("Maximum %d photos allowed for %s", model.MaxPhotosPerEmployee, model.CurrentEventVersion),
				})
			}
		}

		photo := &model.GalleryPhoto{
			PhotoID:         uuid.NewString(),
			EmployeeID:      employeeID,
			ImageBase64:     base64.StdEncoding.EncodeToString(content),
			EventVersion:    eventVersion,
			UploadTimestamp: time.Now(),
		}

		if err := app.dbm.Create(photo); err != nil {
			app.logger.Error("photo save error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{
			"message": "Photo uploaded successfully",
			"photoId": photo.PhotoID,
		})
	}
}

func getGalleryHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		eventVersion, err := url.QueryUnescape(ctx.Params("eventVersion"))
		if err != nil {
			eventVersion = ctx.Params("eventVersion")
		}

		photos := app.dbm.GalleryQuery().EventVersion(eventVersion).Limit(0).Get()

		result := make([]*model.GalleryPhotoDTO, len(photos))
		for i, p := range photos {
			result[i] = p.DTO()
		}

		return ctx.JSON(result)
	}
}

func getGalleryDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		photoID := ctx.Params("photoId")

		photo := app.dbm.GalleryQuery().ID(photoID).One()
		if photo == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Photo not found"})
		}

		if Role(ctx) != model.RoleAdmin && photo.EmployeeID != Username(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "cannot delete another employee's photo"})
		}

		if err := app.dbm.GalleryQuery().ID(photoID).Delete(); err != nil {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{"message": "Photo deleted successfully"})
	}
}
