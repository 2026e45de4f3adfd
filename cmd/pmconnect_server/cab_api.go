package main

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/cabs"
	"github.com/lancelot03/pmconnect/internal/model"
	"github.com/lancelot03/pmconnect/internal/tabular"
)

// getCabUploadHandler runs an uploaded allocation file through the
// grouper and replaces the current batch. The enhanced variant reports
// the full validation result; the plain one keeps the legacy message
// shape.
func getCabUploadHandler(app *App, enhanced bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name, content, err := readFormFile(ctx, "file")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file is required"})
		}

		table, err := tabular.Read(name, content)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		result, err := app.grouper.GroupTable(table)
		if err != nil {
			// required column missing: structural failure
			if enhanced {
				return ctx.JSON(fiber.Map{
					"success":           false,
					"message":           err.Error(),
					"validation_result": fiber.Map{"errors": []fiber.Map{{"message": err.Error()}}},
				})
			}

			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		if !result.OK() {
			msg := "no valid rows in file"
			if result.TotalRows == 0 {
				msg = "file contains no data rows"
			}

			if enhanced {
				return ctx.JSON(fiber.Map{
					"success":           false,
					"message":           msg,
					"validation_result": result,
				})
			}

			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": msg,
				"errors": result.Errors,
			})
		}

		inserted, err := app.dbm.ReplaceCabAllocations(result.Allocations)
		if err != nil {
			app.logger.Error("cab upload error", slog.Any("error", err))

			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail":         "error storing cab allocations",
				"inserted_count": inserted,
			})
		}

		if enhanced {
			return ctx.JSON(fiber.Map{
				"success":           true,
				"message":           fmt.Sprintf("Successfully uploaded %d cab allocations", inserted),
				"inserted_count":    inserted,
				"warnings":          len(result.Warnings),
				"validation_result": result,
			})
		}

		return ctx.JSON(fiber.Map{
			"message":        fmt.Sprintf("Successfully uploaded %d cab allocations", inserted),
			"inserted_count": inserted,
		})
	}
}

func getCabsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		allocations := app.dbm.CabQuery().Limit(0).Get()

		result := make([]*model.CabAllocationDTO, len(allocations))
		for i, cab := range allocations {
			result[i] = cab.DTO()
		}

		return ctx.JSON(result)
	}
}

func getCabsEnhancedHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		allocations := app.dbm.CabQuery().Limit(0).Get()

		enhancer := cabs.NewEnhancer(
			app.dbm.InviteeQuery().Limit(0).Get(),
			app.dbm.ResponseQuery().Limit(0).Get(),
		)

		enhanced, warnings := enhancer.EnhanceAll(allocations, Username(ctx))

		totalMembers := 0
		respondedMembers := 0

		for _, e := range enhanced {
			totalMembers += e.TotalMembers
			respondedMembers += e.RespondedMembers
		}

		return ctx.JSON(fiber.Map{
			"allocations": enhanced,
			"warnings":    warnings,
			"summary": fiber.Map{
				"total_cabs":        len(enhanced),
				"total_members":     totalMembers,
				"responded_members": respondedMembers,
			},
		})
	}
}

func getEmployeeCabHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		cab := app.dbm.CabForEmployee(ctx.Params("employeeId"))
		if cab == nil {
			return ctx.JSON(fiber.Map{"message": "No cab allocation found"})
		}

		return ctx.JSON(cab.DTO())
	}
}

func getEmployeeCabEnhancedHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		employeeID := ctx.Params("employeeId")

		cab := app.dbm.CabForEmployee(employeeID)
		if cab == nil {
			return ctx.JSON(fiber.Map{"message": "No cab allocation found"})
		}

		enhancer := cabs.NewEnhancer(
			app.dbm.InviteeQuery().Limit(0).Get(),
			app.dbm.ResponseQuery().Limit(0).Get(),
		)

		enhanced, warnings := enhancer.Enhance(cab, employeeID)

		return ctx.JSON(fiber.Map{
			"allocation": enhanced,
			"warnings":   warnings,
		})
	}
}
