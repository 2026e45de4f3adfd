package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/model"
	"github.com/lancelot03/pmconnect/internal/tabular"
)

var inviteeColumns = []string{"Employee ID", "Employee Name", "Cadre", "Project Name"}

// getInviteeUploadHandler parses an invitee CSV/XLSX. The plain
// endpoint keeps the legacy contract (reject on any structural
// problem); the enhanced one reports per-row findings and succeeds
// partially.
func getInviteeUploadHandler(app *App, enhanced bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name, content, err := readFormFile(ctx, "file")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file is required"})
		}

		table, err := tabular.Read(name, content)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		if missing := table.MissingColumns(inviteeColumns...); len(missing) > 0 {
			detail := fmt.Sprintf("file must contain columns: %s", strings.Join(missing, ", "))

			if enhanced {
				return ctx.JSON(fiber.Map{
					"success": false,
					"message": detail,
					"validation_result": fiber.Map{
						"errors": []fiber.Map{{"field": strings.Join(missing, ", "), "message": "column is missing"}},
					},
				})
			}

			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": detail})
		}

		invitees, rowErrors := parseInvitees(table)

		// a batch with nothing to insert must never reach the replace
		// operation, it would wipe the stored collection
		if len(invitees) == 0 {
			msg := "no valid rows in file"
			if len(table.Rows) == 0 {
				msg = "file contains no data rows"
			}

			if enhanced {
				return ctx.JSON(fiber.Map{
					"success":           false,
					"message":           msg,
					"validation_result": fiber.Map{"errors": rowErrors},
				})
			}

			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": msg})
		}

		var inserted int

		if app.config.uploadMerge {
			inserted, err = app.dbm.MergeInvitees(invitees)
		} else {
			inserted, err = app.dbm.ReplaceInvitees(invitees)
		}

		if err != nil {
			app.logger.Error("invitee upload error", slog.Any("error", err))

			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail":         "error storing invitees",
				"inserted_count": inserted,
			})
		}

		app.stats.Invalidate(statsCacheKey)

		if enhanced {
			return ctx.JSON(fiber.Map{
				"success":           true,
				"message":           fmt.Sprintf("Successfully uploaded %d invitees", inserted),
				"inserted_count":    inserted,
				"warnings":          len(rowErrors),
				"validation_result": fiber.Map{"errors": rowErrors},
			})
		}

		return ctx.JSON(fiber.Map{
			"message":        fmt.Sprintf("Successfully uploaded %d invitees", inserted),
			"inserted_count": inserted,
		})
	}
}

func parseInvitees(table *tabular.Table) ([]*model.Invitee, []fiber.Map) {
	idIdx := table.Column("Employee ID")
	nameIdx := table.Column("Employee Name")
	cadreIdx := table.Column("Cadre")
	projectIdx := table.Column("Project Name")
	emailIdx := table.Column("Email")
	deptIdx := table.Column("Department")
	phoneIdx := table.Column("Phone")

	invitees := make([]*model.Invitee, 0, len(table.Rows))
	rowErrors := make([]fiber.Map, 0)
	seen := make(map[string]bool)

	for i, rec := range table.Rows {
		line := i + 1

		id := tabular.Cell(rec, idIdx)
		if id == "" {
			rowErrors = append(rowErrors, fiber.Map{"row": line, "field": "Employee ID", "message": "Employee ID cannot be empty"})

			continue
		}

		if seen[id] {
			rowErrors = append(rowErrors, fiber.Map{"row": line, "field": "Employee ID", "message": "duplicate Employee ID, keeping first"})

			continue
		}

		seen[id] = true

		invitees = append(invitees, &model.Invitee{
			EmployeeID:   id,
			EmployeeName: tabular.Cell(rec, nameIdx),
			Cadre:        tabular.Cell(rec, cadreIdx),
			ProjectName:  tabular.Cell(rec, projectIdx),
			Email:        tabular.Cell(rec, emailIdx),
			Department:   tabular.Cell(rec, deptIdx),
			Phone:        tabular.Cell(rec, phoneIdx),
		})
	}

	return invitees, rowErrors
}

func getInviteesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		invitees := app.dbm.InviteeQuery().Limit(0).Get()

		result := make([]*model.InviteeDTO, len(invitees))
		for i, inv := range invitees {
			result[i] = inv.DTO()
		}

		return ctx.JSON(result)
	}
}

func getUnrespondedHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		invitees := app.dbm.InviteeQuery().Responded(false).Limit(0).Get()

		result := make([]fiber.Map, len(invitees))
		for i, inv := range invitees {
			result[i] = fiber.Map{
				"employeeId":   inv.EmployeeID,
				"employeeName": inv.EmployeeName,
				"cadre":        inv.Cadre,
				"projectName":  inv.ProjectName,
			}
		}

		return ctx.JSON(result)
	}
}
