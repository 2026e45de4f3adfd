package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lancelot03/pmconnect/internal/model"
)

const statsCacheKey = "stats"

// collectStats computes dashboard counters from source collections. The
// stored totals row is only used by integrity checks and
// /data/refresh-totals.
func (app *App) collectStats() *model.DashboardStatsDTO {
	total := int(app.dbm.InviteeQuery().Count())
	yes := int(app.dbm.InviteeQuery().Responded(true).Count())

	return &model.DashboardStatsDTO{
		TotalInvitees:         total,
		RsvpYes:               yes,
		RsvpNo:                total - yes,
		AccommodationRequests: int(app.dbm.ResponseQuery().Accommodation(true).Count()),
		FoodPreferences:       app.dbm.FoodPreferenceCounts(),
	}
}

func getDashboardStatsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.stats.Load(statsCacheKey))
	}
}

func getIntegrityCheckHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		report := app.checker.RunChecks()

		return ctx.JSON(fiber.Map{"report": report})
	}
}

func getFixIntegrityHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		report := app.checker.FixIssues()
		app.stats.Invalidate(statsCacheKey)

		return ctx.JSON(fiber.Map{"report": report})
	}
}

func getRefreshTotalsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		fixes := app.checker.FixIssues()
		app.stats.Invalidate(statsCacheKey)

		totals, err := app.checker.RefreshTotals()
		if err != nil {
			app.logger.Error("refresh totals error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(fiber.Map{
			"message":       "Dashboard totals refreshed",
			"updated_stats": totals.DTO(),
			"fixes_applied": fixes,
		})
	}
}
