package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lancelot03/pmconnect/internal/export"
	"github.com/lancelot03/pmconnect/internal/model"
)

var foodPreferences = []string{model.FoodVeg, model.FoodNonVeg, model.FoodNotRequired}

func getResponsePostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req model.ResponsePostDTO

		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}

		if req.EmployeeID == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "employeeId is required"})
		}

		if req.FoodPreference != "" && !validFoodPreference(req.FoodPreference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid food preference"})
		}

		invitee := app.dbm.InviteeQuery().ID(req.EmployeeID).One()
		if invitee == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Invitee not found"})
		}

		if existing := app.dbm.ResponseQuery().EmployeeID(req.EmployeeID).One(); existing != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Response already submitted"})
		}

		response := &model.Response{
			ResponseID:                uuid.NewString(),
			EmployeeID:                req.EmployeeID,
			MobileNumber:              req.MobileNumber,
			RequiresAccommodation:     req.RequiresAccommodation,
			ArrivalDate:               req.ArrivalDate,
			DepartureDate:             req.DepartureDate,
			FoodPreference:            req.FoodPreference,
			DepartureTimePreference:   req.DepartureTimePreference,
			ArrivalTimePreference:     req.ArrivalTimePreference,
			SpecialFlightRequirements: req.SpecialFlightRequirements,
			SubmissionTimestamp:       time.Now(),
		}

		if err := app.dbm.Create(response); err != nil {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		if err := app.dbm.InviteeQuery().ID(req.EmployeeID).Update(map[string]any{"has_responded": true}); err != nil {
			app.logger.Error("error marking invitee as responded", slog.Any("error", err))
		}

		app.stats.Invalidate(statsCacheKey)

		return ctx.JSON(fiber.Map{
			"message":    "Response submitted successfully",
			"responseId": response.ResponseID,
		})
	}
}

func validFoodPreference(s string) bool {
	for _, p := range foodPreferences {
		if p == s {
			return true
		}
	}

	return false
}

func getResponsesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		responses := app.dbm.ResponseQuery().Limit(0).Get()

		result := make([]*model.ResponseDTO, len(responses))
		for i, r := range responses {
			result[i] = r.DTO()
		}

		return ctx.JSON(result)
	}
}

func getResponsesExportHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		e, err := app.exports.Responses()

		if errors.Is(err, export.ErrNoData) {
			return ctx.JSON(fiber.Map{"message": "No responses to export"})
		}

		if err != nil {
			app.logger.Error("export error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(e)
	}
}

func getFlightOptionsHandler() fiber.Handler {
	options := fiber.Map{
		"departure_time_options": []string{
			"Early Morning (6 AM - 9 AM)",
			"Morning (9 AM - 12 PM)",
			"Afternoon (12 PM - 4 PM)",
			"Evening (4 PM - 8 PM)",
			"Night (8 PM - 11 PM)",
			"No Preference",
		},
		"arrival_time_options": []string{
			"Early Morning (6 AM - 9 AM)",
			"Morning (9 AM - 12 PM)",
			"Afternoon (12 PM - 4 PM)",
			"Evening (4 PM - 8 PM)",
			"Night (8 PM - 11 PM)",
			"No Preference",
		},
	}

	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(options)
	}
}

// getFlightAnalysisHandler aggregates flight time preferences for
// logistics planning.
func getFlightAnalysisHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		responses := app.dbm.ResponseQuery().Limit(0).Get()

		departures := make(map[string]int)
		arrivals := make(map[string]int)

		travelers := 0
		specialCount := 0

		for _, r := range responses {
			if r.DepartureTimePreference == "" && r.ArrivalTimePreference == "" && r.SpecialFlightRequirements == "" {
				continue
			}

			travelers++

			if r.DepartureTimePreference != "" {
				departures[r.DepartureTimePreference]++
			}

			if r.ArrivalTimePreference != "" {
				arrivals[r.ArrivalTimePreference]++
			}

			if r.SpecialFlightRequirements != "" {
				specialCount++
			}
		}

		return ctx.JSON(fiber.Map{
			"analysis": fiber.Map{
				"total_responses":            len(responses),
				"total_flight_travelers":     travelers,
				"special_requirements_count": specialCount,
				"departure_preferences":      departures,
				"arrival_preferences":        arrivals,
			},
		})
	}
}
