package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lancelot03/pmconnect/pkg/log"
)

type HttpServer struct {
	f    *fiber.App
	addr string
}

func NewHttpServer(app *App, addr string) *HttpServer {
	srv := &HttpServer{addr: addr}

	srv.f = fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		BodyLimit:             64 * 1024 * 1024,
	})

	srv.f.Use(log.NewFiberLogger(&log.LoggerConfig{
		Name:       "api",
		UserGetter: Username,
		DoMetrics:  true,
	}))

	api := srv.f.Group("/api")

	api.Post("/auth/login", getLoginHandler(app))
	api.Get("/auth/status", getAuthStatusHandler())

	api.Use(getTokenAuth(app))

	api.Post("/auth/change-password", getChangePasswordHandler(app))
	api.Post("/auth/set-office-type", getSetOfficeTypeHandler(app))
	api.Get("/auth/me", getMeHandler(app))
	api.Post("/auth/logout", getLogoutHandler())

	api.Post("/invitees/bulk-upload", adminOnly(getInviteeUploadHandler(app, false)))
	api.Post("/invitees/bulk-upload-enhanced", adminOnly(getInviteeUploadHandler(app, true)))
	api.Get("/invitees", getInviteesHandler(app))
	api.Get("/invitees/unresponded", getUnrespondedHandler(app))

	api.Post("/responses", getResponsePostHandler(app))
	api.Get("/responses", getResponsesHandler(app))
	api.Get("/responses/export", adminOnly(getResponsesExportHandler(app)))
	api.Get("/responses/flight-analysis", adminOnly(getFlightAnalysisHandler(app)))
	api.Get("/flight/preferences/options", getFlightOptionsHandler())

	api.Post("/exports/responses/advanced", adminOnly(getAdvancedExportHandler(app)))
	api.Post("/exports/invitees/status", adminOnly(getInviteesExportHandler(app)))
	api.Post("/exports/cab-allocations", adminOnly(getCabsExportHandler(app)))
	api.Get("/exports/progress/:exportId", adminOnly(getExportProgressHandler(app)))

	api.Get("/dashboard/stats", getDashboardStatsHandler(app))
	api.Get("/data/integrity-check", adminOnly(getIntegrityCheckHandler(app)))
	api.Post("/data/fix-integrity", adminOnly(getFixIntegrityHandler(app)))
	api.Post("/data/refresh-totals", adminOnly(getRefreshTotalsHandler(app)))

	api.Post("/agenda", adminOnly(getAgendaPostHandler(app)))
	api.Get("/agenda", getAgendaHandler(app))

	api.Post("/gallery/upload", getGalleryUploadHandler(app))
	api.Get("/gallery/:eventVersion", getGalleryHandler(app))
	api.Delete("/gallery/:photoId", getGalleryDeleteHandler(app))

	api.Post("/cab-allocations/upload", adminOnly(getCabUploadHandler(app, false)))
	api.Post("/cab-allocations/upload-enhanced", adminOnly(getCabUploadHandler(app, true)))
	api.Get("/cab-allocations", getCabsHandler(app))
	api.Get("/cab-allocations/enhanced", getCabsEnhancedHandler(app))
	api.Get("/cab-allocations/employee/:employeeId/enhanced", getEmployeeCabEnhancedHandler(app))
	api.Get("/cab-allocations/:employeeId", getEmployeeCabHandler(app))

	api.Get("/profile/:employeeId", getProfileHandler(app))
	api.Put("/profile/:employeeId", getProfileUpdateHandler(app))

	srv.f.Get("/metrics", getMetricsHandler())

	return srv
}

func (srv *HttpServer) Address() string {
	return srv.addr
}

func (srv *HttpServer) Listen() error {
	return srv.f.Listen(srv.addr)
}

func (srv *HttpServer) Shutdown() error {
	return srv.f.Shutdown()
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}

func getAuthStatusHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"authenticated": false, "message": "use /api/auth/login"})
	}
}
