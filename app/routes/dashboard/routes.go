package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/routes/auth"
	"github.com/6Elmas9/KlasNet/app/services"
)

func SetupDashboardRoutes(app *fiber.App, db *sql.DB, store database.Store, situations *services.SituationService) {
	api := app.Group("/api/dashboard", auth.AuthMiddleware(db))

	api.Get("/stats", func(c *fiber.Ctx) error {
		return StatsAPI(c, store, situations)
	})
	api.Get("/alerts", func(c *fiber.Ctx) error {
		return AlertsAPI(c, situations)
	})
	api.Get("/convocations", func(c *fiber.Ctx) error {
		return ConvocationsAPI(c, situations)
	})
}
