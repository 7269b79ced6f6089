package schedules

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/routes/auth"
	"github.com/6Elmas9/KlasNet/app/services"
)

func SetupScheduleRoutes(app *fiber.App, db *sql.DB, store database.Store, scheduleSvc *services.ScheduleService) {
	api := app.Group("/api", auth.AuthMiddleware(db))

	api.Get("/fee-schedules", func(c *fiber.Ctx) error {
		return ListSchedulesAPI(c, store)
	})
	api.Get("/fee-schedules/level/:level", func(c *fiber.Ctx) error {
		return GetScheduleForLevelAPI(c, store)
	})
	api.Post("/fee-schedules/defaults", func(c *fiber.Ctx) error {
		return EnsureDefaultsAPI(c, scheduleSvc)
	})
}
