package reconciliation

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/routes/auth"
	"github.com/6Elmas9/KlasNet/app/services"
)

func SetupReconciliationRoutes(app *fiber.App, db *sql.DB, recon *services.ReconciliationService) {
	api := app.Group("/api/reconciliation", auth.AuthMiddleware(db))

	api.Get("/suspicious", func(c *fiber.Ctx) error {
		return SuspiciousAPI(c, recon)
	})
	api.Post("/normalize", func(c *fiber.Ctx) error {
		return NormalizeAPI(c, recon)
	})
}
