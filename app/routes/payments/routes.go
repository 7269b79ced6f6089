package payments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/routes/auth"
	"github.com/6Elmas9/KlasNet/app/services"
)

func SetupPaymentRoutes(app *fiber.App, db *sql.DB, store database.Store, alloc *services.AllocationService) {
	api := app.Group("/api", auth.AuthMiddleware(db))

	api.Post("/payments", func(c *fiber.Ctx) error {
		return RecordPaymentAPI(c, alloc)
	})
	api.Get("/payments", func(c *fiber.Ctx) error {
		return ListPaymentsAPI(c, store)
	})
}
