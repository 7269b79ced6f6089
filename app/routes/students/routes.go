package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/routes/auth"
	"github.com/6Elmas9/KlasNet/app/services"
)

func SetupStudentRoutes(app *fiber.App, db *sql.DB, store database.Store, situations *services.SituationService) {
	api := app.Group("/api", auth.AuthMiddleware(db))

	api.Get("/students", func(c *fiber.Ctx) error {
		return ListStudentsAPI(c, store)
	})
	api.Post("/students", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, store)
	})
	api.Get("/students/:id", func(c *fiber.Ctx) error {
		return GetStudentAPI(c, store)
	})
	api.Get("/students/:id/situation", func(c *fiber.Ctx) error {
		return GetSituationAPI(c, situations)
	})

	api.Get("/classes", func(c *fiber.Ctx) error {
		return ListClassesAPI(c, store)
	})
	api.Post("/classes", func(c *fiber.Ctx) error {
		return CreateClassAPI(c, store)
	})
}
