package schedules

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/services"
)

var validate = validator.New()

func ListSchedulesAPI(c *fiber.Ctx, store database.Store) error {
	year := c.Query("year")
	if year == "" {
		return c.Status(400).JSON(fiber.Map{"error": "year query parameter is required"})
	}

	list, err := store.ListSchedules(year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee schedules"})
	}
	return c.JSON(fiber.Map{"schedules": list})
}

func GetScheduleForLevelAPI(c *fiber.Ctx, store database.Store) error {
	year := c.Query("year")
	if year == "" {
		return c.Status(400).JSON(fiber.Map{"error": "year query parameter is required"})
	}

	schedule, err := store.GetScheduleForLevel(c.Params("level"), year)
	if err == database.ErrNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "No fee schedule for this level"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee schedule"})
	}
	return c.JSON(fiber.Map{"schedule": schedule})
}

// EnsureDefaultsAPI seeds the standard per-level schedules for a school
// year. Levels that already have a schedule are left untouched.
func EnsureDefaultsAPI(c *fiber.Ctx, scheduleSvc *services.ScheduleService) error {
	type EnsureDefaultsRequest struct {
		SchoolYear string `json:"school_year" validate:"required"`
	}

	var req EnsureDefaultsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := scheduleSvc.EnsureDefaultSchedules(req.SchoolYear)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create default schedules"})
	}
	return c.JSON(fiber.Map{
		"message": "Default schedules ensured",
		"created": created,
	})
}
