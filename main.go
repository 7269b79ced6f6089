package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/6Elmas9/KlasNet/app/config"
	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/routes/auth"
	"github.com/6Elmas9/KlasNet/app/routes/dashboard"
	"github.com/6Elmas9/KlasNet/app/routes/payments"
	"github.com/6Elmas9/KlasNet/app/routes/reconciliation"
	"github.com/6Elmas9/KlasNet/app/routes/schedules"
	"github.com/6Elmas9/KlasNet/app/routes/students"
	"github.com/6Elmas9/KlasNet/app/services"
)

func apiErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := config.GetDB()
	store := database.NewSQL(db)

	scheduleSvc := services.NewScheduleService(store)
	situations := services.NewSituationService(store)
	alloc := services.NewAllocationService(store, situations)
	recon := services.NewReconciliationService(store)

	// Seed the standard fee schedules when a school year is configured.
	if year := os.Getenv("SCHOOL_YEAR"); year != "" {
		created, err := scheduleSvc.EnsureDefaultSchedules(year)
		if err != nil {
			log.Fatal("Failed to ensure default fee schedules:", err)
		}
		if created > 0 {
			log.Printf("Created %d default fee schedules for %s", created, year)
		}
	}

	// Start background scheduler
	services.StartScheduler(situations)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup auth routes
	auth.SetupAuthRoutes(app, db)

	// Setup students routes
	students.SetupStudentRoutes(app, db, store, situations)

	// Setup fee schedule routes
	schedules.SetupScheduleRoutes(app, db, store, scheduleSvc)

	// Setup payment routes
	payments.SetupPaymentRoutes(app, db, store, alloc)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app, db, store, situations)

	// Setup reconciliation routes
	reconciliation.SetupReconciliationRoutes(app, db, recon)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
