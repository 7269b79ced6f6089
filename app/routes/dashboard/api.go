package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/services"
)

// StatsAPI aggregates the financial position of the whole school: how much
// is expected, collected and still outstanding across all active students.
func StatsAPI(c *fiber.Ctx, store database.Store, situations *services.SituationService) error {
	students, err := store.ListActiveStudents()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	var (
		totalExpected    int64
		totalCollected   int64
		totalOutstanding int64
		overdueStudents  int
		coveredStudents  int
	)
	for _, student := range students {
		situation, err := situations.GetSituation(student.ID)
		if err == services.ErrStudentNotFound || err == services.ErrClassNotFound || err == services.ErrNoScheduleFound {
			continue
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to compute stats"})
		}

		coveredStudents++
		totalExpected += situation.TotalDue
		totalCollected += situation.TotalPaid
		totalOutstanding += situation.TotalRemaining
		if len(situation.Overdue) > 0 {
			overdueStudents++
		}
	}

	return c.JSON(fiber.Map{
		"active_students":   len(students),
		"covered_students":  coveredStudents,
		"total_expected":    totalExpected,
		"total_collected":   totalCollected,
		"total_outstanding": totalOutstanding,
		"overdue_students":  overdueStudents,
	})
}

func AlertsAPI(c *fiber.Ctx, situations *services.SituationService) error {
	alerts, err := situations.GetBatchAlerts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute alerts"})
	}
	return c.JSON(fiber.Map{"alerts": alerts})
}

func ConvocationsAPI(c *fiber.Ctx, situations *services.SituationService) error {
	convocations, err := situations.GenerateConvocations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate convocations"})
	}
	return c.JSON(fiber.Map{"convocations": convocations})
}
