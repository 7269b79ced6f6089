package reconciliation

import (
	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/services"
)

// SuspiciousAPI lists duplicate-looking payment groups without touching
// them.
func SuspiciousAPI(c *fiber.Ctx, recon *services.ReconciliationService) error {
	groups, err := recon.FindSuspiciousGroups()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to scan payments"})
	}
	return c.JSON(fiber.Map{
		"groups": groups,
		"count":  len(groups),
	})
}

// NormalizeAPI merges every suspicious group. Running it again right after
// is a no-op.
func NormalizeAPI(c *fiber.Ctx, recon *services.ReconciliationService) error {
	result, err := recon.NormalizeAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to normalize payments"})
	}
	return c.JSON(fiber.Map{
		"message":       "Normalization complete",
		"groups_found":  result.GroupsFound,
		"groups_merged": result.GroupsMerged,
	})
}
