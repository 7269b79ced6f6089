package payments

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
	"github.com/6Elmas9/KlasNet/app/services"
)

var validate = validator.New()

// RecordPaymentAPI records a payment and spreads it across the student's
// unpaid installments, oldest overdue first. Any surplus beyond the full
// schedule is stored on the payment as an advance.
func RecordPaymentAPI(c *fiber.Ctx, alloc *services.AllocationService) error {
	type RecordPaymentRequest struct {
		StudentID   string `json:"student_id" validate:"required"`
		Amount      int64  `json:"amount" validate:"required,gt=0"`
		PaymentDate string `json:"payment_date"`
		Method      string `json:"method"`
		Reference   string `json:"reference"`
		Notes       string `json:"notes"`
	}

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	paymentDate := models.DateOf(time.Now())
	if req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "payment_date must be YYYY-MM-DD"})
		}
		paymentDate = models.DateOf(parsed)
	}

	meta := services.PaymentMeta{
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if user, ok := c.Locals("user").(*models.User); ok {
		meta.RecordedBy = user.FullName()
	}

	result, err := alloc.Allocate(req.StudentID, req.Amount, paymentDate, meta)
	switch err {
	case nil:
	case services.ErrInvalidAmount:
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
	case services.ErrStudentNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	case services.ErrClassNotFound:
		return c.Status(400).JSON(fiber.Map{"error": "Student has no class assigned"})
	case services.ErrNoScheduleFound:
		return c.Status(404).JSON(fiber.Map{"error": "No fee schedule for the student's level"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"payment":     result.Payment,
		"allocations": result.Allocations,
		"advance":     result.Advance,
		"situation":   result.Situation,
	})
}

func ListPaymentsAPI(c *fiber.Ctx, store database.Store) error {
	var (
		payments []*models.Payment
		err      error
	)
	if studentID := c.Query("student_id"); studentID != "" {
		payments, err = store.ListStudentPayments(studentID)
	} else {
		payments, err = store.ListPayments()
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}
	return c.JSON(fiber.Map{"payments": payments})
}
