package students

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
	"github.com/6Elmas9/KlasNet/app/services"
)

var validate = validator.New()

func ListStudentsAPI(c *fiber.Ctx, store database.Store) error {
	var (
		students []*models.Student
		err      error
	)
	if c.Query("status") == "active" {
		students, err = store.ListActiveStudents()
	} else {
		students, err = store.ListStudents()
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(fiber.Map{"students": students})
}

func GetStudentAPI(c *fiber.Ctx, store database.Store) error {
	student, err := store.GetStudent(c.Params("id"))
	if err == database.ErrNotFound {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(fiber.Map{"student": student})
}

func CreateStudentAPI(c *fiber.Ctx, store database.Store) error {
	type CreateStudentRequest struct {
		Matricule string `json:"matricule" validate:"required"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Gender    string `json:"gender" validate:"omitempty,oneof=male female"`
		ClassID   string `json:"class_id"`
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	student := &models.Student{
		Matricule: req.Matricule,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    models.Gender(req.Gender),
		Status:    models.StudentActive,
	}
	if req.ClassID != "" {
		if _, err := store.GetClass(req.ClassID); err == database.ErrNotFound {
			return c.Status(400).JSON(fiber.Map{"error": "Class not found"})
		} else if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to verify class"})
		}
		student.ClassID = &req.ClassID
	}

	if err := store.CreateStudent(student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}
	return c.Status(201).JSON(fiber.Map{"student": student})
}

// GetSituationAPI returns the student's computed financial situation.
func GetSituationAPI(c *fiber.Ctx, situations *services.SituationService) error {
	situation, err := situations.GetSituation(c.Params("id"))
	switch err {
	case nil:
	case services.ErrStudentNotFound:
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	case services.ErrClassNotFound:
		return c.Status(400).JSON(fiber.Map{"error": "Student has no class assigned"})
	case services.ErrNoScheduleFound:
		return c.Status(404).JSON(fiber.Map{"error": "No fee schedule for the student's level"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute situation"})
	}
	return c.JSON(fiber.Map{"situation": situation})
}

func ListClassesAPI(c *fiber.Ctx, store database.Store) error {
	classes, err := store.ListClasses()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(fiber.Map{"classes": classes})
}

func CreateClassAPI(c *fiber.Ctx, store database.Store) error {
	type CreateClassRequest struct {
		Name       string `json:"name" validate:"required"`
		Level      string `json:"level" validate:"required"`
		SchoolYear string `json:"school_year" validate:"required"`
	}

	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	class := &models.Class{
		Name:       req.Name,
		Level:      req.Level,
		SchoolYear: req.SchoolYear,
		IsActive:   true,
	}
	if err := store.CreateClass(class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(201).JSON(fiber.Map{"class": class})
}
