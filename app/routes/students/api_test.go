package students

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/6Elmas9/KlasNet/app/database/inmem"
	"github.com/6Elmas9/KlasNet/app/models"
	"github.com/6Elmas9/KlasNet/app/services"
)

// newTestApp mounts the handlers without the auth middleware so the
// endpoints can be exercised directly.
func newTestApp(store *inmem.Store, situations *services.SituationService) *fiber.App {
	app := fiber.New()
	app.Get("/api/students/:id/situation", func(c *fiber.Ctx) error {
		return GetSituationAPI(c, situations)
	})
	app.Post("/api/students", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, store)
	})
	return app
}

func TestGetSituationEndpoint(t *testing.T) {
	store := inmem.New()
	situations := services.NewSituationService(store)
	situations.SetNow(func() time.Time {
		return time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)
	})

	class := &models.Class{Name: "CE1 A", Level: "CE1", SchoolYear: "2025-2026"}
	require.NoError(t, store.CreateClass(class))
	student := &models.Student{Matricule: "MAT001", FirstName: "Awa", LastName: "Kone", ClassID: &class.ID}
	require.NoError(t, store.CreateStudent(student))
	require.NoError(t, store.CreateSchedule(&models.FeeSchedule{
		Level:       "CE1",
		SchoolYear:  "2025-2026",
		TotalAmount: 35000,
		Installments: []*models.Installment{
			{Ordinal: 1, Label: "Inscription", DueDate: models.NewDate(2025, time.September, 1), Amount: 35000},
		},
	}))

	app := newTestApp(store, situations)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/students/"+student.ID+"/situation", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Situation services.FinancialSituation `json:"situation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, student.ID, body.Situation.StudentID)
	assert.Equal(t, int64(35000), body.Situation.TotalRemaining)
	require.Len(t, body.Situation.Overdue, 1)
}

func TestGetSituationEndpointNotFound(t *testing.T) {
	store := inmem.New()
	situations := services.NewSituationService(store)
	app := newTestApp(store, situations)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/students/missing-id/situation", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCreateStudentEndpointValidation(t *testing.T) {
	store := inmem.New()
	situations := services.NewSituationService(store)
	app := newTestApp(store, situations)

	req := httptest.NewRequest("POST", "/api/students", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
