package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/6Elmas9/KlasNet/app/database/inmem"
	"github.com/6Elmas9/KlasNet/app/models"
)

// fixedNow pins the clock to 2025-09-15, the reference day of the status
// examples.
func fixedNow() time.Time {
	return time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)
}

func seedStudent(t *testing.T, store *inmem.Store, level, schoolYear string) *models.Student {
	t.Helper()

	class := &models.Class{Name: level + " A " + schoolYear, Level: level, SchoolYear: schoolYear}
	require.NoError(t, store.CreateClass(class))

	student := &models.Student{
		Matricule: "MAT-" + class.ID[:8],
		FirstName: "Awa",
		LastName:  "Kone",
		ClassID:   &class.ID,
		Status:    models.StudentActive,
	}
	require.NoError(t, store.CreateStudent(student))
	return student
}

// seedTwoInstallmentSchedule creates the reduced schedule used by the
// worked status example: enrollment 35000 due 2025-09-01 and Versement 1
// 15000 due 2025-10-05.
func seedTwoInstallmentSchedule(t *testing.T, store *inmem.Store, level string) *models.FeeSchedule {
	t.Helper()

	schedule := &models.FeeSchedule{
		Level:       level,
		SchoolYear:  "2025-2026",
		TotalAmount: 50000,
		Installments: []*models.Installment{
			{Ordinal: 1, Label: "Inscription", DueDate: models.NewDate(2025, time.September, 1), Amount: 35000},
			{Ordinal: 2, Label: "Versement 1", DueDate: models.NewDate(2025, time.October, 5), Amount: 15000},
		},
	}
	require.NoError(t, store.CreateSchedule(schedule))
	return schedule
}

func TestGetSituationWorkedExample(t *testing.T) {
	store := inmem.New()
	svc := NewSituationService(store)
	svc.SetNow(fixedNow)

	student := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	require.NoError(t, store.CreatePayment(&models.Payment{
		StudentID:   student.ID,
		Amount:      20000,
		PaymentDate: models.NewDate(2025, time.September, 10),
		FeeKind:     models.FeeKindEnrollment,
	}))

	situation, err := svc.GetSituation(student.ID)
	require.NoError(t, err)
	require.Len(t, situation.Installments, 2)

	enrollment := situation.Installments[0]
	assert.Equal(t, int64(20000), enrollment.AmountPaid)
	assert.Equal(t, int64(15000), enrollment.AmountRemaining)
	assert.True(t, enrollment.IsOverdue)
	assert.Equal(t, 14, enrollment.DaysOverdue)

	versement1 := situation.Installments[1]
	assert.Equal(t, int64(0), versement1.AmountPaid)
	assert.Equal(t, int64(15000), versement1.AmountRemaining)
	assert.False(t, versement1.IsOverdue)
	assert.Equal(t, 0, versement1.DaysOverdue)

	assert.Equal(t, int64(50000), situation.TotalDue)
	assert.Equal(t, int64(20000), situation.TotalPaid)
	assert.Equal(t, int64(30000), situation.TotalRemaining)

	require.Len(t, situation.Overdue, 1)
	assert.Equal(t, 1, situation.Overdue[0].Ordinal)
	require.NotNil(t, situation.NextDue)
	assert.Equal(t, 2, situation.NextDue.Ordinal)
}

func TestGetSituationLegacyInference(t *testing.T) {
	store := inmem.New()
	svc := NewSituationService(store)
	svc.SetNow(fixedNow)

	student := seedStudent(t, store, "CP1", "2025-2026")
	schedules := NewScheduleService(store)
	_, err := schedules.EnsureDefaultSchedules("2025-2026")
	require.NoError(t, err)

	one := 1
	three := 3

	// Legacy tuition record numbered 1 maps to ordinal 2.
	require.NoError(t, store.CreatePayment(&models.Payment{
		StudentID:     student.ID,
		Amount:        15000,
		PaymentDate:   models.NewDate(2025, time.October, 1),
		FeeKind:       models.FeeKindTuition,
		InstallmentNo: &one,
	}))
	// Raw ordinal marker is used as-is.
	require.NoError(t, store.CreatePayment(&models.Payment{
		StudentID:       student.ID,
		Amount:          5000,
		PaymentDate:     models.NewDate(2025, time.November, 1),
		FeeKind:         models.FeeKindTuition,
		ScheduleOrdinal: &three,
	}))

	situation, err := svc.GetSituation(student.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), situation.Installments[0].AmountPaid)
	assert.Equal(t, int64(15000), situation.Installments[1].AmountPaid)
	assert.Equal(t, int64(5000), situation.Installments[2].AmountPaid)
}

func TestGetSituationAllocationsWinOverLegacy(t *testing.T) {
	store := inmem.New()
	svc := NewSituationService(store)
	svc.SetNow(fixedNow)

	student := seedStudent(t, store, "CE2", "2025-2026")
	schedule := seedTwoInstallmentSchedule(t, store, "CE2")

	// The record carries an enrollment fee kind, but its allocations point
	// at Versement 1: the allocations array must win.
	require.NoError(t, store.CreatePayment(&models.Payment{
		StudentID:   student.ID,
		Amount:      10000,
		PaymentDate: models.NewDate(2025, time.September, 10),
		FeeKind:     models.FeeKindEnrollment,
		Allocations: []*models.PaymentAllocation{
			{InstallmentID: schedule.Installments[1].ID, Amount: 10000},
		},
	}))

	situation, err := svc.GetSituation(student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), situation.Installments[0].AmountPaid)
	assert.Equal(t, int64(10000), situation.Installments[1].AmountPaid)
}

func TestGetSituationErrors(t *testing.T) {
	store := inmem.New()
	svc := NewSituationService(store)
	svc.SetNow(fixedNow)

	_, err := svc.GetSituation("missing-id")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	// Student without a class.
	orphan := &models.Student{Matricule: "ORPH01", FirstName: "Sans", LastName: "Classe"}
	require.NoError(t, store.CreateStudent(orphan))
	_, err = svc.GetSituation(orphan.ID)
	assert.ErrorIs(t, err, ErrClassNotFound)

	// Student whose class level has no schedule.
	student := seedStudent(t, store, "CM2", "2025-2026")
	_, err = svc.GetSituation(student.ID)
	assert.ErrorIs(t, err, ErrNoScheduleFound)
}

func TestGetBatchAlerts(t *testing.T) {
	store := inmem.New()
	svc := NewSituationService(store)
	svc.SetNow(fixedNow)

	// Overdue student: enrollment due 2025-09-01 unpaid.
	overdueStudent := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	// Due-soon student: single installment due 2025-09-20, five days out.
	dueSoonStudent := seedStudent(t, store, "CM1", "2025-2026")
	require.NoError(t, store.CreateSchedule(&models.FeeSchedule{
		Level:       "CM1",
		SchoolYear:  "2025-2026",
		TotalAmount: 20000,
		Installments: []*models.Installment{
			{Ordinal: 1, Label: "Inscription", DueDate: models.NewDate(2025, time.September, 20), Amount: 20000},
		},
	}))

	// Inactive students never appear in alerts.
	inactive := seedStudent(t, store, "CE1", "2025-2026")
	inactive.Status = models.StudentInactive

	alerts, err := svc.GetBatchAlerts()
	require.NoError(t, err)

	require.Len(t, alerts.Overdue, 1)
	assert.Equal(t, overdueStudent.ID, alerts.Overdue[0].Student.ID)
	assert.Equal(t, int64(35000), alerts.Overdue[0].TotalRemaining)

	require.Len(t, alerts.DueSoon, 1)
	assert.Equal(t, dueSoonStudent.ID, alerts.DueSoon[0].Student.ID)
	assert.Equal(t, 5, alerts.DueSoon[0].DaysRemaining)
}

func TestGetBatchAlertsDueSoonWindow(t *testing.T) {
	tests := []struct {
		name    string
		dueDate models.DateOnly
		want    bool
	}{
		{"due today is not due soon", models.NewDate(2025, time.September, 15), false},
		{"due tomorrow", models.NewDate(2025, time.September, 16), true},
		{"due in exactly seven days", models.NewDate(2025, time.September, 22), true},
		{"due in eight days", models.NewDate(2025, time.September, 23), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := inmem.New()
			svc := NewSituationService(store)
			svc.SetNow(fixedNow)

			seedStudent(t, store, "CE2", "2025-2026")
			require.NoError(t, store.CreateSchedule(&models.FeeSchedule{
				Level:       "CE2",
				SchoolYear:  "2025-2026",
				TotalAmount: 10000,
				Installments: []*models.Installment{
					{Ordinal: 1, Label: "Inscription", DueDate: tt.dueDate, Amount: 10000},
				},
			}))

			alerts, err := svc.GetBatchAlerts()
			require.NoError(t, err)
			if tt.want {
				assert.Len(t, alerts.DueSoon, 1)
			} else {
				assert.Empty(t, alerts.DueSoon)
			}
		})
	}
}

func TestGenerateConvocations(t *testing.T) {
	store := inmem.New()
	svc := NewSituationService(store)
	svc.SetNow(fixedNow)

	student := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	convocations, err := svc.GenerateConvocations()
	require.NoError(t, err)
	require.Len(t, convocations, 1)

	conv := convocations[0]
	assert.Equal(t, student.ID, conv.Student.ID)
	require.NotNil(t, conv.Class)
	assert.Equal(t, "2025-2026", conv.SchoolYear)
	assert.Equal(t, int64(35000), conv.TotalDue)
	require.Len(t, conv.Overdue, 1)
}
