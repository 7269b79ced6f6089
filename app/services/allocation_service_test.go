package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/6Elmas9/KlasNet/app/database/inmem"
	"github.com/6Elmas9/KlasNet/app/models"
)

func newAllocationFixture(t *testing.T) (*inmem.Store, *AllocationService, *SituationService) {
	t.Helper()
	store := inmem.New()
	situations := NewSituationService(store)
	situations.SetNow(fixedNow)
	return store, NewAllocationService(store, situations), situations
}

func TestAllocateConservation(t *testing.T) {
	amounts := []int64{1, 500, 20000, 35000, 47000, 105000, 200000}
	for _, amount := range amounts {
		store, alloc, _ := newAllocationFixture(t)
		student := seedStudent(t, store, "CP1", "2025-2026")
		_, err := NewScheduleService(store).EnsureDefaultSchedules("2025-2026")
		require.NoError(t, err)

		result, err := alloc.Allocate(student.ID, amount, models.NewDate(2025, time.September, 15), PaymentMeta{})
		require.NoError(t, err)

		var allocated int64
		for _, a := range result.Allocations {
			allocated += a.Amount
		}
		assert.Equal(t, amount, allocated+result.Advance, "amount %d must be conserved", amount)
		assert.Equal(t, amount, result.Payment.Amount)
	}
}

func TestAllocateOverdueFirst(t *testing.T) {
	store, alloc, _ := newAllocationFixture(t)

	student := seedStudent(t, store, "CM1", "2025-2026")
	schedule := &models.FeeSchedule{
		Level:       "CM1",
		SchoolYear:  "2025-2026",
		TotalAmount: 10000,
		Installments: []*models.Installment{
			// Ordinal 1 is in the future, ordinal 2 is overdue: the overdue
			// one must be served first regardless of ordinal.
			{Ordinal: 1, Label: "Inscription", DueDate: models.NewDate(2025, time.October, 1), Amount: 5000},
			{Ordinal: 2, Label: "Versement 1", DueDate: models.NewDate(2025, time.September, 1), Amount: 5000},
		},
	}
	require.NoError(t, store.CreateSchedule(schedule))

	result, err := alloc.Allocate(student.ID, 5000, models.NewDate(2025, time.September, 15), PaymentMeta{})
	require.NoError(t, err)

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, schedule.Installments[1].ID, result.Allocations[0].InstallmentID)
	assert.Equal(t, int64(5000), result.Allocations[0].Amount)
	assert.Equal(t, int64(0), result.Advance)

	// The future installment is untouched.
	assert.Equal(t, int64(5000), result.Situation.Installments[0].AmountRemaining)
	assert.Equal(t, int64(0), result.Situation.Installments[1].AmountRemaining)
}

func TestAllocateSpansInstallments(t *testing.T) {
	store, alloc, _ := newAllocationFixture(t)

	student := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	// 40000 covers the overdue enrollment (35000) and part of Versement 1.
	result, err := alloc.Allocate(student.ID, 40000, models.NewDate(2025, time.September, 15), PaymentMeta{Method: "cash"})
	require.NoError(t, err)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, int64(35000), result.Allocations[0].Amount)
	assert.Equal(t, int64(5000), result.Allocations[1].Amount)
	assert.Equal(t, int64(0), result.Advance)

	assert.Equal(t, int64(0), result.Situation.Installments[0].AmountRemaining)
	assert.Equal(t, int64(10000), result.Situation.Installments[1].AmountRemaining)
	assert.Equal(t, "cash", result.Payment.Method)
}

func TestAllocateAdvance(t *testing.T) {
	store, alloc, _ := newAllocationFixture(t)

	student := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	// 60000 pays the full 50000 schedule; 10000 becomes an advance.
	result, err := alloc.Allocate(student.ID, 60000, models.NewDate(2025, time.September, 15), PaymentMeta{})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.Advance)
	assert.Equal(t, int64(10000), result.Payment.Advance)
	assert.Equal(t, int64(0), result.Situation.TotalRemaining)

	// The engine never re-applies a stored advance: a further payment on a
	// fully paid schedule is pure advance again.
	result, err = alloc.Allocate(student.ID, 3000, models.NewDate(2025, time.September, 16), PaymentMeta{})
	require.NoError(t, err)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, int64(3000), result.Advance)

	payments, err := store.ListStudentPayments(student.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, int64(10000), payments[0].Advance)
}

func TestAllocateInvalidAmount(t *testing.T) {
	store, alloc, _ := newAllocationFixture(t)

	student := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	for _, amount := range []int64{0, -5000} {
		_, err := alloc.Allocate(student.ID, amount, models.NewDate(2025, time.September, 15), PaymentMeta{})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	payments, err := store.ListStudentPayments(student.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestAllocateNoScheduleCreatesNothing(t *testing.T) {
	store, alloc, _ := newAllocationFixture(t)

	// The student's class level has no fee schedule at all.
	student := seedStudent(t, store, "CM2", "2025-2026")

	_, err := alloc.Allocate(student.ID, 10000, models.NewDate(2025, time.September, 15), PaymentMeta{})
	assert.ErrorIs(t, err, ErrNoScheduleFound)

	payments, err := store.ListStudentPayments(student.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestAllocateUnknownStudent(t *testing.T) {
	_, alloc, _ := newAllocationFixture(t)

	_, err := alloc.Allocate("missing-id", 10000, models.NewDate(2025, time.September, 15), PaymentMeta{})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAllocateSeesEarlierAllocations(t *testing.T) {
	store, alloc, _ := newAllocationFixture(t)

	student := seedStudent(t, store, "CE1", "2025-2026")
	seedTwoInstallmentSchedule(t, store, "CE1")

	_, err := alloc.Allocate(student.ID, 20000, models.NewDate(2025, time.September, 10), PaymentMeta{})
	require.NoError(t, err)

	// The second payment starts where the first one stopped.
	result, err := alloc.Allocate(student.ID, 20000, models.NewDate(2025, time.September, 15), PaymentMeta{})
	require.NoError(t, err)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, int64(15000), result.Allocations[0].Amount)
	assert.Equal(t, int64(5000), result.Allocations[1].Amount)
	assert.Equal(t, int64(10000), result.Situation.TotalRemaining)
}
