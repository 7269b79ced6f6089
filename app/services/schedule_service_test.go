package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/6Elmas9/KlasNet/app/database/inmem"
)

func TestBuildDefaultScheduleAmounts(t *testing.T) {
	tests := []struct {
		level string
		total int64
	}{
		{"Petite Section", 100000},
		{"Moyenne Section", 100000},
		{"Grande Section", 100000},
		{"CP1", 105000},
		{"CP2", 105000},
		{"CE1", 105000},
		{"CE2", 105000},
		{"CM1", 110000},
		{"CM2", 120000},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			schedule := BuildDefaultSchedule(tt.level, "2025-2026")

			assert.Equal(t, tt.total, schedule.TotalAmount)
			require.Len(t, schedule.Installments, 7)

			var sum int64
			for i, inst := range schedule.Installments {
				assert.Equal(t, i+1, inst.Ordinal)
				sum += inst.Amount
			}
			assert.Equal(t, schedule.TotalAmount, sum)

			assert.Equal(t, "Inscription", schedule.Installments[0].Label)
			assert.Equal(t, "2025-09-01", schedule.Installments[0].DueDate.Format("2006-01-02"))
			assert.Equal(t, "Versement 1", schedule.Installments[1].Label)
			assert.Equal(t, "2025-10-05", schedule.Installments[1].DueDate.Format("2006-01-02"))
			assert.Equal(t, "Versement 6", schedule.Installments[6].Label)
			assert.Equal(t, "2026-03-05", schedule.Installments[6].DueDate.Format("2006-01-02"))
		})
	}
}

func TestBuildDefaultScheduleDeterministic(t *testing.T) {
	a := BuildDefaultSchedule("CM2", "2025-2026")
	b := BuildDefaultSchedule("CM2", "2025-2026")

	require.Len(t, b.Installments, len(a.Installments))
	assert.Equal(t, a.TotalAmount, b.TotalAmount)
	for i := range a.Installments {
		assert.Equal(t, a.Installments[i].Ordinal, b.Installments[i].Ordinal)
		assert.Equal(t, a.Installments[i].Label, b.Installments[i].Label)
		assert.Equal(t, a.Installments[i].Amount, b.Installments[i].Amount)
		assert.True(t, a.Installments[i].DueDate.Equal(b.Installments[i].DueDate.Time))
	}
}

func TestEnsureDefaultSchedulesIdempotent(t *testing.T) {
	store := inmem.New()
	svc := NewScheduleService(store)

	created, err := svc.EnsureDefaultSchedules("2025-2026")
	require.NoError(t, err)
	assert.Equal(t, len(DefaultLevels), created)

	before, err := store.GetScheduleForLevel("CM2", "2025-2026")
	require.NoError(t, err)

	// Second invocation must neither duplicate nor touch existing schedules.
	created, err = svc.EnsureDefaultSchedules("2025-2026")
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	schedules, err := store.ListSchedules("2025-2026")
	require.NoError(t, err)
	assert.Len(t, schedules, len(DefaultLevels))

	after, err := store.GetScheduleForLevel("CM2", "2025-2026")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.TotalAmount, after.TotalAmount)
}

func TestEnsureDefaultSchedulesNewYear(t *testing.T) {
	store := inmem.New()
	svc := NewScheduleService(store)

	_, err := svc.EnsureDefaultSchedules("2025-2026")
	require.NoError(t, err)

	// A different school year gets its own set of schedules.
	created, err := svc.EnsureDefaultSchedules("2026-2027")
	require.NoError(t, err)
	assert.Equal(t, len(DefaultLevels), created)

	schedule, err := store.GetScheduleForLevel("CP1", "2026-2027")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", schedule.Installments[0].DueDate.Format("2006-01-02"))
}
