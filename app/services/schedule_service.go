package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
)

// DefaultLevels lists every grade level that receives a default fee
// schedule, from maternelle through CM2.
var DefaultLevels = []string{
	"Petite Section", "Moyenne Section", "Grande Section",
	"CP1", "CP2", "CE1", "CE2", "CM1", "CM2",
}

// installmentCount is the fixed length of a default schedule: enrollment
// plus six tuition installments.
const installmentCount = 7

// dueDateOffsets holds the month/day each installment falls due. The first
// four are in the school year's start calendar year, the rest in the next.
var dueDateOffsets = [installmentCount]struct {
	month    time.Month
	day      int
	nextYear bool
}{
	{time.September, 1, false}, // Inscription
	{time.October, 5, false},   // Versement 1
	{time.November, 5, false},  // Versement 2
	{time.December, 5, false},  // Versement 3
	{time.January, 5, true},    // Versement 4
	{time.February, 5, true},   // Versement 5
	{time.March, 5, true},      // Versement 6
}

// ScheduleService generates and persists fee schedules.
type ScheduleService struct {
	store database.Store
}

func NewScheduleService(store database.Store) *ScheduleService {
	return &ScheduleService{store: store}
}

// parseStartYear extracts the start calendar year from a school year like
// "2025-2026". Falls back to the current year on malformed input.
func parseStartYear(schoolYear string) int {
	parts := strings.Split(schoolYear, "-")
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Now().Year()
	}
	return year
}

// levelAmounts returns the enrollment fee and the first two tuition
// installments for a level. Installments 3..6 are always 10000.
func levelAmounts(level string) (enrollment, first, second int64) {
	enrollment, first, second = 35000, 15000, 15000

	switch level {
	// Maternelle: total 100000 FCFA, reduced second installment
	case "Petite Section", "Moyenne Section", "Grande Section":
		second = 10000
	// CM1: total 110000 FCFA, raised first installment
	case "CM1":
		first = 20000
	// CM2: total 120000 FCFA, exam fee folded into enrollment
	case "CM2":
		enrollment = 45000
		first = 20000
	}
	return enrollment, first, second
}

// BuildDefaultSchedule produces the default fee schedule for a level and
// school year. Deterministic: the same inputs always yield the same
// installment labels, due dates and amounts.
func BuildDefaultSchedule(level, schoolYear string) *models.FeeSchedule {
	start := parseStartYear(schoolYear)
	enrollment, first, second := levelAmounts(level)

	amounts := [installmentCount]int64{enrollment, first, second, 10000, 10000, 10000, 10000}
	labels := [installmentCount]string{
		"Inscription", "Versement 1", "Versement 2", "Versement 3",
		"Versement 4", "Versement 5", "Versement 6",
	}

	schedule := &models.FeeSchedule{
		Level:      level,
		SchoolYear: schoolYear,
	}
	for i := 0; i < installmentCount; i++ {
		year := start
		if dueDateOffsets[i].nextYear {
			year = start + 1
		}
		schedule.Installments = append(schedule.Installments, &models.Installment{
			Ordinal: i + 1,
			Label:   labels[i],
			DueDate: models.NewDate(year, dueDateOffsets[i].month, dueDateOffsets[i].day),
			Amount:  amounts[i],
		})
		schedule.TotalAmount += amounts[i]
	}
	return schedule
}

// EnsureDefaultSchedules creates the default schedule of every known level
// for the given school year, skipping levels that already have one.
// Idempotent: re-invocation never duplicates or overwrites a schedule.
// Returns the number of schedules created.
func (s *ScheduleService) EnsureDefaultSchedules(schoolYear string) (int, error) {
	created := 0
	for _, level := range DefaultLevels {
		_, err := s.store.GetScheduleForLevel(level, schoolYear)
		if err == nil {
			continue
		}
		if err != database.ErrNotFound {
			return created, err
		}
		if err := s.store.CreateSchedule(BuildDefaultSchedule(level, schoolYear)); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
