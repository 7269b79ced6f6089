package services

import (
	"sort"
	"time"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
)

// dueSoonWindowDays is how far ahead the due-soon alert looks.
const dueSoonWindowDays = 7

// InstallmentStatus is the computed state of one installment for one
// student.
type InstallmentStatus struct {
	InstallmentID   string          `json:"installment_id"`
	Ordinal         int             `json:"ordinal"`
	Label           string          `json:"label"`
	DueDate         models.DateOnly `json:"due_date"`
	Amount          int64           `json:"amount"`
	AmountPaid      int64           `json:"amount_paid"`
	AmountRemaining int64           `json:"amount_remaining"`
	IsOverdue       bool            `json:"is_overdue"`
	DaysOverdue     int             `json:"days_overdue"`
}

// FinancialSituation aggregates a student's position against their fee
// schedule. It is recomputed from the payment ledger on every call and
// never cached, so it always reflects the current store contents.
type FinancialSituation struct {
	StudentID      string              `json:"student_id"`
	Student        *models.Student     `json:"student"`
	Class          *models.Class       `json:"class"`
	Installments   []InstallmentStatus `json:"installments"`
	TotalDue       int64               `json:"total_due"`
	TotalPaid      int64               `json:"total_paid"`
	TotalRemaining int64               `json:"total_remaining"`
	Overdue        []InstallmentStatus `json:"overdue"`
	NextDue        *InstallmentStatus  `json:"next_due"`
}

// OverdueAlert lists a student's overdue installments and their summed
// remaining amount.
type OverdueAlert struct {
	Student        *models.Student     `json:"student"`
	Installments   []InstallmentStatus `json:"installments"`
	TotalRemaining int64               `json:"total_remaining"`
}

// DueSoonAlert flags a student whose next installment falls due within the
// alert window.
type DueSoonAlert struct {
	Student       *models.Student   `json:"student"`
	Installment   InstallmentStatus `json:"installment"`
	DaysRemaining int               `json:"days_remaining"`
}

// BatchAlerts is the school-wide alert snapshot.
type BatchAlerts struct {
	Overdue []OverdueAlert `json:"overdue"`
	DueSoon []DueSoonAlert `json:"due_soon"`
}

// Convocation carries the data needed to summon a guardian over overdue
// installments.
type Convocation struct {
	Student    *models.Student     `json:"student"`
	Class      *models.Class       `json:"class"`
	Overdue    []InstallmentStatus `json:"overdue"`
	TotalDue   int64               `json:"total_due"`
	SchoolYear string              `json:"school_year"`
}

// SituationService derives financial situations and alert lists from the
// fee schedules and the payment ledger.
type SituationService struct {
	store database.Store
	now   func() time.Time
}

func NewSituationService(store database.Store) *SituationService {
	return &SituationService{store: store, now: time.Now}
}

// SetNow overrides the clock. Test hook.
func (s *SituationService) SetNow(now func() time.Time) {
	s.now = now
}

// GetSituation computes the financial situation of one student.
func (s *SituationService) GetSituation(studentID string) (*FinancialSituation, error) {
	student, err := s.store.GetStudent(studentID)
	if err == database.ErrNotFound {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	if student.ClassID == nil {
		return nil, ErrClassNotFound
	}
	class, err := s.store.GetClass(*student.ClassID)
	if err == database.ErrNotFound {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}

	schedule, err := s.store.GetScheduleForLevel(class.Level, class.SchoolYear)
	if err == database.ErrNotFound {
		return nil, ErrNoScheduleFound
	}
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListStudentPayments(studentID)
	if err != nil {
		return nil, err
	}

	paidByOrdinal := paidAmountsByOrdinal(schedule, payments)
	today := models.DateOf(s.now())

	situation := &FinancialSituation{
		StudentID: studentID,
		Student:   student,
		Class:     class,
	}

	for _, inst := range schedule.Installments {
		paid := paidByOrdinal[inst.Ordinal]
		remaining := inst.Amount - paid
		if remaining < 0 {
			remaining = 0
		}

		status := InstallmentStatus{
			InstallmentID:   inst.ID,
			Ordinal:         inst.Ordinal,
			Label:           inst.Label,
			DueDate:         inst.DueDate,
			Amount:          inst.Amount,
			AmountPaid:      paid,
			AmountRemaining: remaining,
		}
		if inst.DueDate.Before(today.Time) && remaining > 0 {
			status.IsOverdue = true
			status.DaysOverdue = inst.DueDate.DaysUntil(today)
		}

		situation.Installments = append(situation.Installments, status)
		situation.TotalDue += status.Amount
		situation.TotalPaid += status.AmountPaid
		situation.TotalRemaining += status.AmountRemaining
		if status.IsOverdue {
			situation.Overdue = append(situation.Overdue, status)
		}
	}

	situation.NextDue = nextDueInstallment(situation.Installments)
	return situation, nil
}

// paidAmountsByOrdinal sums what each installment ordinal has received.
// Payments with an allocations array are authoritative; older records fall
// back to legacy inference: a raw schedule ordinal marker is used as-is,
// an enrollment payment maps to ordinal 1, and a tuition payment with
// installment number n maps to ordinal n+1.
func paidAmountsByOrdinal(schedule *models.FeeSchedule, payments []*models.Payment) map[int]int64 {
	ordinalByInstallmentID := make(map[string]int, len(schedule.Installments))
	for _, inst := range schedule.Installments {
		ordinalByInstallmentID[inst.ID] = inst.Ordinal
	}

	paid := make(map[int]int64)
	for _, p := range payments {
		if len(p.Allocations) > 0 {
			for _, a := range p.Allocations {
				if ordinal, ok := ordinalByInstallmentID[a.InstallmentID]; ok {
					paid[ordinal] += a.Amount
				}
			}
			continue
		}

		ordinal := 0
		switch {
		case p.ScheduleOrdinal != nil:
			ordinal = *p.ScheduleOrdinal
		case p.FeeKind == models.FeeKindEnrollment:
			ordinal = 1
		case p.FeeKind == models.FeeKindTuition && p.InstallmentNo != nil:
			ordinal = *p.InstallmentNo + 1
		}
		if ordinal > 0 {
			paid[ordinal] += p.Amount
		}
	}
	return paid
}

// nextDueInstallment returns the chronologically first installment that is
// unpaid and not yet overdue, or nil.
func nextDueInstallment(statuses []InstallmentStatus) *InstallmentStatus {
	var next *InstallmentStatus
	for i := range statuses {
		st := &statuses[i]
		if st.AmountRemaining <= 0 || st.IsOverdue {
			continue
		}
		if next == nil || st.DueDate.Before(next.DueDate.Time) {
			next = st
		}
	}
	if next == nil {
		return nil
	}
	copied := *next
	return &copied
}

// GetBatchAlerts scans all active students and returns the overdue and
// due-soon lists.
func (s *SituationService) GetBatchAlerts() (*BatchAlerts, error) {
	students, err := s.store.ListActiveStudents()
	if err != nil {
		return nil, err
	}

	today := models.DateOf(s.now())
	alerts := &BatchAlerts{}

	for _, student := range students {
		situation, err := s.GetSituation(student.ID)
		if err == ErrStudentNotFound || err == ErrClassNotFound || err == ErrNoScheduleFound {
			// Students without a resolvable schedule simply have no alerts.
			continue
		}
		if err != nil {
			return nil, err
		}

		if len(situation.Overdue) > 0 {
			total := int64(0)
			for _, st := range situation.Overdue {
				total += st.AmountRemaining
			}
			alerts.Overdue = append(alerts.Overdue, OverdueAlert{
				Student:        student,
				Installments:   situation.Overdue,
				TotalRemaining: total,
			})
		}

		if situation.NextDue != nil {
			days := today.DaysUntil(situation.NextDue.DueDate)
			if days > 0 && days <= dueSoonWindowDays {
				alerts.DueSoon = append(alerts.DueSoon, DueSoonAlert{
					Student:       student,
					Installment:   *situation.NextDue,
					DaysRemaining: days,
				})
			}
		}
	}

	return alerts, nil
}

// GenerateConvocations builds guardian summons entries for every student
// with overdue installments.
func (s *SituationService) GenerateConvocations() ([]Convocation, error) {
	alerts, err := s.GetBatchAlerts()
	if err != nil {
		return nil, err
	}

	var convocations []Convocation
	for _, alert := range alerts.Overdue {
		conv := Convocation{
			Student:  alert.Student,
			Overdue:  alert.Installments,
			TotalDue: alert.TotalRemaining,
		}
		if alert.Student.ClassID != nil {
			if class, err := s.store.GetClass(*alert.Student.ClassID); err == nil {
				conv.Class = class
				conv.SchoolYear = class.SchoolYear
			}
		}
		convocations = append(convocations, conv)
	}

	sort.Slice(convocations, func(i, j int) bool {
		return convocations[i].TotalDue > convocations[j].TotalDue
	})
	return convocations, nil
}
