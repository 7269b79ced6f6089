// Package inmem provides an in-memory Store used by tests and demos. It
// mirrors the Postgres implementation's behavior (id generation, not-found
// errors, ordering) without a database.
package inmem

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
)

type Store struct {
	mu        sync.RWMutex
	students  map[string]*models.Student
	classes   map[string]*models.Class
	schedules map[string]*models.FeeSchedule
	payments  map[string]*models.Payment
}

// New returns an empty store.
func New() *Store {
	return &Store{
		students:  make(map[string]*models.Student),
		classes:   make(map[string]*models.Class),
		schedules: make(map[string]*models.FeeSchedule),
		payments:  make(map[string]*models.Payment),
	}
}

var _ database.Store = (*Store)(nil)

func (s *Store) GetStudent(id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return student, nil
}

func (s *Store) ListStudents() ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	students := make([]*models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	sortStudents(students)
	return students, nil
}

func (s *Store) ListActiveStudents() ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var students []*models.Student
	for _, student := range s.students {
		if student.Status == models.StudentActive {
			students = append(students, student)
		}
	}
	sortStudents(students)
	return students, nil
}

func (s *Store) CreateStudent(student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.Status == "" {
		student.Status = models.StudentActive
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now()
	}
	student.UpdatedAt = student.CreatedAt
	s.students[student.ID] = student
	return nil
}

func (s *Store) GetClass(id string) (*models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	class, ok := s.classes[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return class, nil
}

func (s *Store) ListClasses() ([]*models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classes := make([]*models.Class, 0, len(s.classes))
	for _, class := range s.classes {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

func (s *Store) CreateClass(class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	class.IsActive = true
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now()
	}
	class.UpdatedAt = class.CreatedAt
	s.classes[class.ID] = class
	return nil
}

func (s *Store) GetScheduleForLevel(level, schoolYear string) (*models.FeeSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, schedule := range s.schedules {
		if schedule.Level == level && schedule.SchoolYear == schoolYear {
			return schedule, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) ListSchedules(schoolYear string) ([]*models.FeeSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var schedules []*models.FeeSchedule
	for _, schedule := range s.schedules {
		if schoolYear == "" || schedule.SchoolYear == schoolYear {
			schedules = append(schedules, schedule)
		}
	}
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].SchoolYear != schedules[j].SchoolYear {
			return schedules[i].SchoolYear < schedules[j].SchoolYear
		}
		return schedules[i].Level < schedules[j].Level
	})
	return schedules, nil
}

func (s *Store) CreateSchedule(schedule *models.FeeSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now()
	}
	schedule.UpdatedAt = schedule.CreatedAt
	for _, inst := range schedule.Installments {
		if inst.ID == "" {
			inst.ID = uuid.NewString()
		}
		inst.ScheduleID = schedule.ID
	}
	s.schedules[schedule.ID] = schedule
	return nil
}

func (s *Store) ListPayments() ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payments := make([]*models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		payments = append(payments, p)
	}
	sortPayments(payments)
	return payments, nil
}

func (s *Store) ListStudentPayments(studentID string) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []*models.Payment
	for _, p := range s.payments {
		if p.StudentID == studentID {
			payments = append(payments, p)
		}
	}
	sortPayments(payments)
	return payments, nil
}

func (s *Store) CreatePayment(p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.FeeKind == "" {
		p.FeeKind = models.FeeKindOther
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	for _, a := range p.Allocations {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.PaymentID = p.ID
		if a.CreatedAt.IsZero() {
			a.CreatedAt = p.CreatedAt
		}
	}
	s.payments[p.ID] = p
	return nil
}

func (s *Store) MergePayments(keeperID string, amount int64, loserIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keeper, ok := s.payments[keeperID]
	if !ok {
		return database.ErrNotFound
	}
	keeper.Amount = amount
	keeper.FeeKind = models.FeeKindEnrollment
	keeper.InstallmentNo = nil
	keeper.ScheduleOrdinal = nil
	keeper.UpdatedAt = time.Now()
	for _, id := range loserIDs {
		delete(s.payments, id)
	}
	return nil
}

func sortStudents(students []*models.Student) {
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})
}

func sortPayments(payments []*models.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].CreatedAt.Before(payments[j].CreatedAt)
		}
		return payments[i].ID < payments[j].ID
	})
}
