package database

import (
	"database/sql"
	"errors"

	"github.com/6Elmas9/KlasNet/app/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the record-store surface the payment engine depends on. It is
// injected into every service (no package-level singleton) so tests can run
// against the in-memory implementation in database/inmem.
type Store interface {
	// Students
	GetStudent(id string) (*models.Student, error)
	ListStudents() ([]*models.Student, error)
	ListActiveStudents() ([]*models.Student, error)
	CreateStudent(s *models.Student) error

	// Classes
	GetClass(id string) (*models.Class, error)
	ListClasses() ([]*models.Class, error)
	CreateClass(cl *models.Class) error

	// Fee schedules
	GetScheduleForLevel(level, schoolYear string) (*models.FeeSchedule, error)
	ListSchedules(schoolYear string) ([]*models.FeeSchedule, error)
	CreateSchedule(fs *models.FeeSchedule) error

	// Payments
	ListPayments() ([]*models.Payment, error)
	ListStudentPayments(studentID string) ([]*models.Payment, error)
	CreatePayment(p *models.Payment) error
	// MergePayments rewrites the keeper (amount, fee kind forced to
	// enrollment, legacy markers cleared) and deletes the losers in one
	// transaction.
	MergePayments(keeperID string, amount int64, loserIDs []string) error
}

// SQL implements Store on top of a Postgres connection.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps an open database handle.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}
