package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/6Elmas9/KlasNet/app/models"
)

const paymentColumns = `id, student_id, amount, payment_date, fee_kind, installment_no,
						schedule_ordinal, advance, method, reference, recorded_by, notes,
						created_at, updated_at`

// ListPayments retrieves every payment with its allocations.
func (s *SQL) ListPayments() ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at ASC, id ASC`
	payments, err := s.queryPayments(query)
	if err != nil {
		return nil, err
	}
	return payments, s.attachAllocations(payments)
}

// ListStudentPayments retrieves all payments of one student with their
// allocations, ordered by creation time.
func (s *SQL) ListStudentPayments(studentID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
			  WHERE student_id = $1 ORDER BY created_at ASC, id ASC`
	payments, err := s.queryPayments(query, studentID)
	if err != nil {
		return nil, err
	}
	return payments, s.attachAllocations(payments)
}

func (s *SQL) queryPayments(query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var installmentNo, scheduleOrdinal sql.NullInt64
		var method, reference, recordedBy, notes sql.NullString
		err := rows.Scan(
			&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &p.FeeKind,
			&installmentNo, &scheduleOrdinal, &p.Advance,
			&method, &reference, &recordedBy, &notes,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if installmentNo.Valid {
			n := int(installmentNo.Int64)
			p.InstallmentNo = &n
		}
		if scheduleOrdinal.Valid {
			n := int(scheduleOrdinal.Int64)
			p.ScheduleOrdinal = &n
		}
		p.Method = method.String
		p.Reference = reference.String
		p.RecordedBy = recordedBy.String
		p.Notes = notes.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *SQL) attachAllocations(payments []*models.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	ids := make([]string, len(payments))
	byID := make(map[string]*models.Payment, len(payments))
	for i, p := range payments {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	query := `SELECT id, payment_id, installment_id, amount, created_at
			  FROM payment_allocations WHERE payment_id = ANY($1) ORDER BY created_at ASC, id ASC`
	rows, err := s.db.Query(query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		a := &models.PaymentAllocation{}
		err := rows.Scan(&a.ID, &a.PaymentID, &a.InstallmentID, &a.Amount, &a.CreatedAt)
		if err != nil {
			return err
		}
		if p, ok := byID[a.PaymentID]; ok {
			p.Allocations = append(p.Allocations, a)
		}
	}
	return rows.Err()
}

// CreatePayment inserts a payment and its allocations in one transaction.
func (s *SQL) CreatePayment(p *models.Payment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.FeeKind == "" {
		p.FeeKind = models.FeeKindOther
	}

	query := `INSERT INTO payments (student_id, amount, payment_date, fee_kind, installment_no,
			  schedule_ordinal, advance, method, reference, recorded_by, notes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
			  RETURNING id, updated_at`
	err = tx.QueryRow(query,
		p.StudentID, p.Amount, p.PaymentDate, string(p.FeeKind), p.InstallmentNo,
		p.ScheduleOrdinal, p.Advance, p.Method, p.Reference, p.RecordedBy, p.Notes, p.CreatedAt,
	).Scan(&p.ID, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	for _, a := range p.Allocations {
		a.PaymentID = p.ID
		query := `INSERT INTO payment_allocations (payment_id, installment_id, amount)
				  VALUES ($1, $2, $3)
				  RETURNING id, created_at`
		err = tx.QueryRow(query, a.PaymentID, a.InstallmentID, a.Amount).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %v", err)
		}
	}

	return tx.Commit()
}

// MergePayments rewrites the keeper as an enrollment payment carrying the
// merged amount and deletes the loser records. Runs in one transaction so
// a failure leaves the ledger untouched.
func (s *SQL) MergePayments(keeperID string, amount int64, loserIDs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE payments
			  SET amount = $1, fee_kind = 'enrollment', installment_no = NULL,
				  schedule_ordinal = NULL, updated_at = NOW()
			  WHERE id = $2`
	res, err := tx.Exec(query, amount, keeperID)
	if err != nil {
		return fmt.Errorf("failed to update keeper payment: %v", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if len(loserIDs) > 0 {
		_, err = tx.Exec(`DELETE FROM payment_allocations WHERE payment_id = ANY($1)`, pq.Array(loserIDs))
		if err != nil {
			return fmt.Errorf("failed to delete merged allocations: %v", err)
		}
		_, err = tx.Exec(`DELETE FROM payments WHERE id = ANY($1)`, pq.Array(loserIDs))
		if err != nil {
			return fmt.Errorf("failed to delete merged payments: %v", err)
		}
	}

	return tx.Commit()
}
