package database

import (
	"database/sql"
	"fmt"

	"github.com/6Elmas9/KlasNet/app/models"
)

// GetScheduleForLevel retrieves the fee schedule for a level and school
// year, installments ordered by ordinal.
func (s *SQL) GetScheduleForLevel(level, schoolYear string) (*models.FeeSchedule, error) {
	schedule := &models.FeeSchedule{}
	query := `SELECT id, level, school_year, total_amount, created_at, updated_at
			  FROM fee_schedules
			  WHERE level = $1 AND school_year = $2 AND deleted_at IS NULL`

	err := s.db.QueryRow(query, level, schoolYear).Scan(
		&schedule.ID, &schedule.Level, &schedule.SchoolYear,
		&schedule.TotalAmount, &schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	schedule.Installments, err = s.listInstallments(schedule.ID)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListSchedules retrieves all fee schedules for a school year. An empty
// year returns every schedule.
func (s *SQL) ListSchedules(schoolYear string) ([]*models.FeeSchedule, error) {
	query := `SELECT id, level, school_year, total_amount, created_at, updated_at
			  FROM fee_schedules WHERE deleted_at IS NULL`
	var args []interface{}
	if schoolYear != "" {
		query += ` AND school_year = $1`
		args = append(args, schoolYear)
	}
	query += ` ORDER BY school_year ASC, level ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.FeeSchedule
	for rows.Next() {
		schedule := &models.FeeSchedule{}
		err := rows.Scan(
			&schedule.ID, &schedule.Level, &schedule.SchoolYear,
			&schedule.TotalAmount, &schedule.CreatedAt, &schedule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, schedule := range schedules {
		schedule.Installments, err = s.listInstallments(schedule.ID)
		if err != nil {
			return nil, err
		}
	}
	return schedules, nil
}

func (s *SQL) listInstallments(scheduleID string) ([]*models.Installment, error) {
	query := `SELECT id, schedule_id, ordinal, label, due_date, amount
			  FROM installments WHERE schedule_id = $1 ORDER BY ordinal ASC`

	rows, err := s.db.Query(query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.Installment
	for rows.Next() {
		inst := &models.Installment{}
		err := rows.Scan(&inst.ID, &inst.ScheduleID, &inst.Ordinal, &inst.Label, &inst.DueDate, &inst.Amount)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

// CreateSchedule inserts a schedule and its installments in one transaction.
func (s *SQL) CreateSchedule(schedule *models.FeeSchedule) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO fee_schedules (level, school_year, total_amount)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, schedule.Level, schedule.SchoolYear, schedule.TotalAmount).
		Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %v", err)
	}

	for _, inst := range schedule.Installments {
		inst.ScheduleID = schedule.ID
		query := `INSERT INTO installments (schedule_id, ordinal, label, due_date, amount)
				  VALUES ($1, $2, $3, $4, $5)
				  RETURNING id`
		err = tx.QueryRow(query, inst.ScheduleID, inst.Ordinal, inst.Label, inst.DueDate, inst.Amount).
			Scan(&inst.ID)
		if err != nil {
			return fmt.Errorf("failed to insert installment %d: %v", inst.Ordinal, err)
		}
	}

	return tx.Commit()
}
