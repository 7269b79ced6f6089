package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			level VARCHAR(50) NOT NULL,
			school_year VARCHAR(20) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			matricule VARCHAR(50) UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			gender VARCHAR(10),
			class_id UUID REFERENCES classes(id),
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS fee_schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			level VARCHAR(50) NOT NULL,
			school_year VARCHAR(20) NOT NULL,
			total_amount BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (level, school_year)
		)`,

		`CREATE TABLE IF NOT EXISTS installments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			schedule_id UUID NOT NULL REFERENCES fee_schedules(id) ON DELETE CASCADE,
			ordinal INT NOT NULL,
			label VARCHAR(100) NOT NULL,
			due_date DATE NOT NULL,
			amount BIGINT NOT NULL DEFAULT 0,
			UNIQUE (schedule_id, ordinal)
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			amount BIGINT NOT NULL,
			payment_date DATE NOT NULL,
			fee_kind VARCHAR(20) NOT NULL DEFAULT 'other',
			installment_no INT,
			schedule_ordinal INT,
			advance BIGINT NOT NULL DEFAULT 0,
			method VARCHAR(50),
			reference VARCHAR(100),
			recorded_by VARCHAR(100),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS payment_allocations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			payment_id UUID NOT NULL REFERENCES payments(id) ON DELETE CASCADE,
			installment_id UUID NOT NULL REFERENCES installments(id),
			amount BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_students_class_id ON students(class_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_status ON students(status)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student_id ON payments(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_allocations_payment_id ON payment_allocations(payment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_installments_schedule_id ON installments(schedule_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to run migration: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
