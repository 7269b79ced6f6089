package database

import (
	"database/sql"

	"github.com/6Elmas9/KlasNet/app/models"
)

// GetStudent retrieves a student by id together with their class.
func (s *SQL) GetStudent(id string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, matricule, first_name, last_name, gender, class_id, status, created_at, updated_at
			  FROM students WHERE id = $1 AND deleted_at IS NULL`

	var gender sql.NullString
	var classID sql.NullString
	err := s.db.QueryRow(query, id).Scan(
		&student.ID, &student.Matricule, &student.FirstName, &student.LastName,
		&gender, &classID, &student.Status, &student.CreatedAt, &student.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	student.Gender = models.Gender(gender.String)
	if classID.Valid {
		student.ClassID = &classID.String
	}
	return student, nil
}

// ListStudents retrieves all students ordered by name.
func (s *SQL) ListStudents() ([]*models.Student, error) {
	return s.listStudents(`SELECT id, matricule, first_name, last_name, gender, class_id, status, created_at, updated_at
						   FROM students WHERE deleted_at IS NULL
						   ORDER BY last_name ASC, first_name ASC`)
}

// ListActiveStudents retrieves students with status 'active'.
func (s *SQL) ListActiveStudents() ([]*models.Student, error) {
	return s.listStudents(`SELECT id, matricule, first_name, last_name, gender, class_id, status, created_at, updated_at
						   FROM students WHERE status = 'active' AND deleted_at IS NULL
						   ORDER BY last_name ASC, first_name ASC`)
}

func (s *SQL) listStudents(query string) ([]*models.Student, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		var gender sql.NullString
		var classID sql.NullString
		err := rows.Scan(
			&student.ID, &student.Matricule, &student.FirstName, &student.LastName,
			&gender, &classID, &student.Status, &student.CreatedAt, &student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		student.Gender = models.Gender(gender.String)
		if classID.Valid {
			student.ClassID = &classID.String
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// CreateStudent inserts a new student record.
func (s *SQL) CreateStudent(student *models.Student) error {
	query := `INSERT INTO students (matricule, first_name, last_name, gender, class_id, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`
	if student.Status == "" {
		student.Status = models.StudentActive
	}
	return s.db.QueryRow(query,
		student.Matricule, student.FirstName, student.LastName,
		string(student.Gender), student.ClassID, string(student.Status),
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

// GetClass retrieves a class by id.
func (s *SQL) GetClass(id string) (*models.Class, error) {
	class := &models.Class{}
	query := `SELECT id, name, level, school_year, is_active, created_at, updated_at
			  FROM classes WHERE id = $1 AND deleted_at IS NULL`

	err := s.db.QueryRow(query, id).Scan(
		&class.ID, &class.Name, &class.Level, &class.SchoolYear,
		&class.IsActive, &class.CreatedAt, &class.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return class, nil
}

// ListClasses retrieves all classes with their student counts.
func (s *SQL) ListClasses() ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.level, c.school_year, c.is_active, c.created_at, c.updated_at,
			  COUNT(st.id) AS student_count
			  FROM classes c
			  LEFT JOIN students st ON st.class_id = c.id AND st.deleted_at IS NULL
			  WHERE c.deleted_at IS NULL
			  GROUP BY c.id
			  ORDER BY c.name ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		err := rows.Scan(
			&class.ID, &class.Name, &class.Level, &class.SchoolYear,
			&class.IsActive, &class.CreatedAt, &class.UpdatedAt, &class.StudentCount,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// CreateClass inserts a new class record.
func (s *SQL) CreateClass(class *models.Class) error {
	query := `INSERT INTO classes (name, level, school_year, is_active)
			  VALUES ($1, $2, $3, true)
			  RETURNING id, is_active, created_at, updated_at`
	return s.db.QueryRow(query, class.Name, class.Level, class.SchoolYear).
		Scan(&class.ID, &class.IsActive, &class.CreatedAt, &class.UpdatedAt)
}
