package models

import "time"

// Student represents a pupil enrolled in the school.
type Student struct {
	ID        string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Matricule string        `json:"matricule" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName string        `json:"first_name" gorm:"not null" validate:"required"`
	LastName  string        `json:"last_name" gorm:"not null" validate:"required"`
	Gender    Gender        `json:"gender,omitempty" gorm:"type:varchar(10)"`
	ClassID   *string       `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	Status    StudentStatus `json:"status" gorm:"not null;default:'active';index" validate:"required,oneof=active inactive"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Class *Class `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
