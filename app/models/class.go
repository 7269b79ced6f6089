package models

import "time"

// Class represents a classroom for one school year, e.g. "CM2 A" at level
// "CM2" for "2025-2026". The (Level, SchoolYear) pair resolves the fee
// schedule of its students.
type Class struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name         string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Level        string     `json:"level" gorm:"not null;index" validate:"required"`
	SchoolYear   string     `json:"school_year" gorm:"not null;index" validate:"required"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	StudentCount int        `json:"student_count" gorm:"-"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Students []*Student `json:"students,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}
