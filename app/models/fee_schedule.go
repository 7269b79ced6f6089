package models

import "time"

// FeeSchedule is the ordered set of installments owed by every student of a
// given level for a given school year. Immutable once generated: the same
// (level, school year) pair always maps to one schedule.
type FeeSchedule struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Level       string     `json:"level" gorm:"not null;index" validate:"required"`
	SchoolYear  string     `json:"school_year" gorm:"not null;index" validate:"required"`
	TotalAmount int64      `json:"total_amount" gorm:"not null;type:bigint" validate:"gte=0"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Installments []*Installment `json:"installments,omitempty" gorm:"foreignKey:ScheduleID;references:ID"`
}

// Installment is one scheduled partial due amount within a fee schedule.
// Ordinal 1 is the enrollment fee; ordinals 2..N are tuition installments
// 1..N-1 ("Versement 1..N-1").
type Installment struct {
	ID         string   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ScheduleID string   `json:"schedule_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Ordinal    int      `json:"ordinal" gorm:"not null" validate:"required,gte=1"`
	Label      string   `json:"label" gorm:"not null" validate:"required"`
	DueDate    DateOnly `json:"due_date" gorm:"not null;type:date" validate:"required"`
	Amount     int64    `json:"amount" gorm:"not null;type:bigint" validate:"gte=0"`
}
