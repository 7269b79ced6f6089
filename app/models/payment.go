package models

import "time"

// Payment represents money received from a student. Amounts are integer
// FCFA units.
//
// Two generations of records coexist in the ledger. Engine-created payments
// carry an Allocations array that says exactly which installments the money
// covers. Historical records instead carry legacy markers: FeeKind plus an
// optional tuition installment number (InstallmentNo, 1 = "Versement 1") or
// a raw schedule ordinal (ScheduleOrdinal). When an Allocations array is
// present it always wins over legacy inference.
type Payment struct {
	ID          string   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID   string   `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount      int64    `json:"amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	PaymentDate DateOnly `json:"payment_date" gorm:"not null;index;type:date" validate:"required"`
	FeeKind     FeeKind  `json:"fee_kind" gorm:"not null;default:'other';index;type:varchar(20)" validate:"required,oneof=enrollment tuition other"`

	// Legacy markers, only set on records that predate allocations.
	InstallmentNo   *int `json:"installment_no,omitempty" gorm:"type:int"`
	ScheduleOrdinal *int `json:"ordinal,omitempty" gorm:"column:schedule_ordinal;type:int"`

	// Advance is the part of Amount that no outstanding installment could
	// absorb at allocation time. It is never re-applied automatically.
	Advance int64 `json:"advance" gorm:"not null;default:0;type:bigint" validate:"gte=0"`

	Method     string `json:"method,omitempty" gorm:"type:varchar(50)"`
	Reference  string `json:"reference,omitempty" gorm:"type:varchar(100)"`
	RecordedBy string `json:"recorded_by,omitempty" gorm:"type:varchar(100)"`
	Notes      string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Student     *Student             `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Allocations []*PaymentAllocation `json:"allocations,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

// PaymentAllocation assigns part of a payment to a specific installment.
type PaymentAllocation struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PaymentID     string    `json:"payment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	InstallmentID string    `json:"installment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        int64     `json:"amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}
