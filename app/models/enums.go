package models

// FeeKind classifies what a payment record was entered against.
type FeeKind string

const (
	// FeeKindEnrollment is the enrollment fee (installment 1 of a schedule).
	FeeKindEnrollment FeeKind = "enrollment"
	// FeeKindTuition is a tuition installment payment.
	FeeKindTuition FeeKind = "tuition"
	// FeeKindOther covers payments not tied to a single fee category,
	// including engine-allocated payments that carry an allocations array.
	FeeKindOther FeeKind = "other"
)

// StudentStatus defines the possible status values for a student.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)
