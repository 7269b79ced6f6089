package services

import (
	"sort"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
)

// PaymentMeta is the free-form metadata attached verbatim to a payment.
type PaymentMeta struct {
	Method     string
	Reference  string
	RecordedBy string
	Notes      string
}

// AllocationResult reports how an incoming payment was split.
type AllocationResult struct {
	Payment     *models.Payment             `json:"payment"`
	Allocations []*models.PaymentAllocation `json:"allocations"`
	Advance     int64                       `json:"advance"`
	Situation   *FinancialSituation         `json:"situation"`
}

// AllocationService splits incoming payments across outstanding
// installments under a fixed priority order.
type AllocationService struct {
	store      database.Store
	situations *SituationService
}

func NewAllocationService(store database.Store, situations *SituationService) *AllocationService {
	return &AllocationService{store: store, situations: situations}
}

// Allocate records a payment of the given amount for a student, assigning
// it to outstanding installments: overdue ones first (oldest due date
// first), then future ones in due-date order. Whatever the queue cannot
// absorb is stored as an advance on the payment and is never re-applied by
// a later call.
//
// All preconditions are checked before any write; on error no payment is
// created. The result always satisfies sum(allocations) + advance == amount.
func (s *AllocationService) Allocate(studentID string, amount int64, date models.DateOnly, meta PaymentMeta) (*AllocationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	situation, err := s.situations.GetSituation(studentID)
	if err != nil {
		return nil, err
	}

	left := amount
	var allocations []*models.PaymentAllocation
	for _, status := range allocationQueue(situation) {
		if left <= 0 {
			break
		}
		if status.AmountRemaining <= 0 {
			continue
		}

		assigned := status.AmountRemaining
		if left < assigned {
			assigned = left
		}
		allocations = append(allocations, &models.PaymentAllocation{
			InstallmentID: status.InstallmentID,
			Amount:        assigned,
		})
		left -= assigned
	}

	payment := &models.Payment{
		StudentID:   studentID,
		Amount:      amount,
		PaymentDate: date,
		FeeKind:     models.FeeKindOther,
		Advance:     left,
		Method:      meta.Method,
		Reference:   meta.Reference,
		RecordedBy:  meta.RecordedBy,
		Notes:       meta.Notes,
		Allocations: allocations,
	}
	if err := s.store.CreatePayment(payment); err != nil {
		return nil, err
	}

	updated, err := s.situations.GetSituation(studentID)
	if err != nil {
		return nil, err
	}

	return &AllocationResult{
		Payment:     payment,
		Allocations: allocations,
		Advance:     left,
		Situation:   updated,
	}, nil
}

// allocationQueue orders a situation's outstanding installments by
// priority: overdue first, both groups sorted by due date ascending. Fully
// paid installments are excluded.
func allocationQueue(situation *FinancialSituation) []InstallmentStatus {
	var overdue, pending []InstallmentStatus
	for _, status := range situation.Installments {
		if status.AmountRemaining <= 0 {
			continue
		}
		if status.IsOverdue {
			overdue = append(overdue, status)
		} else {
			pending = append(pending, status)
		}
	}

	byDueDate := func(statuses []InstallmentStatus) {
		sort.Slice(statuses, func(i, j int) bool {
			return statuses[i].DueDate.Before(statuses[j].DueDate.Time)
		})
	}
	byDueDate(overdue)
	byDueDate(pending)

	return append(overdue, pending...)
}
