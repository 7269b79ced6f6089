package services

import (
	"fmt"
	"sort"

	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
)

// SuspiciousGroup is a set of payment records suspected of double-recording
// the same real transaction: same student, same amount, same calendar day,
// with one member entered as an enrollment fee and another as the first
// tuition installment.
type SuspiciousGroup struct {
	StudentID string            `json:"student_id"`
	Amount    int64             `json:"amount"`
	Date      models.DateOnly   `json:"date"`
	Payments  []*models.Payment `json:"payments"`
}

// MergeResult reports the outcome of merging one group.
type MergeResult struct {
	KeptPaymentID string `json:"kept_payment_id"`
	MergedAmount  int64  `json:"merged_amount"`
}

// NormalizeResult reports a full normalization pass.
type NormalizeResult struct {
	GroupsFound  int `json:"groups_found"`
	GroupsMerged int `json:"groups_merged"`
}

// ReconciliationService detects and repairs enrollment/first-installment
// double entries in the payment ledger.
type ReconciliationService struct {
	store database.Store
}

func NewReconciliationService(store database.Store) *ReconciliationService {
	return &ReconciliationService{store: store}
}

// FindSuspiciousGroups scans the whole ledger. A group qualifies only when
// it has at least two members sharing (student, amount, day) AND contains
// both an enrollment-kind record and a record recognizable as "installment
// 1". Same-day same-amount coincidences without that pairing are never
// flagged.
func (s *ReconciliationService) FindSuspiciousGroups() ([]SuspiciousGroup, error) {
	payments, err := s.store.ListPayments()
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*models.Payment)
	for _, p := range payments {
		key := fmt.Sprintf("%s::%d::%s", p.StudentID, p.Amount, p.PaymentDate.Format("2006-01-02"))
		groups[key] = append(groups[key], p)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var suspicious []SuspiciousGroup
	for _, key := range keys {
		members := groups[key]
		if len(members) < 2 {
			continue
		}

		hasEnrollment := false
		hasFirstInstallment := false
		for _, p := range members {
			if p.FeeKind == models.FeeKindEnrollment {
				hasEnrollment = true
			}
			if looksLikeFirstInstallment(p) {
				hasFirstInstallment = true
			}
		}
		if !hasEnrollment || !hasFirstInstallment {
			continue
		}

		suspicious = append(suspicious, SuspiciousGroup{
			StudentID: members[0].StudentID,
			Amount:    members[0].Amount,
			Date:      members[0].PaymentDate,
			Payments:  members,
		})
	}
	return suspicious, nil
}

// looksLikeFirstInstallment recognizes the two legacy encodings of
// "Versement 1": a tuition payment numbered 1, or a raw ordinal marker 1.
func looksLikeFirstInstallment(p *models.Payment) bool {
	if p.FeeKind == models.FeeKindTuition && p.InstallmentNo != nil && *p.InstallmentNo == 1 {
		return true
	}
	if p.ScheduleOrdinal != nil && *p.ScheduleOrdinal == 1 {
		return true
	}
	return false
}

// MergeGroup collapses a suspicious group into one enrollment payment. The
// keeper is the earliest-created enrollment record, or the earliest-created
// record overall when none is enrollment-kind; it is rewritten with the
// group's summed amount, fee kind enrollment, and legacy markers cleared.
// The other members are deleted. The whole merge is one store transaction.
func (s *ReconciliationService) MergeGroup(group SuspiciousGroup) (*MergeResult, error) {
	keeper := pickKeeper(group.Payments)

	total := int64(0)
	var loserIDs []string
	for _, p := range group.Payments {
		total += p.Amount
		if p.ID != keeper.ID {
			loserIDs = append(loserIDs, p.ID)
		}
	}

	if err := s.store.MergePayments(keeper.ID, total, loserIDs); err != nil {
		return nil, err
	}
	return &MergeResult{KeptPaymentID: keeper.ID, MergedAmount: total}, nil
}

// pickKeeper prefers the earliest-created enrollment record; ties and the
// no-enrollment fallback are resolved by creation time, then id.
func pickKeeper(payments []*models.Payment) *models.Payment {
	sorted := make([]*models.Payment, len(payments))
	copy(sorted, payments)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	for _, p := range sorted {
		if p.FeeKind == models.FeeKindEnrollment {
			return p
		}
	}
	return sorted[0]
}

// NormalizeAll merges every suspicious group. Idempotent: after a pass, no
// residual duplicate re-qualifies, so a second pass merges zero groups.
func (s *ReconciliationService) NormalizeAll() (*NormalizeResult, error) {
	groups, err := s.FindSuspiciousGroups()
	if err != nil {
		return nil, err
	}

	result := &NormalizeResult{GroupsFound: len(groups)}
	for _, group := range groups {
		if _, err := s.MergeGroup(group); err != nil {
			return result, err
		}
		result.GroupsMerged++
	}
	return result, nil
}
