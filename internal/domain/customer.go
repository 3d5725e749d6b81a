package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	StatusDocumentsSubmitted CustomerStatus = "DOCUMENTS_SUBMITTED"
	StatusKYCInProgress      CustomerStatus = "KYC_IN_PROGRESS"
	StatusKYCCompleted       CustomerStatus = "KYC_COMPLETED"
	StatusApproved           CustomerStatus = "APPROVED"
	StatusRejected           CustomerStatus = "REJECTED"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
)

type Customer struct {
	ID                   int64
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	DateOfBirth          time.Time
	PasswordHash         string
	AccountNumber        *string
	AccountType          AccountType
	InitialDeposit       decimal.Decimal
	CurrentBalance       decimal.Decimal
	PANNumber            string
	AadharNumber         string
	Occupation           string
	MonthlyIncome        string
	Status               CustomerStatus
	KYCCompleted         bool
	CanPerformOperations bool
	SubmittedDate        time.Time
	KYCDate              *time.Time
	ApprovalDate         *time.Time
	ClerkNotes           *string
	ManagerNotes         *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func ParseCustomerStatus(raw string) (CustomerStatus, bool) {
	switch CustomerStatus(raw) {
	case StatusDocumentsSubmitted, StatusKYCInProgress, StatusKYCCompleted, StatusApproved, StatusRejected:
		return CustomerStatus(raw), true
	default:
		return "", false
	}
}

func ParseAccountType(raw string) (AccountType, bool) {
	switch AccountType(raw) {
	case AccountTypeSavings, AccountTypeCurrent:
		return AccountType(raw), true
	default:
		return "", false
	}
}

// legalTransitions enumerates the onboarding flow. APPROVED and
// REJECTED are terminal.
var legalTransitions = map[CustomerStatus][]CustomerStatus{
	StatusDocumentsSubmitted: {StatusKYCInProgress},
	StatusKYCInProgress:      {StatusKYCCompleted},
	StatusKYCCompleted:       {StatusApproved, StatusRejected},
	StatusApproved:           {},
	StatusRejected:           {},
}

func (s CustomerStatus) CanTransitionTo(target CustomerStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s CustomerStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}
