package models

import "time"

// DebtCategory classifies a liability account.
type DebtCategory string

const (
	DebtCategoryCreditCard   DebtCategory = "credit_card"
	DebtCategoryAutoLoan     DebtCategory = "auto_loan"
	DebtCategoryPersonalLoan DebtCategory = "personal_loan"
	DebtCategoryLineOfCredit DebtCategory = "line_of_credit"
	DebtCategoryStudentLoan  DebtCategory = "student_loan"
	DebtCategoryMortgage     DebtCategory = "mortgage"
	DebtCategoryOther        DebtCategory = "other"
)

// ValidDebtCategory reports whether c is one of the known categories.
func ValidDebtCategory(c DebtCategory) bool {
	switch c {
	case DebtCategoryCreditCard, DebtCategoryAutoLoan, DebtCategoryPersonalLoan,
		DebtCategoryLineOfCredit, DebtCategoryStudentLoan, DebtCategoryMortgage,
		DebtCategoryOther:
		return true
	}
	return false
}

// Debt represents a liability account being paid down.
// Balance and MinimumPayment are never negative; InterestRate is an
// annual percentage in [0, 100].
type Debt struct {
	Base
	Name           string       `gorm:"not null" json:"name"`
	Category       DebtCategory `gorm:"not null" json:"category"`
	Balance        float64      `gorm:"not null;default:0" json:"balance"`
	MinimumPayment float64      `gorm:"not null;default:0" json:"minimum_payment"`
	InterestRate   float64      `gorm:"not null;default:0" json:"interest_rate"`
	LastUpdated    time.Time    `gorm:"not null" json:"last_updated"`

	// Optional details from statements or manual entry.
	Institution   string `json:"institution,omitempty"`
	AccountNumber string `json:"account_number,omitempty"` // masked, e.g. "****1234"
	DueDay        *int   `json:"due_day,omitempty"`        // day of month, 1-31

	// Relationships
	Statements []Statement `gorm:"foreignKey:DebtID" json:"statements,omitempty"`
}
