package models

import "time"

// EntryKind distinguishes the two row types extracted from a statement.
type EntryKind string

const (
	EntryKindPurchase EntryKind = "purchase"
	EntryKindPayment  EntryKind = "payment"
)

// PurchaseCategory is derived from keyword matching on the description.
type PurchaseCategory string

const (
	PurchaseCategoryFood           PurchaseCategory = "Food & Dining"
	PurchaseCategoryTransportation PurchaseCategory = "Transportation"
	PurchaseCategoryShopping       PurchaseCategory = "Shopping"
	PurchaseCategoryPayment        PurchaseCategory = "Payment"
	PurchaseCategoryOther          PurchaseCategory = "Other"
)

// StatementEntry is a single purchase or payment extracted from a
// statement document. Amount is always non-negative once classified.
type StatementEntry struct {
	Base
	StatementID string           `gorm:"not null;index" json:"statement_id"`
	Kind        EntryKind        `gorm:"not null" json:"kind"`
	Date        time.Time        `gorm:"not null" json:"date"`
	Amount      float64          `gorm:"not null" json:"amount"`
	Description string           `json:"description"`
	Category    PurchaseCategory `json:"category,omitempty"` // purchases only
}

// Statement is a reconciled snapshot derived from one uploaded document.
// DebtID is empty while the statement is unlinked and pending manual
// entry; linking mutates DebtID in place.
type Statement struct {
	Base
	DebtID          string    `gorm:"index" json:"debt_id"`
	StatementDate   time.Time `json:"statement_date"`
	DueDate         time.Time `json:"due_date"`
	Balance         float64   `gorm:"not null;default:0" json:"balance"`
	MinimumPayment  float64   `gorm:"not null;default:0" json:"minimum_payment"`
	InterestCharged float64   `gorm:"not null;default:0" json:"interest_charged"`
	FileName        string    `json:"file_name"`
	ImportedAt      time.Time `gorm:"not null" json:"imported_at"`

	// Optional account-level fields extracted from statement text.
	CreditLimit     *float64 `json:"credit_limit,omitempty"`
	AvailableCredit *float64 `json:"available_credit,omitempty"`
	InterestRateAPR *float64 `json:"interest_rate_apr,omitempty"`

	Entries []StatementEntry `gorm:"foreignKey:StatementID" json:"entries,omitempty"`
}

// Linked reports whether the statement has an owning debt.
func (s *Statement) Linked() bool { return s.DebtID != "" }

// Purchases returns the purchase entries in order.
func (s *Statement) Purchases() []StatementEntry {
	return s.entriesOfKind(EntryKindPurchase)
}

// Payments returns the payment entries in order.
func (s *Statement) Payments() []StatementEntry {
	return s.entriesOfKind(EntryKindPayment)
}

func (s *Statement) entriesOfKind(kind EntryKind) []StatementEntry {
	var out []StatementEntry
	for _, e := range s.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
