package parser

import (
	"regexp"
	"strings"
	"time"
)

// StatementFields holds account-level values located in statement text.
// A nil field means the label was not found or its value failed the
// sanity checks.
type StatementFields struct {
	PreviousBalance *float64
	Purchases       *float64
	Payments        *float64
	InterestCharged *float64
	InterestRate    *float64
	CreditLimit     *float64
	AvailableCredit *float64
	MinimumPayment  *float64
	StatementDate   *time.Time
	DueDate         *time.Time
}

// HasData reports whether any field was extracted.
func (f *StatementFields) HasData() bool {
	return f.PreviousBalance != nil || f.Purchases != nil || f.Payments != nil ||
		f.InterestCharged != nil || f.InterestRate != nil || f.CreditLimit != nil ||
		f.AvailableCredit != nil || f.MinimumPayment != nil ||
		f.StatementDate != nil || f.DueDate != nil
}

// DerivedBalance computes the statement balance from its components:
// previous + purchases + interest - payments. It is only available when
// all four components were extracted.
func (f *StatementFields) DerivedBalance() *float64 {
	if f.PreviousBalance == nil || f.Purchases == nil ||
		f.InterestCharged == nil || f.Payments == nil {
		return nil
	}
	bal := *f.PreviousBalance + *f.Purchases + *f.InterestCharged - *f.Payments
	return &bal
}

// Each field is located via an ordered list of labelled patterns;
// the first match wins. All patterns capture the value in group 1.
const moneyGroup = `-?\$?\s?([\d,]+(?:\.\d{1,2})?)`
const dateGroup = `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`

var fieldPatterns = map[string][]*regexp.Regexp{
	"previous_balance": {
		regexp.MustCompile(`(?i)previous\s+balance\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)beginning\s+balance\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)prior\s+balance\s*:?\s*` + moneyGroup),
	},
	"purchases": {
		regexp.MustCompile(`(?i)purchases\s*(?:&\s*adjustments)?\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)new\s+charges\s*:?\s*` + moneyGroup),
	},
	"payments": {
		regexp.MustCompile(`(?i)payments\s*(?:&\s*credits)?\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)total\s+payments\s*:?\s*` + moneyGroup),
	},
	"interest_charged": {
		regexp.MustCompile(`(?i)interest\s+charged?\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)finance\s+charges?\s*:?\s*` + moneyGroup),
	},
	"interest_rate": {
		regexp.MustCompile(`(?i)annual\s+percentage\s+rate\s*(?:\(apr\))?\s*:?\s*([\d.]+)\s*%`),
		regexp.MustCompile(`(?i)\bapr\b\s*:?\s*([\d.]+)\s*%`),
	},
	"credit_limit": {
		regexp.MustCompile(`(?i)credit\s+limit\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)credit\s+line\s*:?\s*` + moneyGroup),
	},
	"available_credit": {
		regexp.MustCompile(`(?i)available\s+credit\s*:?\s*` + moneyGroup),
	},
	"minimum_payment": {
		regexp.MustCompile(`(?i)minimum\s+payment\s+due\s*:?\s*` + moneyGroup),
		regexp.MustCompile(`(?i)minimum\s+payment\s*:?\s*` + moneyGroup),
	},
	"statement_date": {
		regexp.MustCompile(`(?i)statement\s+(?:closing\s+)?date\s*:?\s*` + dateGroup),
		regexp.MustCompile(`(?i)closing\s+date\s*:?\s*` + dateGroup),
	},
	"due_date": {
		regexp.MustCompile(`(?i)(?:payment\s+)?due\s+date\s*:?\s*` + dateGroup),
	},
}

// statementDateLayouts accepted by labelled date fields.
var statementDateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
}

// ExtractFields locates labelled statement fields in free text. Missing
// labels leave fields nil; date values outside the sanity window of
// five years in the past to one year in the future are rejected.
func ExtractFields(text string) *StatementFields {
	fields := &StatementFields{}
	if strings.TrimSpace(text) == "" {
		return fields
	}

	fields.PreviousBalance = extractMoney(text, "previous_balance")
	fields.Purchases = extractMoney(text, "purchases")
	fields.Payments = extractMoney(text, "payments")
	fields.InterestCharged = extractMoney(text, "interest_charged")
	fields.InterestRate = extractMoney(text, "interest_rate")
	fields.CreditLimit = extractMoney(text, "credit_limit")
	fields.AvailableCredit = extractMoney(text, "available_credit")
	fields.MinimumPayment = extractMoney(text, "minimum_payment")
	fields.StatementDate = extractDate(text, "statement_date")
	fields.DueDate = extractDate(text, "due_date")

	return fields
}

func extractMoney(text, field string) *float64 {
	for _, pat := range fieldPatterns[field] {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := ParseAmount(m[1])
		if err != nil {
			continue
		}
		return &value
	}
	return nil
}

func extractDate(text, field string) *time.Time {
	for _, pat := range fieldPatterns[field] {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, layout := range statementDateLayouts {
			t, err := time.Parse(layout, m[1])
			if err != nil {
				continue
			}
			if !dateWithinSanityWindow(t) {
				return nil
			}
			return &t
		}
	}
	return nil
}

// dateWithinSanityWindow rejects dates more than 5 years in the past or
// more than 1 year in the future.
func dateWithinSanityWindow(t time.Time) bool {
	now := time.Now()
	return !t.Before(now.AddDate(-5, 0, 0)) && !t.After(now.AddDate(1, 0, 0))
}
