package parser

import (
	"testing"
	"time"
)

const sampleStatementText = `
ACME BANK CREDIT CARD STATEMENT
Statement Date: 1/15/2024
Payment Due Date: 2/10/2024
Previous Balance: $1,000.00
Payments & Credits: $200.00
Purchases & Adjustments: $350.25
Interest Charged: $15.75
Minimum Payment Due: $35.00
Credit Limit: $5,000.00
Available Credit: $3,834.00
Annual Percentage Rate (APR): 19.99%
`

func TestExtractFields(t *testing.T) {
	t.Run("full_statement", func(t *testing.T) {
		fields := ExtractFields(sampleStatementText)

		assertMoney(t, fields.PreviousBalance, 1000.00, "previous balance")
		assertMoney(t, fields.Payments, 200.00, "payments")
		assertMoney(t, fields.Purchases, 350.25, "purchases")
		assertMoney(t, fields.InterestCharged, 15.75, "interest charged")
		assertMoney(t, fields.MinimumPayment, 35.00, "minimum payment")
		assertMoney(t, fields.CreditLimit, 5000.00, "credit limit")
		assertMoney(t, fields.AvailableCredit, 3834.00, "available credit")
		assertMoney(t, fields.InterestRate, 19.99, "interest rate")

		if fields.StatementDate == nil {
			t.Fatal("expected statement date")
		}
		if fields.DueDate == nil {
			t.Fatal("expected due date")
		}
	})

	t.Run("derived_balance", func(t *testing.T) {
		fields := ExtractFields(sampleStatementText)

		derived := fields.DerivedBalance()
		if derived == nil {
			t.Fatal("expected derived balance")
		}
		// previous + purchases + interest - payments
		want := 1000.00 + 350.25 + 15.75 - 200.00
		if !floatEquals(*derived, want) {
			t.Errorf("expected derived balance %v, got %v", want, *derived)
		}
	})

	t.Run("derived_balance_needs_all_components", func(t *testing.T) {
		fields := ExtractFields("Previous Balance: $500.00\nPurchases: $100.00")
		if fields.DerivedBalance() != nil {
			t.Error("expected nil derived balance with missing components")
		}
	})

	t.Run("minimum_payment_not_confused_with_payments", func(t *testing.T) {
		fields := ExtractFields("Minimum Payment Due: $35.00")
		if fields.Payments != nil {
			t.Errorf("minimum payment line leaked into payments: %v", *fields.Payments)
		}
		assertMoney(t, fields.MinimumPayment, 35.00, "minimum payment")
	})

	t.Run("empty_text", func(t *testing.T) {
		fields := ExtractFields("   \n  ")
		if fields.HasData() {
			t.Error("expected no data from blank text")
		}
	})

	t.Run("date_sanity_window", func(t *testing.T) {
		// Six years back is outside the window; the field stays nil.
		old := time.Now().AddDate(-6, 0, 0)
		text := "Statement Date: " + old.Format("1/2/2006")
		fields := ExtractFields(text)
		if fields.StatementDate != nil {
			t.Errorf("expected stale statement date to be rejected, got %v", *fields.StatementDate)
		}

		// Two years ahead is also rejected.
		future := time.Now().AddDate(2, 0, 0)
		text = "Payment Due Date: " + future.Format("1/2/2006")
		fields = ExtractFields(text)
		if fields.DueDate != nil {
			t.Errorf("expected far-future due date to be rejected, got %v", *fields.DueDate)
		}

		// A recent date passes.
		recent := time.Now().AddDate(0, -1, 0)
		text = "Statement Date: " + recent.Format("1/2/2006")
		fields = ExtractFields(text)
		if fields.StatementDate == nil {
			t.Error("expected recent statement date to be accepted")
		}
	})
}

func assertMoney(t *testing.T, got *float64, want float64, label string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected %v, got nil", label, want)
	}
	if !floatEquals(*got, want) {
		t.Errorf("%s: expected %v, got %v", label, want, *got)
	}
}
