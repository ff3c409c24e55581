package parser

import (
	"testing"

	"debtfreepro/internal/models"
)

func TestDetectDocumentCategory(t *testing.T) {
	t.Run("credit_card", func(t *testing.T) {
		text := "Credit Card Statement. Minimum Payment Due: $35. Statement balance shown below."
		if got := DetectDocumentCategory(text); got != models.DetectedCreditCard {
			t.Errorf("expected credit_card, got %s", got)
		}
	})

	t.Run("line_of_credit", func(t *testing.T) {
		text := "Line of Credit account summary. Revolving credit. Available balance: $2,000. Credit line: $10,000."
		if got := DetectDocumentCategory(text); got != models.DetectedLineOfCredit {
			t.Errorf("expected line_of_credit, got %s", got)
		}
	})

	t.Run("ties_go_to_credit_card", func(t *testing.T) {
		text := "minimum payment and credit limit"
		if got := DetectDocumentCategory(text); got != models.DetectedCreditCard {
			t.Errorf("expected tie to resolve to credit_card, got %s", got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if got := DetectDocumentCategory("quarterly sales report"); got != models.DetectedUnknown {
			t.Errorf("expected unknown, got %s", got)
		}
	})
}

func TestCategorizePurchase(t *testing.T) {
	cases := []struct {
		description string
		want        models.PurchaseCategory
	}{
		{"WHOLE FOODS MARKET", models.PurchaseCategoryFood},
		{"SHELL FUEL #123", models.PurchaseCategoryTransportation},
		{"RETAIL OUTLET", models.PurchaseCategoryShopping},
		{"BALANCE TRANSFER", models.PurchaseCategoryPayment},
		{"ACME WIDGETS", models.PurchaseCategoryOther},
	}
	for _, c := range cases {
		if got := CategorizePurchase(c.description); got != c.want {
			t.Errorf("CategorizePurchase(%q) = %s, want %s", c.description, got, c.want)
		}
	}
}
