package parser

import (
	"strings"

	"debtfreepro/internal/models"
)

// categoryKeywords maps description keywords to a purchase category.
// First matching group wins.
var categoryKeywords = []struct {
	keywords []string
	category models.PurchaseCategory
}{
	{[]string{"grocery", "food", "restaurant"}, models.PurchaseCategoryFood},
	{[]string{"gas", "fuel", "auto"}, models.PurchaseCategoryTransportation},
	{[]string{"store", "retail", "shop"}, models.PurchaseCategoryShopping},
	{[]string{"payment", "transfer"}, models.PurchaseCategoryPayment},
}

// CategorizePurchase derives a purchase category from the free-text
// description by keyword matching. Unmatched descriptions are Other.
func CategorizePurchase(description string) models.PurchaseCategory {
	desc := strings.ToLower(description)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(desc, kw) {
				return group.category
			}
		}
	}
	return models.PurchaseCategoryOther
}
