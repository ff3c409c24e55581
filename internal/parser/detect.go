package parser

import (
	"strings"

	"debtfreepro/internal/models"
)

// creditCardIndicators and lineOfCreditIndicators are scored against
// document text; the set with more keyword hits wins, ties going to
// credit card.
var (
	creditCardIndicators = []string{
		"credit card", "card ending", "payment due", "minimum payment",
		"statement balance", "available credit",
	}
	lineOfCreditIndicators = []string{
		"line of credit", "credit line", "revolving credit",
		"available balance", "credit limit",
	}
)

// DetectDocumentCategory classifies statement text as credit card or
// line of credit by keyword scoring. Zero hits on both sets is unknown.
func DetectDocumentCategory(text string) models.DetectedCategory {
	lower := strings.ToLower(text)

	ccScore := countHits(lower, creditCardIndicators)
	locScore := countHits(lower, lineOfCreditIndicators)

	switch {
	case ccScore == 0 && locScore == 0:
		return models.DetectedUnknown
	case locScore > ccScore:
		return models.DetectedLineOfCredit
	default:
		return models.DetectedCreditCard
	}
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}
