// Package parser converts raw statement documents into structured
// transactions, payments, and account-level fields.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"debtfreepro/internal/models"
)

// ErrHeadersNotRecognized is returned when the CSV header row does not
// match any of the accepted header-set shapes.
var ErrHeadersNotRecognized = errors.New("CSV headers not recognized")

// Entry is a single parsed purchase or payment row.
type Entry struct {
	Date        time.Time
	Amount      float64
	Description string
	Category    models.PurchaseCategory // purchases only
}

// ParsedStatement is the result of parsing one CSV document.
type ParsedStatement struct {
	Purchases []Entry
	Payments  []Entry
	// Balance is the sum of purchase amounts. Payments are tracked
	// separately and are not netted out of this figure.
	Balance     float64
	Diagnostics []string // per-row drop reasons, non-fatal
}

// columnSpec identifies a semantic column by an ordered list of
// candidate header substrings.
type columnSpec struct {
	key        string
	candidates []string
}

// headerSets are the accepted CSV header shapes, checked in order.
// A set matches when every column resolves against the header row by
// case-insensitive substring match; column order within the row is free.
var headerSets = [][]columnSpec{
	{
		{key: "date", candidates: []string{"date"}},
		{key: "amount", candidates: []string{"amount"}},
		{key: "description", candidates: []string{"description"}},
	},
	{
		{key: "date", candidates: []string{"transaction_date"}},
		{key: "amount", candidates: []string{"transaction_amount"}},
		{key: "description", candidates: []string{"description"}},
	},
	{
		{key: "date", candidates: []string{"posted_date"}},
		{key: "amount", candidates: []string{"amount"}},
		{key: "description", candidates: []string{"merchant"}},
	},
	{
		{key: "date", candidates: []string{"date"}},
		{key: "debit", candidates: []string{"debit"}},
		{key: "credit", candidates: []string{"credit"}},
		{key: "description", candidates: []string{"description"}},
	},
}

// findColumn returns the index of the first header cell containing one
// of the candidate substrings, or -1.
func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, cell := range header {
			if strings.Contains(strings.ToLower(strings.TrimSpace(cell)), cand) {
				return i
			}
		}
	}
	return -1
}

// matchHeaderSet resolves the header row against the accepted header
// sets in order, returning the semantic-column index map of the first
// set whose columns all resolve.
func matchHeaderSet(header []string) (map[string]int, bool) {
	for _, set := range headerSets {
		cols := make(map[string]int, len(set))
		matched := true
		for _, spec := range set {
			idx := findColumn(header, spec.candidates)
			if idx < 0 {
				matched = false
				break
			}
			cols[spec.key] = idx
		}
		if matched {
			return cols, true
		}
	}
	return nil, false
}

// csvDateLayouts are accepted transaction date formats, tried in order.
var csvDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
}

// ParseDate parses a transaction date cell.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseAmount parses a currency cell, stripping dollar signs and
// thousands-separator commas. The sign is preserved.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("empty amount")
	}
	return strconv.ParseFloat(s, 64)
}

// ParseCSV parses comma-delimited statement content. The first row must
// be a recognized header. Rows with unparseable dates or amounts are
// dropped with a diagnostic rather than failing the whole file.
func ParseCSV(content string) (*ParsedStatement, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV content is empty")
	}

	cols, ok := matchHeaderSet(records[0])
	if !ok {
		return nil, ErrHeadersNotRecognized
	}

	result := &ParsedStatement{}
	for i, row := range records[1:] {
		entry, isPayment, err := parseRow(row, cols)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics,
				fmt.Sprintf("row %d skipped: %v", i+2, err))
			continue
		}
		if isPayment {
			result.Payments = append(result.Payments, entry)
		} else {
			entry.Category = CategorizePurchase(entry.Description)
			result.Purchases = append(result.Purchases, entry)
			result.Balance += entry.Amount
		}
	}

	return result, nil
}

// parseRow classifies one data row as a purchase or a payment.
func parseRow(row []string, cols map[string]int) (Entry, bool, error) {
	dateIdx := cols["date"]
	if dateIdx >= len(row) {
		return Entry{}, false, errors.New("missing date cell")
	}
	date, err := ParseDate(row[dateIdx])
	if err != nil {
		return Entry{}, false, err
	}

	entry := Entry{Date: date}
	if idx, ok := cols["description"]; ok && idx < len(row) {
		entry.Description = strings.TrimSpace(row[idx])
	}

	if debitIdx, ok := cols["debit"]; ok {
		// Separate debit/credit columns: a positive credit is a
		// payment; otherwise the debit value is a purchase.
		creditIdx := cols["credit"]
		credit, creditErr := amountAt(row, creditIdx)
		if creditErr == nil && credit > 0 {
			entry.Amount = credit
			return entry, true, nil
		}
		debit, debitErr := amountAt(row, debitIdx)
		if debitErr != nil {
			if creditErr != nil {
				return Entry{}, false, fmt.Errorf("no parseable debit or credit: %v", debitErr)
			}
			return Entry{}, false, debitErr
		}
		entry.Amount = debit
		return entry, false, nil
	}

	amount, err := amountAt(row, cols["amount"])
	if err != nil {
		return Entry{}, false, err
	}
	if amount < 0 {
		entry.Amount = -amount
		return entry, true, nil
	}
	entry.Amount = amount
	return entry, false, nil
}

func amountAt(row []string, idx int) (float64, error) {
	if idx >= len(row) {
		return 0, errors.New("missing amount cell")
	}
	return ParseAmount(row[idx])
}
