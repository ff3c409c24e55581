package services

import (
	"errors"
	"math"
	"os"
	"time"

	"gorm.io/gorm"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/extractor"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/parser"
)

// balanceEpsilon is the threshold below which a balance change is
// considered zero. Any real change, a single cent included, triggers a
// debt update.
const balanceEpsilon = 1e-9

// statementService handles statement ingestion and reconciliation.
type statementService struct {
	db        *gorm.DB
	extractor TextExtractor
}

// NewStatementService creates a new StatementServicer.
func NewStatementService(db *gorm.DB, ex TextExtractor) StatementServicer {
	return &statementService{db: db, extractor: ex}
}

// ProcessUploadedStatement ingests an uploaded document into a statement
// and reconciles it against the target debt. When the document is a PDF
// with no extractable text, the placeholder statement is stored unlinked
// and reconciliation is skipped so the caller can drive manual entry.
func (s *statementService) ProcessUploadedStatement(documentID string, debtID string) (*ReconcileResult, error) {
	var doc models.Document
	if err := s.db.Where("id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrDocumentNotFound, "Document with ID %s not found", documentID)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if debtID == "" && doc.DebtID != nil {
		debtID = *doc.DebtID
	}

	statement, manualEntry, err := s.ingestDocument(&doc)
	if err != nil {
		return nil, err
	}

	if manualEntry {
		// Nothing to reconcile; surface the placeholder to the caller.
		statement.DebtID = ""
		if err := s.saveStatement(statement, &doc); err != nil {
			return nil, err
		}
		return &ReconcileResult{Statement: statement, ManualEntryRequired: true}, nil
	}

	statement.DebtID = debtID
	if err := s.saveStatement(statement, &doc); err != nil {
		return nil, err
	}

	if debtID == "" {
		// Parsed but not yet owned by a debt; link later via
		// ProcessExistingStatement.
		return &ReconcileResult{Statement: statement}, nil
	}

	return s.reconcile(statement, debtID)
}

// ProcessExistingStatement links a stored statement to a debt and
// reconciles it. Re-linking a previously-unlinked or differently-linked
// statement mutates the statement in place.
func (s *statementService) ProcessExistingStatement(statementID, debtID string) (*ReconcileResult, error) {
	if debtID == "" {
		return nil, apperrors.ErrNoDebtID
	}

	if _, err := s.findDebt(debtID); err != nil {
		return nil, err
	}

	statement, err := s.GetStatementByID(statementID)
	if err != nil {
		return nil, err
	}

	statement.DebtID = debtID
	if err := s.db.Model(statement).Update("debt_id", debtID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.reconcile(statement, debtID)
}

// AnalyzeStatement computes the financial delta between a statement and
// the stored debt. It performs no writes and is idempotent for the same
// statement and stored balance.
func (s *statementService) AnalyzeStatement(statement *models.Statement, debtID string) (*StatementAnalysis, error) {
	debt, err := s.findDebt(debtID)
	if err != nil {
		return nil, err
	}

	analysis := &StatementAnalysis{
		NewBalance:      statement.Balance,
		BalanceChange:   statement.Balance - debt.Balance,
		PaymentsMade:    sumEntries(statement.Payments()),
		PurchasesMade:   sumEntries(statement.Purchases()),
		InterestCharged: statement.InterestCharged,
	}
	analysis.ShouldUpdateDebt = math.Abs(analysis.BalanceChange) > balanceEpsilon
	return analysis, nil
}

// GetStatements lists statements, optionally filtered to one debt.
func (s *statementService) GetStatements(debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Statement], error) {
	page.Defaults()

	base := s.db.Model(&models.Statement{})
	if debtID != "" {
		base = base.Where("debt_id = ?", debtID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var statements []models.Statement
	if err := base.Preload("Entries").Order("imported_at desc").
		Scopes(pagination.Paginate(page)).Find(&statements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(statements, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStatementByID returns a statement with its entries.
func (s *statementService) GetStatementByID(id string) (*models.Statement, error) {
	var statement models.Statement
	if err := s.db.Preload("Entries").Where("id = ?", id).First(&statement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrStatementNotFound, "Statement with ID %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &statement, nil
}

// reconcile analyzes a statement against a debt and persists the update
// when the reconciliation policy calls for one.
func (s *statementService) reconcile(statement *models.Statement, debtID string) (*ReconcileResult, error) {
	analysis, err := s.AnalyzeStatement(statement, debtID)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{Statement: statement, Analysis: analysis}
	if !analysis.ShouldUpdateDebt {
		return result, nil
	}

	// Only balance and minimum payment are carried from the statement;
	// institution, rate, and the rest stay as entered.
	err = s.db.Model(&models.Debt{}).Where("id = ?", debtID).Updates(map[string]interface{}{
		"balance":         analysis.NewBalance,
		"minimum_payment": statement.MinimumPayment,
		"last_updated":    time.Now(),
	}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result.Updated = true
	return result, nil
}

// ingestDocument turns an uploaded document into an unsaved statement.
// The bool result reports whether manual entry is required.
func (s *statementService) ingestDocument(doc *models.Document) (*models.Statement, bool, error) {
	switch doc.Type {
	case models.DocumentTypeCSV:
		statement, err := s.ingestCSV(doc)
		return statement, false, err
	case models.DocumentTypePDF:
		return s.ingestPDF(doc)
	default:
		return nil, false, apperrors.ErrUnsupportedFileType
	}
}

func (s *statementService) ingestCSV(doc *models.Document) (*models.Statement, error) {
	content, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidDocument, err)
	}

	parsed, err := parser.ParseCSV(string(content))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidDocument, err)
	}

	statement := &models.Statement{
		Balance:    parsed.Balance,
		FileName:   doc.FileName,
		ImportedAt: time.Now(),
	}
	for _, p := range parsed.Purchases {
		statement.Entries = append(statement.Entries, models.StatementEntry{
			Kind:        models.EntryKindPurchase,
			Date:        p.Date,
			Amount:      p.Amount,
			Description: p.Description,
			Category:    p.Category,
		})
	}
	for _, p := range parsed.Payments {
		statement.Entries = append(statement.Entries, models.StatementEntry{
			Kind:        models.EntryKindPayment,
			Date:        p.Date,
			Amount:      p.Amount,
			Description: p.Description,
		})
	}

	// The latest transaction date stands in for the statement date; CSV
	// exports carry no account-level fields.
	statement.StatementDate = latestEntryDate(statement.Entries, statement.ImportedAt)
	return statement, nil
}

func (s *statementService) ingestPDF(doc *models.Document) (*models.Statement, bool, error) {
	text, err := s.extractor.ExtractText(doc.FilePath)
	if err != nil {
		if extractor.IsManualEntry(err) {
			// Placeholder carrying only the file name; balance zero.
			return &models.Statement{
				FileName:   doc.FileName,
				ImportedAt: time.Now(),
			}, true, nil
		}
		return nil, false, apperrors.Wrap(apperrors.ErrInvalidDocument, err)
	}

	fields := parser.ExtractFields(text)
	if !fields.HasData() {
		return &models.Statement{
			FileName:   doc.FileName,
			ImportedAt: time.Now(),
		}, true, nil
	}

	statement := &models.Statement{
		FileName:        doc.FileName,
		ImportedAt:      time.Now(),
		CreditLimit:     fields.CreditLimit,
		AvailableCredit: fields.AvailableCredit,
		InterestRateAPR: fields.InterestRate,
	}
	if derived := fields.DerivedBalance(); derived != nil {
		statement.Balance = *derived
	}
	if fields.MinimumPayment != nil {
		statement.MinimumPayment = *fields.MinimumPayment
	}
	if fields.InterestCharged != nil {
		statement.InterestCharged = *fields.InterestCharged
	}
	if fields.StatementDate != nil {
		statement.StatementDate = *fields.StatementDate
	}
	if fields.DueDate != nil {
		statement.DueDate = *fields.DueDate
	}
	return statement, false, nil
}

// saveStatement persists the statement with its entries and marks the
// source document processed.
func (s *statementService) saveStatement(statement *models.Statement, doc *models.Document) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(statement).Error; err != nil {
			return err
		}
		return tx.Model(doc).Update("processed", true).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *statementService) findDebt(debtID string) (*models.Debt, error) {
	if debtID == "" {
		return nil, apperrors.ErrNoDebtID
	}
	var debt models.Debt
	if err := s.db.Where("id = ?", debtID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrDebtNotFound, "Debt with ID %s not found", debtID)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

func sumEntries(entries []models.StatementEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

func latestEntryDate(entries []models.StatementEntry, fallback time.Time) time.Time {
	latest := time.Time{}
	for _, e := range entries {
		if e.Date.After(latest) {
			latest = e.Date
		}
	}
	if latest.IsZero() {
		return fallback
	}
	return latest
}
