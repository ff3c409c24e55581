package services

import (
	"time"

	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
)

// CreateDebtRequest carries the fields for creating a debt from manual
// entry. The service assigns the identifier and timestamps.
type CreateDebtRequest struct {
	Name           string
	Category       models.DebtCategory
	Balance        float64
	MinimumPayment float64
	InterestRate   float64
	Institution    string
	AccountNumber  string
	DueDay         *int
}

// DebtUpdate carries a partial update; nil fields are left untouched.
type DebtUpdate struct {
	Name           *string
	Category       *models.DebtCategory
	Balance        *float64
	MinimumPayment *float64
	InterestRate   *float64
	Institution    *string
	AccountNumber  *string
	DueDay         *int
}

// DebtServicer defines the contract for debt-related business logic.
// Creation is split into two explicit entry points: CreateDebt for
// parameter-style manual entry and ImportDebt for a complete record
// with a caller-supplied identifier.
type DebtServicer interface {
	CreateDebt(req CreateDebtRequest) (*models.Debt, error)
	ImportDebt(debt *models.Debt) (*models.Debt, error)
	GetDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(id string) (*models.Debt, error)
	UpdateDebt(id string, update DebtUpdate) (*models.Debt, error)
	DeleteDebt(id string) error
}

// ValidationResult is the outcome of validating one uploaded document.
// It is produced per call and never persisted.
type ValidationResult struct {
	IsValid          bool                    `json:"is_valid"`
	Errors           []string                `json:"errors"`
	Warnings         []string                `json:"warnings"`
	DetectedType     models.DetectedCategory `json:"detected_type"`
	TransactionCount int                     `json:"transaction_count"`
}

// DocumentServicer defines the contract for document upload and
// validation.
type DocumentServicer interface {
	UploadDocument(fileName, filePath string, docType models.DocumentType, size int64, debtID *string) (*models.Document, error)
	GetDocuments(page pagination.PageRequest) (*pagination.PageResponse[models.Document], error)
	GetDocumentByID(id string) (*models.Document, error)
	ValidateDocument(doc *models.Document) *ValidationResult
	SummarizeValidation(result *ValidationResult) string
	SummarizeDocument(doc *models.Document, result *ValidationResult) string
}

// StatementAnalysis is the derived financial delta between a statement
// and the current debt record.
type StatementAnalysis struct {
	NewBalance       float64 `json:"new_balance"`
	BalanceChange    float64 `json:"balance_change"`
	PaymentsMade     float64 `json:"payments_made"`
	PurchasesMade    float64 `json:"purchases_made"`
	InterestCharged  float64 `json:"interest_charged"`
	ShouldUpdateDebt bool    `json:"should_update_debt"`
}

// ReconcileResult is the outcome of running a statement through the
// reconciliation engine.
type ReconcileResult struct {
	Statement           *models.Statement  `json:"statement"`
	Analysis            *StatementAnalysis `json:"analysis,omitempty"`
	Updated             bool               `json:"updated"`
	ManualEntryRequired bool               `json:"manual_entry_required"`
}

// StatementServicer defines the contract for statement ingestion and
// reconciliation.
type StatementServicer interface {
	ProcessUploadedStatement(documentID string, debtID string) (*ReconcileResult, error)
	ProcessExistingStatement(statementID, debtID string) (*ReconcileResult, error)
	AnalyzeStatement(statement *models.Statement, debtID string) (*StatementAnalysis, error)
	GetStatements(debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Statement], error)
	GetStatementByID(id string) (*models.Statement, error)
}

// DebtPayoffPlan is the per-debt schedule within a payoff strategy.
type DebtPayoffPlan struct {
	DebtID         string    `json:"debt_id"`
	Order          int       `json:"order"`
	MonthlyPayment float64   `json:"monthly_payment"`
	PayoffMonths   int       `json:"payoff_months"`
	PayoffDate     time.Time `json:"payoff_date"`
	TotalInterest  float64   `json:"total_interest"`
	IsPriority     bool      `json:"is_priority"`
}

// PayoffStrategy is a full payoff schedule across all debts. It is
// recomputed on demand from the current debt set and never persisted.
type PayoffStrategy struct {
	Type               models.StrategyType `json:"type"`
	Plans              []DebtPayoffPlan    `json:"plans"`
	MonthlyPayment     float64             `json:"monthly_payment"`
	TotalInterestSaved float64             `json:"total_interest_saved"`
	PayoffDate         time.Time           `json:"payoff_date"`
}

// ConsolidationOpportunity is an advisory suggestion to combine
// high-rate debts at an assumed consolidation rate.
type ConsolidationOpportunity struct {
	DebtIDs           []string `json:"debt_ids"`
	CombinedBalance   float64  `json:"combined_balance"`
	WeightedRate      float64  `json:"weighted_rate"`
	ConsolidationRate float64  `json:"consolidation_rate"`
	NewMonthlyPayment float64  `json:"new_monthly_payment"`
	InterestSavings   float64  `json:"interest_savings"`
}

// StrategyServicer defines the contract for payoff-strategy math.
type StrategyServicer interface {
	CalculateSnowball(extraPayment float64) (*PayoffStrategy, error)
	FindConsolidationOpportunities() ([]ConsolidationOpportunity, error)
}

// SettingsUpdate carries a partial settings update.
type SettingsUpdate struct {
	ExtraPayment *float64
	Strategy     *models.StrategyType
	Currency     *string
}

// SettingsServicer defines the contract for app settings.
type SettingsServicer interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(update SettingsUpdate) (*models.Settings, error)
}
