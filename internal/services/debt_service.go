package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
)

// debtService handles debt-related business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt creates a debt from manual-entry parameters.
func (s *debtService) CreateDebt(req CreateDebtRequest) (*models.Debt, error) {
	debt := &models.Debt{
		Name:           req.Name,
		Category:       req.Category,
		Balance:        req.Balance,
		MinimumPayment: req.MinimumPayment,
		InterestRate:   req.InterestRate,
		Institution:    req.Institution,
		AccountNumber:  req.AccountNumber,
		DueDay:         req.DueDay,
		LastUpdated:    time.Now(),
	}
	return s.insertDebt(debt)
}

// ImportDebt creates a debt from a complete record, keeping the
// caller-supplied identifier if one is set.
func (s *debtService) ImportDebt(debt *models.Debt) (*models.Debt, error) {
	if debt.LastUpdated.IsZero() {
		debt.LastUpdated = time.Now()
	}
	return s.insertDebt(debt)
}

func (s *debtService) insertDebt(debt *models.Debt) (*models.Debt, error) {
	if err := validateDebtFields(debt); err != nil {
		return nil, err
	}
	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// GetDebts returns a paginated list of debts.
func (s *debtService) GetDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID returns a debt by ID.
func (s *debtService) GetDebtByID(id string) (*models.Debt, error) {
	if id == "" {
		return nil, apperrors.ErrNoDebtID
	}
	var debt models.Debt
	if err := s.db.Where("id = ?", id).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrDebtNotFound, "Debt with ID %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt applies a partial update and refreshes LastUpdated.
func (s *debtService) UpdateDebt(id string, update DebtUpdate) (*models.Debt, error) {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Balance != nil {
		updates["balance"] = *update.Balance
	}
	if update.MinimumPayment != nil {
		updates["minimum_payment"] = *update.MinimumPayment
	}
	if update.InterestRate != nil {
		updates["interest_rate"] = *update.InterestRate
	}
	if update.Institution != nil {
		updates["institution"] = *update.Institution
	}
	if update.AccountNumber != nil {
		updates["account_number"] = *update.AccountNumber
	}
	if update.DueDay != nil {
		updates["due_day"] = *update.DueDay
	}

	if len(updates) == 0 {
		return debt, nil
	}
	updates["last_updated"] = time.Now()

	if err := applyDebtFieldChecks(debt, updates); err != nil {
		return nil, err
	}

	if err := s.db.Model(debt).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// DeleteDebt soft-deletes a debt and all statements referencing it.
func (s *debtService) DeleteDebt(id string) error {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var statementIDs []string
		if err := tx.Model(&models.Statement{}).Where("debt_id = ?", debt.ID).
			Pluck("id", &statementIDs).Error; err != nil {
			return err
		}
		if len(statementIDs) > 0 {
			if err := tx.Where("statement_id IN ?", statementIDs).
				Delete(&models.StatementEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Where("debt_id = ?", debt.ID).
				Delete(&models.Statement{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(debt).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateDebtFields enforces the debt invariants on a full record.
func validateDebtFields(debt *models.Debt) error {
	if debt.Balance < 0 || debt.MinimumPayment < 0 {
		return apperrors.ErrInvalidBalance
	}
	if debt.InterestRate < 0 || debt.InterestRate > 100 {
		return apperrors.ErrInvalidRate
	}
	if debt.DueDay != nil && (*debt.DueDay < 1 || *debt.DueDay > 31) {
		return apperrors.ErrInvalidDueDay
	}
	if !models.ValidDebtCategory(debt.Category) {
		return apperrors.WithMessagef(apperrors.ErrInvalidInput, "Unknown debt category %q", debt.Category)
	}
	return nil
}

// applyDebtFieldChecks enforces invariants against the pending updates map.
func applyDebtFieldChecks(debt *models.Debt, updates map[string]interface{}) error {
	check := *debt
	if v, ok := updates["balance"].(float64); ok {
		check.Balance = v
	}
	if v, ok := updates["minimum_payment"].(float64); ok {
		check.MinimumPayment = v
	}
	if v, ok := updates["interest_rate"].(float64); ok {
		check.InterestRate = v
	}
	if v, ok := updates["due_day"].(int); ok {
		check.DueDay = &v
	}
	if v, ok := updates["category"].(models.DebtCategory); ok {
		check.Category = v
	}
	return validateDebtFields(&check)
}
