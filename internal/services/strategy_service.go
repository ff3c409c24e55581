package services

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
)

const (
	// maxPayoffMonths caps schedules where the payment barely covers
	// interest; 50 years is effectively "never" for a consumer debt.
	maxPayoffMonths = 600

	// consolidationRateThreshold is the APR above which a debt is a
	// consolidation candidate.
	consolidationRateThreshold = 15.0

	// assumedConsolidationRate is the APR a typical consolidation loan
	// is assumed to carry.
	assumedConsolidationRate = 12.0
)

// strategyService computes payoff strategies from the current debt set.
type strategyService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStrategyService creates a new StrategyServicer.
func NewStrategyService(db *gorm.DB) StrategyServicer {
	return &strategyService{db: db, now: time.Now}
}

// CalculateSnowball builds a snowball schedule: debts are paid in
// ascending balance order, each receiving its minimum plus all freed-up
// payments from debts already retired. The schedule is recomputed from
// the stored debts on every call.
func (s *strategyService) CalculateSnowball(extraPayment float64) (*PayoffStrategy, error) {
	if extraPayment < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Extra payment must not be negative")
	}

	debts, err := s.activeDebts()
	if err != nil {
		return nil, err
	}

	strategy := &PayoffStrategy{
		Type:       models.StrategyTypeSnowball,
		Plans:      []DebtPayoffPlan{},
		PayoffDate: s.now(),
	}
	if len(debts) == 0 {
		return strategy, nil
	}

	// Smallest balance first; stable so equal balances keep insertion
	// order.
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].Balance < debts[j].Balance
	})

	cursor := s.now()
	availableExtra := extraPayment
	var totalMonthly, strategyInterest float64

	for i, debt := range debts {
		payment := debt.MinimumPayment + availableExtra
		months := payoffMonths(debt.Balance, payment, debt.InterestRate)
		cursor = cursor.AddDate(0, months, 0)

		plan := DebtPayoffPlan{
			DebtID:         debt.ID,
			Order:          i + 1,
			MonthlyPayment: payment,
			PayoffMonths:   months,
			PayoffDate:     cursor,
			TotalInterest:  totalInterest(debt.Balance, payment, months),
			IsPriority:     i == 0,
		}
		strategy.Plans = append(strategy.Plans, plan)

		totalMonthly += debt.MinimumPayment
		strategyInterest += plan.TotalInterest

		// Once this debt is gone its minimum rolls into the next one.
		availableExtra += debt.MinimumPayment
	}

	strategy.MonthlyPayment = totalMonthly + extraPayment
	strategy.PayoffDate = cursor
	strategy.TotalInterestSaved = math.Max(0, s.minimumOnlyInterest(debts)-strategyInterest)
	return strategy, nil
}

// FindConsolidationOpportunities suggests combining high-rate debts
// into a single loan at the assumed consolidation rate. Advisory only;
// nothing is persisted.
func (s *strategyService) FindConsolidationOpportunities() ([]ConsolidationOpportunity, error) {
	debts, err := s.activeDebts()
	if err != nil {
		return nil, err
	}

	var candidates []models.Debt
	for _, debt := range debts {
		if debt.InterestRate > consolidationRateThreshold {
			candidates = append(candidates, debt)
		}
	}
	if len(candidates) < 2 {
		return []ConsolidationOpportunity{}, nil
	}

	var combined, weighted float64
	ids := make([]string, 0, len(candidates))
	for _, debt := range candidates {
		combined += debt.Balance
		weighted += debt.Balance * debt.InterestRate
		ids = append(ids, debt.ID)
	}
	if combined <= 0 {
		return []ConsolidationOpportunity{}, nil
	}

	weightedRate := weighted / combined
	if weightedRate <= assumedConsolidationRate {
		return []ConsolidationOpportunity{}, nil
	}

	return []ConsolidationOpportunity{{
		DebtIDs:           ids,
		CombinedBalance:   combined,
		WeightedRate:      weightedRate,
		ConsolidationRate: assumedConsolidationRate,
		NewMonthlyPayment: combined * 0.02,
		InterestSavings:   (weightedRate - assumedConsolidationRate) * combined / 100,
	}}, nil
}

func (s *strategyService) activeDebts() ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("balance > 0").Order("created_at").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

// minimumOnlyInterest is the baseline: every debt paid with only its
// minimum, no rollover.
func (s *strategyService) minimumOnlyInterest(debts []models.Debt) float64 {
	var total float64
	for _, debt := range debts {
		months := payoffMonths(debt.Balance, debt.MinimumPayment, debt.InterestRate)
		total += totalInterest(debt.Balance, debt.MinimumPayment, months)
	}
	return total
}

// payoffMonths inverts the amortization formula to get the number of
// monthly payments needed to retire balance at the given annual rate.
// A payment at or below the monthly interest never converges and is
// capped at maxPayoffMonths.
func payoffMonths(balance, payment, annualRate float64) int {
	if balance <= 0 {
		return 0
	}
	if payment <= 0 {
		return maxPayoffMonths
	}

	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return int(math.Ceil(balance / payment))
	}

	ratio := 1 - balance*monthlyRate/payment
	if ratio <= 0 {
		return maxPayoffMonths
	}

	months := int(math.Ceil(-math.Log(ratio) / math.Log(1+monthlyRate)))
	if months > maxPayoffMonths {
		return maxPayoffMonths
	}
	return months
}

// totalInterest approximates total interest as payments made beyond the
// principal. The final month is treated as a full payment, which
// slightly overstates interest; floored at zero for instant payoffs.
func totalInterest(balance, payment float64, months int) float64 {
	return math.Max(0, payment*float64(months)-balance)
}
