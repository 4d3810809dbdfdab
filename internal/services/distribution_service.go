package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

type distributionService struct {
	years         repositories.FinancialYearRepository
	investors     repositories.InvestorRepository
	distributions repositories.DistributionRepository
	transactions  repositories.TransactionRepository
	calculator    *DistributionCalculator
	logger        *zap.Logger

	// Overlapping recalculations race; only the newest pass may persist.
	mu      sync.Mutex
	nextSeq uint64
	applied map[string]uint64
}

// NewDistributionService creates a new distribution service
func NewDistributionService(
	years repositories.FinancialYearRepository,
	investors repositories.InvestorRepository,
	distributions repositories.DistributionRepository,
	transactions repositories.TransactionRepository,
	logger *zap.Logger,
) DistributionService {
	return &distributionService{
		years:         years,
		investors:     investors,
		distributions: distributions,
		transactions:  transactions,
		calculator:    NewDistributionCalculator(),
		logger:        logger,
		applied:       make(map[string]uint64),
	}
}

func (s *distributionService) Preview(ctx context.Context, yearID string, forceFullPeriod bool) (*models.DistributionResult, error) {
	year, investors, err := s.loadInputs(ctx, yearID)
	if err != nil {
		return nil, err
	}
	return s.calculator.Compute(year, investors, forceFullPeriod, time.Now()), nil
}

func (s *distributionService) Recalculate(ctx context.Context, yearID string, forceFullPeriod bool) (*models.DistributionResult, error) {
	year, investors, err := s.loadInputs(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if year.Status != models.YearStatusPending {
		return nil, apperrors.ErrYearApproved
	}

	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	now := time.Now()
	result := s.calculator.Compute(year, investors, forceFullPeriod, now)

	rows := make([]*models.Distribution, 0, len(result.PerInvestor))
	for _, share := range result.PerInvestor {
		if share.Inactive {
			continue
		}
		totalDays := result.Summary.TotalDays
		if result.Summary.Method == models.MethodDailyRate {
			totalDays = share.ElapsedDays
		}
		rows = append(rows, &models.Distribution{
			ID:              uuid.NewString(),
			FinancialYearID: year.ID,
			InvestorID:      share.InvestorID,
			Calculation: models.Calculation{
				InvestmentAmount:    share.InvestmentAmount,
				TotalDays:           totalDays,
				DailyProfitRate:     share.DailyProfitRate,
				CalculatedProfit:    share.Profit,
				Method:              result.Summary.Method,
				LastCalculationDate: now,
			},
			Status:         models.DistributionPending,
			CurrentBalance: decimal.Zero,
		})
	}

	// Persist under the sequence guard so a slow earlier pass cannot
	// overwrite the rows a newer pass already wrote.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied[yearID] > seq {
		s.logger.Warn("discarding stale recalculation",
			zap.String("financial_year_id", yearID),
			zap.Uint64("seq", seq),
			zap.Uint64("applied", s.applied[yearID]))
		return nil, apperrors.ErrStaleCalculation
	}
	if err := s.distributions.ReplaceForYear(ctx, yearID, rows); err != nil {
		return nil, fmt.Errorf("failed to persist distributions: %w", err)
	}
	s.applied[yearID] = seq

	s.logger.Info("distributions recalculated",
		zap.String("financial_year_id", yearID),
		zap.String("method", result.Summary.Method),
		zap.Int("investors", result.Summary.ActiveInvestors),
		zap.String("total_distributed", result.Summary.TotalDistributed.String()))
	return result, nil
}

// Approve transitions a pending year to distributed. Each pending
// distribution is approved and its calculated profit credited to the
// balance; when rollover is enabled, the configured percentage of the
// profit is moved into the investor's contributed capital instead and
// recorded as a rollover transaction.
func (s *distributionService) Approve(ctx context.Context, yearID string) (*models.FinancialYear, error) {
	year, err := s.years.GetByID(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if year.Status != models.YearStatusPending {
		return nil, apperrors.ErrYearApproved
	}

	distributions, err := s.distributions.ListByYear(ctx, yearID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	approved := 0
	for _, dist := range distributions {
		if dist.Status != models.DistributionPending {
			continue
		}

		balance := dist.Calculation.CalculatedProfit
		if year.RolloverEnabled && year.RolloverPercentage.IsPositive() && balance.IsPositive() {
			rollover := balance.Mul(year.RolloverPercentage).Div(oneHundred).Round(profitPrecision)
			if rollover.IsPositive() {
				if err := s.rolloverIntoCapital(ctx, dist.InvestorID, rollover, year, now); err != nil {
					return nil, err
				}
				balance = balance.Sub(rollover)
			}
		}

		dist.Status = models.DistributionApproved
		dist.CurrentBalance = balance
		if err := s.distributions.Update(ctx, dist); err != nil {
			return nil, err
		}
		approved++
	}

	year.Status = models.YearStatusDistributed
	year.ApprovedAt = &now
	if err := s.years.Update(ctx, year); err != nil {
		return nil, err
	}

	s.logger.Info("financial year approved",
		zap.String("financial_year_id", yearID),
		zap.String("period_name", year.PeriodName),
		zap.Int("distributions_approved", approved))
	return year, nil
}

func (s *distributionService) ListByYear(ctx context.Context, yearID string) ([]*models.Distribution, error) {
	if _, err := s.years.GetByID(ctx, yearID); err != nil {
		return nil, err
	}
	return s.distributions.ListByYear(ctx, yearID)
}

func (s *distributionService) ListByInvestor(ctx context.Context, investorID string) ([]*models.Distribution, error) {
	return s.distributions.ListByInvestor(ctx, investorID)
}

func (s *distributionService) loadInputs(ctx context.Context, yearID string) (*models.FinancialYear, []*models.Investor, error) {
	year, err := s.years.GetByID(ctx, yearID)
	if err != nil {
		return nil, nil, err
	}
	investors, err := s.investors.List(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return year, investors, nil
}

func (s *distributionService) rolloverIntoCapital(ctx context.Context, investorID string, amount decimal.Decimal, year *models.FinancialYear, now time.Time) error {
	investor, err := s.investors.GetByID(ctx, investorID)
	if err != nil {
		return err
	}
	investor.AmountContributed = investor.AmountContributed.Add(amount)
	if err := s.investors.Update(ctx, investor); err != nil {
		return err
	}

	note := fmt.Sprintf("Profit rollover from %s", year.PeriodName)
	return s.transactions.Create(ctx, &models.Transaction{
		ID:         uuid.NewString(),
		InvestorID: investorID,
		Type:       models.TransactionRollover,
		Amount:     amount,
		Currency:   year.Currency,
		Date:       now,
		Notes:      &note,
	})
}
