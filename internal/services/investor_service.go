package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

type investorService struct {
	investors     repositories.InvestorRepository
	transactions  repositories.TransactionRepository
	distributions repositories.DistributionRepository
	logger        *zap.Logger
}

// NewInvestorService creates a new investor service
func NewInvestorService(
	investors repositories.InvestorRepository,
	transactions repositories.TransactionRepository,
	distributions repositories.DistributionRepository,
	logger *zap.Logger,
) InvestorService {
	return &investorService{
		investors:     investors,
		transactions:  transactions,
		distributions: distributions,
		logger:        logger,
	}
}

// CreateInvestor creates the investor and, when an opening contribution is
// given, records it as the first deposit so the ledger matches the balance.
func (s *investorService) CreateInvestor(ctx context.Context, investor *models.Investor) error {
	if investor.ID == "" {
		investor.ID = uuid.NewString()
	}
	investor.IsActive = true
	if err := investor.Validate(); err != nil {
		return err
	}

	if err := s.investors.Create(ctx, investor); err != nil {
		return err
	}

	if investor.AmountContributed.IsPositive() {
		note := "Opening contribution"
		err := s.transactions.Create(ctx, &models.Transaction{
			ID:         uuid.NewString(),
			InvestorID: investor.ID,
			Type:       models.TransactionDeposit,
			Amount:     investor.AmountContributed,
			Currency:   investor.Currency,
			Date:       investor.StartDate,
			Notes:      &note,
		})
		if err != nil {
			return err
		}
	}

	s.logger.Info("investor created",
		zap.String("investor_id", investor.ID),
		zap.String("full_name", investor.FullName))
	return nil
}

func (s *investorService) GetInvestor(ctx context.Context, id string) (*models.Investor, error) {
	return s.investors.GetByID(ctx, id)
}

func (s *investorService) ListInvestors(ctx context.Context, filter *models.InvestorFilter) ([]*models.Investor, error) {
	return s.investors.List(ctx, filter)
}

// UpdateInvestor updates mutable investor fields. StartDate is the profit
// accrual anchor and never changes after creation; contributed capital only
// moves through transactions.
func (s *investorService) UpdateInvestor(ctx context.Context, investor *models.Investor) error {
	existing, err := s.investors.GetByID(ctx, investor.ID)
	if err != nil {
		return err
	}
	investor.StartDate = existing.StartDate
	investor.AmountContributed = existing.AmountContributed
	// Deactivation goes through DeactivateInvestor, not a field update.
	investor.IsActive = existing.IsActive
	if err := investor.Validate(); err != nil {
		return err
	}
	return s.investors.Update(ctx, investor)
}

// DeactivateInvestor soft-deletes: the investor stops counting toward new
// recalculations but keeps all historical records, and their distributions
// are flagged inactive for de-emphasized display.
func (s *investorService) DeactivateInvestor(ctx context.Context, id string) error {
	if err := s.investors.Deactivate(ctx, id); err != nil {
		return err
	}
	if err := s.distributions.MarkInactiveByInvestor(ctx, id); err != nil {
		return err
	}
	s.logger.Info("investor deactivated", zap.String("investor_id", id), zap.Time("at", time.Now()))
	return nil
}
