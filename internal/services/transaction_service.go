package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

type transactionService struct {
	transactions  repositories.TransactionRepository
	investors     repositories.InvestorRepository
	distributions repositories.DistributionRepository
	converter     *ConverterService
	logger        *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactions repositories.TransactionRepository,
	investors repositories.InvestorRepository,
	distributions repositories.DistributionRepository,
	converter *ConverterService,
	logger *zap.Logger,
) TransactionService {
	return &transactionService{
		transactions:  transactions,
		investors:     investors,
		distributions: distributions,
		converter:     converter,
		logger:        logger,
	}
}

// CreateTransaction validates and records a ledger entry and applies its
// effect: deposits and withdrawals move the investor's contributed capital
// (converted into the investor's currency when they differ), profit payouts
// draw down the investor's most recent approved distribution balance.
func (s *transactionService) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	investor, err := s.investors.GetByID(ctx, tx.InvestorID)
	if err != nil {
		return err
	}

	switch tx.Type {
	case models.TransactionDeposit, models.TransactionWithdrawal, models.TransactionRollover:
		amount := s.converter.Convert(tx.Amount, tx.Currency, investor.Currency)
		delta := amount
		if tx.Type == models.TransactionWithdrawal {
			delta = amount.Neg()
		}
		newBalance := investor.AmountContributed.Add(delta)
		if newBalance.IsNegative() {
			return &apperrors.ErrInsufficientBalance{
				Requested: amount.String(),
				Available: investor.AmountContributed.String(),
			}
		}
		investor.AmountContributed = newBalance
		if err := s.investors.Update(ctx, investor); err != nil {
			return err
		}

	case models.TransactionProfitPayout:
		if err := s.payOutProfit(ctx, investor, tx); err != nil {
			return err
		}
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return err
	}

	s.logger.Info("transaction recorded",
		zap.String("transaction_id", tx.ID),
		zap.String("investor_id", tx.InvestorID),
		zap.String("type", tx.Type),
		zap.String("amount", tx.Amount.String()))
	return nil
}

// payOutProfit draws the payout from the newest approved distribution with
// enough balance left.
func (s *transactionService) payOutProfit(ctx context.Context, investor *models.Investor, tx *models.Transaction) error {
	distributions, err := s.distributions.ListByInvestor(ctx, investor.ID)
	if err != nil {
		return err
	}

	amount := s.converter.Convert(tx.Amount, tx.Currency, investor.Currency)
	for i := len(distributions) - 1; i >= 0; i-- {
		dist := distributions[i]
		if dist.Status != models.DistributionApproved {
			continue
		}
		if dist.CurrentBalance.GreaterThanOrEqual(amount) {
			dist.CurrentBalance = dist.CurrentBalance.Sub(amount)
			if dist.CurrentBalance.IsZero() {
				dist.Status = models.DistributionDistributed
			}
			return s.distributions.Update(ctx, dist)
		}
	}
	return &apperrors.ErrInsufficientBalance{
		Requested: amount.String(),
		Available: "no approved distribution with sufficient balance",
	}
}

func (s *transactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

func (s *transactionService) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	return s.transactions.List(ctx, filter)
}

func (s *transactionService) GetTransactionCount(ctx context.Context, filter *models.TransactionFilter) (int, error) {
	return s.transactions.GetCount(ctx, filter)
}
