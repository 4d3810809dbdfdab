package services

import (
	"context"

	"github.com/sahmapp/sahm/internal/models"
)

// InvestorService defines the interface for investor operations
type InvestorService interface {
	CreateInvestor(ctx context.Context, investor *models.Investor) error
	GetInvestor(ctx context.Context, id string) (*models.Investor, error)
	ListInvestors(ctx context.Context, filter *models.InvestorFilter) ([]*models.Investor, error)
	UpdateInvestor(ctx context.Context, investor *models.Investor) error
	DeactivateInvestor(ctx context.Context, id string) error
}

// TransactionService defines the interface for transaction operations
type TransactionService interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
	GetTransactionCount(ctx context.Context, filter *models.TransactionFilter) (int, error)
}

// FinancialYearService defines the interface for financial year operations
type FinancialYearService interface {
	CreateFinancialYear(ctx context.Context, year *models.FinancialYear) error
	GetFinancialYear(ctx context.Context, id string) (*models.FinancialYear, error)
	ListFinancialYears(ctx context.Context) ([]*models.FinancialYear, error)
	UpdateFinancialYear(ctx context.Context, year *models.FinancialYear) error
}

// DistributionService defines the interface for distribution operations
type DistributionService interface {
	// Preview computes shares without persisting anything.
	Preview(ctx context.Context, yearID string, forceFullPeriod bool) (*models.DistributionResult, error)
	// Recalculate computes shares and overwrites the year's distributions.
	Recalculate(ctx context.Context, yearID string, forceFullPeriod bool) (*models.DistributionResult, error)
	// Approve transitions a pending year to distributed and credits balances.
	Approve(ctx context.Context, yearID string) (*models.FinancialYear, error)
	ListByYear(ctx context.Context, yearID string) ([]*models.Distribution, error)
	ListByInvestor(ctx context.Context, investorID string) ([]*models.Distribution, error)
}
