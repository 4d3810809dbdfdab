package repositories

import (
	"context"

	"github.com/sahmapp/sahm/internal/models"
)

// InvestorRepository defines the interface for investor data operations
type InvestorRepository interface {
	Create(ctx context.Context, investor *models.Investor) error
	GetByID(ctx context.Context, id string) (*models.Investor, error)
	List(ctx context.Context, filter *models.InvestorFilter) ([]*models.Investor, error)
	Update(ctx context.Context, investor *models.Investor) error
	Deactivate(ctx context.Context, id string) error
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
	GetCount(ctx context.Context, filter *models.TransactionFilter) (int, error)
}

// FinancialYearRepository defines the interface for financial year data operations
type FinancialYearRepository interface {
	Create(ctx context.Context, year *models.FinancialYear) error
	GetByID(ctx context.Context, id string) (*models.FinancialYear, error)
	List(ctx context.Context) ([]*models.FinancialYear, error)
	Update(ctx context.Context, year *models.FinancialYear) error
}

// DistributionRepository defines the interface for distribution data operations
type DistributionRepository interface {
	ListByYear(ctx context.Context, yearID string) ([]*models.Distribution, error)
	ListByInvestor(ctx context.Context, investorID string) ([]*models.Distribution, error)
	GetByID(ctx context.Context, id string) (*models.Distribution, error)
	// ReplaceForYear overwrites the year's non-inactive distributions with
	// the given set, atomically.
	ReplaceForYear(ctx context.Context, yearID string, distributions []*models.Distribution) error
	Update(ctx context.Context, distribution *models.Distribution) error
	MarkInactiveByInvestor(ctx context.Context, investorID string) error
}

// SettingsRepository defines the interface for exchange-rate settings
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}
