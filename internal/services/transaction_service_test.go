package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

type transactionFixture struct {
	investors     repositories.InvestorRepository
	transactions  repositories.TransactionRepository
	distributions repositories.DistributionRepository
	converter     *ConverterService
	service       TransactionService
}

func newTransactionFixture(t *testing.T, rate float64) *transactionFixture {
	t.Helper()
	database := newTestDB(t)

	settings := repositories.NewSettingsRepository(database)
	converter := NewConverterService(settings, zap.NewNop())
	if rate > 0 {
		_, err := converter.UpdateSettings(context.Background(), models.Settings{
			DefaultCurrency: models.CurrencyUSD,
			USDToIQD:        decimal.NewFromFloat(rate),
		})
		require.NoError(t, err)
	}

	f := &transactionFixture{
		investors:     repositories.NewInvestorRepository(database),
		transactions:  repositories.NewTransactionRepository(database),
		distributions: repositories.NewDistributionRepository(database),
		converter:     converter,
	}
	f.service = NewTransactionService(f.transactions, f.investors, f.distributions, converter, zap.NewNop())
	return f
}

func (f *transactionFixture) seedInvestor(t *testing.T, amount float64, currency models.Currency) *models.Investor {
	t.Helper()
	inv := &models.Investor{
		ID:                uuid.NewString(),
		FullName:          "Test Investor",
		NationalID:        "nid-" + uuid.NewString(),
		AmountContributed: decimal.NewFromFloat(amount),
		Currency:          currency,
		StartDate:         date(2024, time.January, 1),
		IsActive:          true,
	}
	require.NoError(t, f.investors.Create(context.Background(), inv))
	return inv
}

func TestCreateTransaction_DepositRaisesCapital(t *testing.T) {
	f := newTransactionFixture(t, 0)
	ctx := context.Background()
	inv := f.seedInvestor(t, 1000, models.CurrencyUSD)

	err := f.service.CreateTransaction(ctx, &models.Transaction{
		InvestorID: inv.ID,
		Type:       models.TransactionDeposit,
		Amount:     decimal.NewFromInt(250),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.February, 1),
	})
	require.NoError(t, err)

	updated, err := f.investors.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountContributed.Equal(decimal.NewFromInt(1250)))

	count, err := f.service.GetTransactionCount(ctx, &models.TransactionFilter{InvestorID: inv.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateTransaction_WithdrawalCannotOverdraw(t *testing.T) {
	f := newTransactionFixture(t, 0)
	ctx := context.Background()
	inv := f.seedInvestor(t, 100, models.CurrencyUSD)

	err := f.service.CreateTransaction(ctx, &models.Transaction{
		InvestorID: inv.ID,
		Type:       models.TransactionWithdrawal,
		Amount:     decimal.NewFromInt(150),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.February, 1),
	})

	var insufficient *apperrors.ErrInsufficientBalance
	require.ErrorAs(t, err, &insufficient)

	updated, err := f.investors.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountContributed.Equal(decimal.NewFromInt(100)), "capital untouched on rejection")

	count, err := f.service.GetTransactionCount(ctx, &models.TransactionFilter{InvestorID: inv.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, count, "rejected transaction leaves no ledger entry")
}

func TestCreateTransaction_ConvertsIntoInvestorCurrency(t *testing.T) {
	f := newTransactionFixture(t, 1500)
	ctx := context.Background()
	inv := f.seedInvestor(t, 1_000_000, models.CurrencyIQD)

	// A 100 USD deposit lands as 150,000 IQD on an IQD investor.
	err := f.service.CreateTransaction(ctx, &models.Transaction{
		InvestorID: inv.ID,
		Type:       models.TransactionDeposit,
		Amount:     decimal.NewFromInt(100),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.February, 1),
	})
	require.NoError(t, err)

	updated, err := f.investors.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountContributed.Equal(decimal.NewFromInt(1_150_000)),
		"capital is %s", updated.AmountContributed)
}

func TestCreateTransaction_UnknownInvestor(t *testing.T) {
	f := newTransactionFixture(t, 0)

	err := f.service.CreateTransaction(context.Background(), &models.Transaction{
		InvestorID: "no-such-investor",
		Type:       models.TransactionDeposit,
		Amount:     decimal.NewFromInt(10),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.February, 1),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateTransaction_ProfitPayout(t *testing.T) {
	f := newTransactionFixture(t, 0)
	ctx := context.Background()
	inv := f.seedInvestor(t, 1000, models.CurrencyUSD)

	dist := &models.Distribution{
		ID:              uuid.NewString(),
		FinancialYearID: uuid.NewString(),
		InvestorID:      inv.ID,
		Calculation: models.Calculation{
			InvestmentAmount: inv.AmountContributed,
			CalculatedProfit: decimal.NewFromInt(500),
			Method:           models.MethodFullPeriod,
		},
		Status:         models.DistributionApproved,
		CurrentBalance: decimal.NewFromInt(500),
	}
	require.NoError(t, f.distributions.ReplaceForYear(ctx, dist.FinancialYearID, []*models.Distribution{dist}))

	err := f.service.CreateTransaction(ctx, &models.Transaction{
		InvestorID: inv.ID,
		Type:       models.TransactionProfitPayout,
		Amount:     decimal.NewFromInt(200),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.March, 1),
	})
	require.NoError(t, err)

	got, err := f.distributions.GetByID(ctx, dist.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, models.DistributionApproved, got.Status)

	// Capital is untouched by payouts.
	updated, err := f.investors.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountContributed.Equal(decimal.NewFromInt(1000)))

	// Draining the rest closes the distribution.
	err = f.service.CreateTransaction(ctx, &models.Transaction{
		InvestorID: inv.ID,
		Type:       models.TransactionProfitPayout,
		Amount:     decimal.NewFromInt(300),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.March, 2),
	})
	require.NoError(t, err)

	got, err = f.distributions.GetByID(ctx, dist.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero())
	assert.Equal(t, models.DistributionDistributed, got.Status)
}

func TestCreateTransaction_ProfitPayoutWithoutBalance(t *testing.T) {
	f := newTransactionFixture(t, 0)
	inv := f.seedInvestor(t, 1000, models.CurrencyUSD)

	err := f.service.CreateTransaction(context.Background(), &models.Transaction{
		InvestorID: inv.ID,
		Type:       models.TransactionProfitPayout,
		Amount:     decimal.NewFromInt(50),
		Currency:   models.CurrencyUSD,
		Date:       date(2024, time.March, 1),
	})

	var insufficient *apperrors.ErrInsufficientBalance
	assert.ErrorAs(t, err, &insufficient)
}
