package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

type investorFixture struct {
	investors     repositories.InvestorRepository
	transactions  repositories.TransactionRepository
	distributions repositories.DistributionRepository
	service       InvestorService
}

func newInvestorFixture(t *testing.T) *investorFixture {
	t.Helper()
	database := newTestDB(t)
	f := &investorFixture{
		investors:     repositories.NewInvestorRepository(database),
		transactions:  repositories.NewTransactionRepository(database),
		distributions: repositories.NewDistributionRepository(database),
	}
	f.service = NewInvestorService(f.investors, f.transactions, f.distributions, zap.NewNop())
	return f
}

func TestCreateInvestor_RecordsOpeningDeposit(t *testing.T) {
	f := newInvestorFixture(t)
	ctx := context.Background()

	inv := &models.Investor{
		FullName:          "Sara Ahmed",
		NationalID:        "A1234567",
		AmountContributed: decimal.NewFromInt(5000),
		Currency:          models.CurrencyUSD,
		StartDate:         date(2024, time.March, 1),
	}
	require.NoError(t, f.service.CreateInvestor(ctx, inv))
	require.NotEmpty(t, inv.ID, "an id is assigned when missing")

	txs, err := f.transactions.List(ctx, &models.TransactionFilter{InvestorID: inv.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TransactionDeposit, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, txs[0].Date.Equal(inv.StartDate))
}

func TestCreateInvestor_NoDepositForZeroContribution(t *testing.T) {
	f := newInvestorFixture(t)
	ctx := context.Background()

	inv := &models.Investor{
		FullName:   "Omar Khalid",
		NationalID: "B7654321",
		Currency:   models.CurrencyIQD,
		StartDate:  date(2024, time.March, 1),
	}
	require.NoError(t, f.service.CreateInvestor(ctx, inv))

	txs, err := f.transactions.List(ctx, &models.TransactionFilter{InvestorID: inv.ID})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCreateInvestor_Invalid(t *testing.T) {
	f := newInvestorFixture(t)

	err := f.service.CreateInvestor(context.Background(), &models.Investor{
		FullName: "No National ID",
		Currency: models.CurrencyUSD,
	})
	assert.Error(t, err)
}

func TestUpdateInvestor_PreservesStartDateAndCapital(t *testing.T) {
	f := newInvestorFixture(t)
	ctx := context.Background()

	inv := &models.Investor{
		FullName:          "Sara Ahmed",
		NationalID:        "A1234567",
		AmountContributed: decimal.NewFromInt(5000),
		Currency:          models.CurrencyUSD,
		StartDate:         date(2024, time.March, 1),
	}
	require.NoError(t, f.service.CreateInvestor(ctx, inv))

	update := *inv
	update.FullName = "Sara A. Mahmoud"
	update.StartDate = date(2020, time.January, 1)
	update.AmountContributed = decimal.NewFromInt(1)
	update.IsActive = false
	require.NoError(t, f.service.UpdateInvestor(ctx, &update))

	got, err := f.service.GetInvestor(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sara A. Mahmoud", got.FullName)
	assert.True(t, got.StartDate.Equal(date(2024, time.March, 1)), "start date anchors accrual and never changes")
	assert.True(t, got.AmountContributed.Equal(decimal.NewFromInt(5000)), "capital only moves through transactions")
	assert.True(t, got.IsActive, "deactivation only happens through DeactivateInvestor")
}

func TestUpdateInvestor_Unknown(t *testing.T) {
	f := newInvestorFixture(t)

	err := f.service.UpdateInvestor(context.Background(), &models.Investor{
		ID:         "missing",
		FullName:   "Nobody",
		NationalID: "X",
		Currency:   models.CurrencyUSD,
		StartDate:  date(2024, time.January, 1),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeactivateInvestor(t *testing.T) {
	f := newInvestorFixture(t)
	ctx := context.Background()

	inv := &models.Investor{
		FullName:          "Sara Ahmed",
		NationalID:        "A1234567",
		AmountContributed: decimal.NewFromInt(5000),
		Currency:          models.CurrencyUSD,
		StartDate:         date(2024, time.March, 1),
	}
	require.NoError(t, f.service.CreateInvestor(ctx, inv))

	dist := &models.Distribution{
		ID:              "dist-1",
		FinancialYearID: "fy-1",
		InvestorID:      inv.ID,
		Status:          models.DistributionPending,
	}
	require.NoError(t, f.distributions.ReplaceForYear(ctx, "fy-1", []*models.Distribution{dist}))

	require.NoError(t, f.service.DeactivateInvestor(ctx, inv.ID))

	got, err := f.service.GetInvestor(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive, "soft delete keeps the record")

	rows, err := f.distributions.ListByInvestor(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DistributionInactive, rows[0].Status)

	active := true
	list, err := f.service.ListInvestors(ctx, &models.InvestorFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Empty(t, list)
}
