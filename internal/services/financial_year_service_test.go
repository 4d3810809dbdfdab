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

func newYearService(t *testing.T) (FinancialYearService, repositories.FinancialYearRepository) {
	t.Helper()
	database := newTestDB(t)
	repo := repositories.NewFinancialYearRepository(database)
	return NewFinancialYearService(repo, zap.NewNop()), repo
}

func TestCreateFinancialYear(t *testing.T) {
	svc, _ := newYearService(t)
	ctx := context.Background()

	year := &models.FinancialYear{
		Year:        2024,
		PeriodName:  "FY 2024",
		StartDate:   date(2024, time.January, 1),
		EndDate:     date(2024, time.December, 31),
		TotalProfit: decimal.NewFromInt(1000),
		Currency:    models.CurrencyUSD,
		Status:      models.YearStatusDistributed, // must be ignored
	}
	require.NoError(t, svc.CreateFinancialYear(ctx, year))
	require.NotEmpty(t, year.ID)

	got, err := svc.GetFinancialYear(ctx, year.ID)
	require.NoError(t, err)
	assert.Equal(t, models.YearStatusPending, got.Status, "a new year always starts pending")
}

func TestCreateFinancialYear_Invalid(t *testing.T) {
	svc, _ := newYearService(t)

	err := svc.CreateFinancialYear(context.Background(), &models.FinancialYear{
		Year:       2024,
		PeriodName: "Backwards",
		StartDate:  date(2024, time.June, 1),
		EndDate:    date(2024, time.January, 1),
		Currency:   models.CurrencyUSD,
	})
	assert.Error(t, err)
}

func TestUpdateFinancialYear_FrozenOnceDistributed(t *testing.T) {
	svc, repo := newYearService(t)
	ctx := context.Background()

	year := &models.FinancialYear{
		Year:        2024,
		PeriodName:  "FY 2024",
		StartDate:   date(2024, time.January, 1),
		EndDate:     date(2024, time.December, 31),
		TotalProfit: decimal.NewFromInt(1000),
		Currency:    models.CurrencyUSD,
	}
	require.NoError(t, svc.CreateFinancialYear(ctx, year))

	year.TotalProfit = decimal.NewFromInt(2000)
	require.NoError(t, svc.UpdateFinancialYear(ctx, year))

	now := time.Now()
	year.Status = models.YearStatusDistributed
	year.ApprovedAt = &now
	require.NoError(t, repo.Update(ctx, year))

	year.TotalProfit = decimal.NewFromInt(3000)
	err := svc.UpdateFinancialYear(ctx, year)
	assert.ErrorIs(t, err, apperrors.ErrYearApproved)
}
