package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

type financialYearService struct {
	years  repositories.FinancialYearRepository
	logger *zap.Logger
}

// NewFinancialYearService creates a new financial year service
func NewFinancialYearService(years repositories.FinancialYearRepository, logger *zap.Logger) FinancialYearService {
	return &financialYearService{years: years, logger: logger}
}

func (s *financialYearService) CreateFinancialYear(ctx context.Context, year *models.FinancialYear) error {
	if year.ID == "" {
		year.ID = uuid.NewString()
	}
	year.Status = models.YearStatusPending
	if err := year.Validate(); err != nil {
		return err
	}
	if err := s.years.Create(ctx, year); err != nil {
		return err
	}
	s.logger.Info("financial year created",
		zap.String("financial_year_id", year.ID),
		zap.String("period_name", year.PeriodName),
		zap.Int("year", year.Year))
	return nil
}

func (s *financialYearService) GetFinancialYear(ctx context.Context, id string) (*models.FinancialYear, error) {
	return s.years.GetByID(ctx, id)
}

func (s *financialYearService) ListFinancialYears(ctx context.Context) ([]*models.FinancialYear, error) {
	return s.years.List(ctx)
}

// UpdateFinancialYear updates period name, bounds, profit and rollover
// configuration. A distributed year is frozen.
func (s *financialYearService) UpdateFinancialYear(ctx context.Context, year *models.FinancialYear) error {
	existing, err := s.years.GetByID(ctx, year.ID)
	if err != nil {
		return err
	}
	if !existing.IsEditable() {
		return apperrors.ErrYearApproved
	}
	year.Status = existing.Status
	year.ApprovedAt = existing.ApprovedAt
	if err := year.Validate(); err != nil {
		return err
	}
	return s.years.Update(ctx, year)
}
