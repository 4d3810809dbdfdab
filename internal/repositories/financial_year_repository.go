package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahmapp/sahm/internal/db"
	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
)

type financialYearRepository struct {
	db *db.DB
}

// NewFinancialYearRepository creates a new financial year repository
func NewFinancialYearRepository(database *db.DB) FinancialYearRepository {
	return &financialYearRepository{db: database}
}

func (r *financialYearRepository) Create(ctx context.Context, year *models.FinancialYear) error {
	if err := r.db.WithContext(ctx).Create(year).Error; err != nil {
		return fmt.Errorf("failed to create financial year: %w", err)
	}
	return nil
}

func (r *financialYearRepository) GetByID(ctx context.Context, id string) (*models.FinancialYear, error) {
	var year models.FinancialYear
	err := r.db.WithContext(ctx).First(&year, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get financial year: %w", err)
	}
	return &year, nil
}

func (r *financialYearRepository) List(ctx context.Context) ([]*models.FinancialYear, error) {
	var years []*models.FinancialYear
	if err := r.db.WithContext(ctx).Order("year DESC, start_date DESC").Find(&years).Error; err != nil {
		return nil, fmt.Errorf("failed to list financial years: %w", err)
	}
	return years, nil
}

func (r *financialYearRepository) Update(ctx context.Context, year *models.FinancialYear) error {
	result := r.db.WithContext(ctx).Model(&models.FinancialYear{}).
		Where("id = ?", year.ID).
		Select("year", "period_name", "start_date", "end_date", "total_profit",
			"currency", "status", "rollover_enabled", "rollover_percentage", "approved_at").
		Updates(year)
	if result.Error != nil {
		return fmt.Errorf("failed to update financial year: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
