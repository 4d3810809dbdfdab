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

type distributionRepository struct {
	db *db.DB
}

// NewDistributionRepository creates a new distribution repository
func NewDistributionRepository(database *db.DB) DistributionRepository {
	return &distributionRepository{db: database}
}

func (r *distributionRepository) ListByYear(ctx context.Context, yearID string) ([]*models.Distribution, error) {
	var distributions []*models.Distribution
	err := r.db.WithContext(ctx).
		Where("financial_year_id = ?", yearID).
		Order("created_at ASC").
		Find(&distributions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}
	return distributions, nil
}

func (r *distributionRepository) ListByInvestor(ctx context.Context, investorID string) ([]*models.Distribution, error) {
	var distributions []*models.Distribution
	err := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("created_at ASC").
		Find(&distributions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions by investor: %w", err)
	}
	return distributions, nil
}

func (r *distributionRepository) GetByID(ctx context.Context, id string) (*models.Distribution, error) {
	var distribution models.Distribution
	err := r.db.WithContext(ctx).First(&distribution, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution: %w", err)
	}
	return &distribution, nil
}

// ReplaceForYear overwrites the year's distributions in one transaction.
// Inactive rows are preserved so deactivated investors keep their history.
func (r *distributionRepository) ReplaceForYear(ctx context.Context, yearID string, distributions []*models.Distribution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("financial_year_id = ? AND status <> ?", yearID, models.DistributionInactive).
			Delete(&models.Distribution{}).Error; err != nil {
			return fmt.Errorf("failed to clear distributions: %w", err)
		}
		if len(distributions) == 0 {
			return nil
		}
		if err := tx.Create(&distributions).Error; err != nil {
			return fmt.Errorf("failed to insert distributions: %w", err)
		}
		return nil
	})
}

func (r *distributionRepository) Update(ctx context.Context, distribution *models.Distribution) error {
	result := r.db.WithContext(ctx).Model(&models.Distribution{}).
		Where("id = ?", distribution.ID).
		Select("status", "current_balance", "investment_amount", "total_days",
			"daily_profit_rate", "calculated_profit", "method", "last_calculation_date").
		Updates(distribution)
	if result.Error != nil {
		return fmt.Errorf("failed to update distribution: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *distributionRepository) MarkInactiveByInvestor(ctx context.Context, investorID string) error {
	err := r.db.WithContext(ctx).Model(&models.Distribution{}).
		Where("investor_id = ?", investorID).
		Update("status", models.DistributionInactive).Error
	if err != nil {
		return fmt.Errorf("failed to mark distributions inactive: %w", err)
	}
	return nil
}
