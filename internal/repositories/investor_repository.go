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

type investorRepository struct {
	db *db.DB
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(database *db.DB) InvestorRepository {
	return &investorRepository{db: database}
}

func (r *investorRepository) Create(ctx context.Context, investor *models.Investor) error {
	if err := r.db.WithContext(ctx).Create(investor).Error; err != nil {
		return fmt.Errorf("failed to create investor: %w", err)
	}
	return nil
}

func (r *investorRepository) GetByID(ctx context.Context, id string) (*models.Investor, error) {
	var investor models.Investor
	err := r.db.WithContext(ctx).First(&investor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investor: %w", err)
	}
	return &investor, nil
}

func (r *investorRepository) List(ctx context.Context, filter *models.InvestorFilter) ([]*models.Investor, error) {
	query := r.db.WithContext(ctx).Model(&models.Investor{})

	if filter != nil {
		if filter.IsActive != nil {
			query = query.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("full_name LIKE ? OR national_id LIKE ?", pattern, pattern)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var investors []*models.Investor
	if err := query.Order("start_date ASC, full_name ASC").Find(&investors).Error; err != nil {
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	return investors, nil
}

func (r *investorRepository) Update(ctx context.Context, investor *models.Investor) error {
	result := r.db.WithContext(ctx).Model(&models.Investor{}).
		Where("id = ?", investor.ID).
		Select("full_name", "national_id", "phone", "amount_contributed", "currency", "is_active").
		Updates(investor)
	if result.Error != nil {
		return fmt.Errorf("failed to update investor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *investorRepository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Investor{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate investor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
