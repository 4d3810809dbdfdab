package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialYear statuses. A year is created pending; approval freezes the
// period and its distributions.
const (
	YearStatusPending     = "pending"
	YearStatusDistributed = "distributed"
)

// FinancialYear represents one profit period and its declared total profit.
type FinancialYear struct {
	ID                 string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	Year               int             `json:"year" gorm:"column:year;type:integer;not null;index"`
	PeriodName         string          `json:"period_name" gorm:"column:period_name;type:varchar(255);not null"`
	StartDate          time.Time       `json:"start_date" gorm:"column:start_date;type:timestamptz;not null"`
	EndDate            time.Time       `json:"end_date" gorm:"column:end_date;type:timestamptz;not null"`
	TotalProfit        decimal.Decimal `json:"total_profit" gorm:"column:total_profit;type:decimal(20,3);not null;default:0"`
	Currency           Currency        `json:"currency" gorm:"column:currency;type:varchar(10);not null"`
	Status             string          `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	RolloverEnabled    bool            `json:"rollover_enabled" gorm:"column:rollover_enabled;type:boolean;not null;default:false"`
	RolloverPercentage decimal.Decimal `json:"rollover_percentage" gorm:"column:rollover_percentage;type:decimal(5,2);not null;default:0"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty" gorm:"column:approved_at;type:timestamptz"`
	CreatedAt          time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;autoUpdateTime"`
}

// TableName returns the table name for the FinancialYear model
func (FinancialYear) TableName() string {
	return "financial_years"
}

// Validate validates the financial year data
func (y *FinancialYear) Validate() error {
	if y.Year <= 0 {
		return errors.New("year is required")
	}
	if y.PeriodName == "" {
		return errors.New("period_name is required")
	}
	if y.StartDate.IsZero() || y.EndDate.IsZero() {
		return errors.New("start_date and end_date are required")
	}
	if y.EndDate.Before(y.StartDate) {
		return errors.New("end_date must not be before start_date")
	}
	if !y.Currency.IsValid() {
		return errors.New("currency must be USD or IQD")
	}
	if y.TotalProfit.IsNegative() {
		return errors.New("total_profit must be non-negative")
	}
	if y.RolloverPercentage.IsNegative() || y.RolloverPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("rollover_percentage must be between 0 and 100")
	}
	return nil
}

// IsEditable reports whether period bounds, name and profit may still change.
func (y *FinancialYear) IsEditable() bool {
	return y.Status == YearStatusPending
}

// TotalDays returns the number of whole days in the period, inclusive of
// both bounds. A period starting and ending on the same day is 1 day.
func (y *FinancialYear) TotalDays() int {
	return DaysInclusive(y.StartDate, y.EndDate)
}

// ElapsedDays returns how many days of the period have passed as of the
// given instant, inclusive and clamped to the period bounds.
func (y *FinancialYear) ElapsedDays(asOf time.Time) int {
	if asOf.Before(y.StartDate) {
		return 0
	}
	end := asOf
	if end.After(y.EndDate) {
		end = y.EndDate
	}
	return DaysInclusive(y.StartDate, end)
}

// DaysInclusive counts whole days between two dates, both ends included.
// Times of day are ignored; only calendar dates matter.
func DaysInclusive(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// DaysBetween counts whole days from start to end, end exclusive.
func DaysBetween(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
