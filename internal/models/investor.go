package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Investor represents a shareholder and their current contributed capital.
// StartDate is fixed at creation and anchors daily profit accrual;
// AmountContributed is mutated only through deposit/withdrawal transactions.
type Investor struct {
	ID                string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	FullName          string          `json:"full_name" gorm:"column:full_name;type:varchar(255);not null"`
	NationalID        string          `json:"national_id" gorm:"column:national_id;type:varchar(50);not null;uniqueIndex"`
	Phone             *string         `json:"phone,omitempty" gorm:"column:phone;type:varchar(50)"`
	AmountContributed decimal.Decimal `json:"amount_contributed" gorm:"column:amount_contributed;type:decimal(20,3);not null;default:0"`
	Currency          Currency        `json:"currency" gorm:"column:currency;type:varchar(10);not null"`
	StartDate         time.Time       `json:"start_date" gorm:"column:start_date;type:timestamptz;not null;index"`
	IsActive          bool            `json:"is_active" gorm:"column:is_active;type:boolean;not null;default:true;index"`
	CreatedAt         time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;autoUpdateTime"`
}

// TableName returns the table name for the Investor model
func (Investor) TableName() string {
	return "investors"
}

// InvestorFilter represents filters for querying investors
type InvestorFilter struct {
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

// Validate validates the investor data
func (i *Investor) Validate() error {
	if i.FullName == "" {
		return errors.New("full_name is required")
	}
	if i.NationalID == "" {
		return errors.New("national_id is required")
	}
	if !i.Currency.IsValid() {
		return errors.New("currency must be USD or IQD")
	}
	if i.AmountContributed.IsNegative() {
		return errors.New("amount_contributed must be non-negative")
	}
	if i.StartDate.IsZero() {
		return errors.New("start_date is required")
	}
	return nil
}

// EligibleFrom returns the date the investor starts accruing profit within
// the given period bounds. ok is false when the investor never becomes
// eligible inside the period (missing start date or joined after it ends).
func (i *Investor) EligibleFrom(periodStart, periodEnd time.Time) (time.Time, bool) {
	if i.StartDate.IsZero() {
		return time.Time{}, false
	}
	from := i.StartDate
	if from.Before(periodStart) {
		from = periodStart
	}
	if from.After(periodEnd) {
		return time.Time{}, false
	}
	return from, true
}
