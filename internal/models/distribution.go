package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Distribution statuses.
const (
	DistributionPending     = "pending"
	DistributionApproved    = "approved"
	DistributionDistributed = "distributed"
	DistributionCancelled   = "cancelled"
	// DistributionInactive marks a distribution whose investor was later
	// deactivated; kept for historical display, excluded from recalculation.
	DistributionInactive = "inactive"
)

// Calculation methods recorded on persisted distributions.
const (
	MethodFullPeriod = "full_period"
	MethodDailyRate  = "daily_rate"
)

// Calculation holds the arithmetic snapshot that produced a distribution.
type Calculation struct {
	InvestmentAmount    decimal.Decimal `json:"investment_amount" gorm:"column:investment_amount;type:decimal(20,3);not null;default:0"`
	TotalDays           int             `json:"total_days" gorm:"column:total_days;type:integer;not null;default:0"`
	DailyProfitRate     decimal.Decimal `json:"daily_profit_rate" gorm:"column:daily_profit_rate;type:decimal(30,18);not null;default:0"`
	CalculatedProfit    decimal.Decimal `json:"calculated_profit" gorm:"column:calculated_profit;type:decimal(20,3);not null;default:0"`
	Method              string          `json:"method" gorm:"column:method;type:varchar(20);not null;default:'full_period'"`
	LastCalculationDate time.Time       `json:"last_calculation_date" gorm:"column:last_calculation_date;type:timestamptz"`
}

// Distribution is one investor's persisted share of one financial year.
// It is overwritten by each recalculation pass while the year is pending.
type Distribution struct {
	ID              string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	FinancialYearID string          `json:"financial_year_id" gorm:"column:financial_year_id;type:varchar(255);not null;index:idx_distributions_year_investor,unique"`
	InvestorID      string          `json:"investor_id" gorm:"column:investor_id;type:varchar(255);not null;index:idx_distributions_year_investor,unique"`
	Calculation     Calculation     `json:"calculation" gorm:"embedded"`
	Status          string          `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	CurrentBalance  decimal.Decimal `json:"current_balance" gorm:"column:current_balance;type:decimal(20,3);not null;default:0"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;autoUpdateTime"`
}

// TableName returns the table name for the Distribution model
func (Distribution) TableName() string {
	return "distributions"
}

// InvestorShare is one investor's computed (not yet persisted) slice of a
// financial year's profit.
type InvestorShare struct {
	InvestorID       string          `json:"investor_id"`
	FullName         string          `json:"full_name"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	SharePercentage  decimal.Decimal `json:"share_percentage"`
	ElapsedDays      int             `json:"elapsed_days"`
	DailyProfitRate  decimal.Decimal `json:"daily_profit_rate"`
	Profit           decimal.Decimal `json:"profit"`
	Inactive         bool            `json:"inactive"`
}

// DistributionSummary aggregates a computation pass over all investors.
type DistributionSummary struct {
	Method           string          `json:"method"`
	TotalCapital     decimal.Decimal `json:"total_capital"`
	TotalDistributed decimal.Decimal `json:"total_distributed"`
	AverageProfit    decimal.Decimal `json:"average_profit"`
	TotalDays        int             `json:"total_days"`
	ElapsedDays      int             `json:"elapsed_days"`
	InvestorCount    int             `json:"investor_count"`
	ActiveInvestors  int             `json:"active_investors"`
}

// DistributionResult is the output of one computation pass.
type DistributionResult struct {
	PerInvestor []InvestorShare     `json:"per_investor"`
	Summary     DistributionSummary `json:"summary"`
}

// CalculationResponse is the wire shape of a recalculation trigger. When the
// year is already approved, Status is "approved" and no recalculation ran.
type CalculationResponse struct {
	Status                 string          `json:"status"`
	ElapsedDays            int             `json:"elapsedDays"`
	TotalDaysInYear        int             `json:"totalDaysInYear"`
	TotalCalculatedProfit  decimal.Decimal `json:"totalCalculatedProfit"`
	CalculationMessage     string          `json:"calculationMessage"`
	TotalApprovedInvestors int             `json:"totalApprovedInvestors,omitempty"`
	Message                string          `json:"message,omitempty"`
}
