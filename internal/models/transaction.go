package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Deposits and withdrawals mutate the investor's
// contributed capital; profit payouts draw down a distribution balance;
// rollover records profit reinvested into capital when a year is approved.
const (
	TransactionDeposit      = "deposit"
	TransactionWithdrawal   = "withdrawal"
	TransactionProfitPayout = "profit_payout"
	TransactionRollover     = "rollover"
)

// Transaction represents a single ledger entry against an investor.
type Transaction struct {
	ID         string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	InvestorID string          `json:"investor_id" gorm:"column:investor_id;type:varchar(255);not null;index"`
	Type       string          `json:"type" gorm:"column:type;type:varchar(50);not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(20,3);not null"`
	Currency   Currency        `json:"currency" gorm:"column:currency;type:varchar(10);not null"`
	Date       time.Time       `json:"date" gorm:"column:date;type:timestamptz;not null;index"`
	Notes      *string         `json:"notes,omitempty" gorm:"column:notes;type:text"`
	CreatedAt  time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;autoCreateTime"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionFilter represents filters for querying transactions
type TransactionFilter struct {
	InvestorID string
	Types      []string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// Validate validates the transaction data
func (t *Transaction) Validate() error {
	if t.InvestorID == "" {
		return errors.New("investor_id is required")
	}
	switch t.Type {
	case TransactionDeposit, TransactionWithdrawal, TransactionProfitPayout, TransactionRollover:
	default:
		return errors.New("type must be deposit, withdrawal, profit_payout or rollover")
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if !t.Currency.IsValid() {
		return errors.New("currency must be USD or IQD")
	}
	if t.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// CapitalDelta returns the signed change this transaction applies to the
// investor's contributed capital. Profit payouts do not touch capital.
func (t *Transaction) CapitalDelta() decimal.Decimal {
	switch t.Type {
	case TransactionDeposit, TransactionRollover:
		return t.Amount
	case TransactionWithdrawal:
		return t.Amount.Neg()
	}
	return decimal.Zero
}
