package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the process-wide exchange-rate configuration. A single row
// (id = 1) is persisted; every display conversion reads the cached copy.
type Settings struct {
	ID              int             `json:"-" gorm:"primaryKey;column:id"`
	DefaultCurrency Currency        `json:"default_currency" gorm:"column:default_currency;type:varchar(10);not null;default:'USD'"`
	USDToIQD        decimal.Decimal `json:"usd_to_iqd" gorm:"column:usd_to_iqd;type:decimal(20,6);not null;default:0"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;type:timestamptz;autoUpdateTime"`
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}

// SettingsID is the primary key of the singleton settings row.
const SettingsID = 1

// DefaultSettings returns the built-in fallback used when the persisted
// settings cannot be loaded. A zero rate makes conversion a pass-through.
func DefaultSettings() Settings {
	return Settings{
		ID:              SettingsID,
		DefaultCurrency: CurrencyUSD,
		USDToIQD:        decimal.Zero,
	}
}

// HasRate reports whether a usable exchange rate is configured.
func (s Settings) HasRate() bool {
	return s.USDToIQD.IsPositive()
}

// Validate validates a settings update.
func (s *Settings) Validate() error {
	if !s.DefaultCurrency.IsValid() {
		return errors.New("default_currency must be USD or IQD")
	}
	if !s.USDToIQD.IsPositive() {
		return errors.New("usd_to_iqd rate must be positive")
	}
	return nil
}
