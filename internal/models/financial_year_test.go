package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validYear() FinancialYear {
	return FinancialYear{
		ID:          "fy-1",
		Year:        2024,
		PeriodName:  "FY 2024",
		StartDate:   day(2024, time.January, 1),
		EndDate:     day(2024, time.December, 31),
		TotalProfit: decimal.NewFromInt(1000),
		Currency:    CurrencyUSD,
		Status:      YearStatusPending,
	}
}

func TestFinancialYearValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FinancialYear)
		wantErr bool
	}{
		{name: "valid", mutate: func(*FinancialYear) {}},
		{name: "missing period name", mutate: func(y *FinancialYear) { y.PeriodName = "" }, wantErr: true},
		{name: "end before start", mutate: func(y *FinancialYear) { y.EndDate = y.StartDate.AddDate(0, 0, -1) }, wantErr: true},
		{name: "single day period", mutate: func(y *FinancialYear) { y.EndDate = y.StartDate }},
		{name: "negative profit", mutate: func(y *FinancialYear) { y.TotalProfit = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "bad currency", mutate: func(y *FinancialYear) { y.Currency = Currency("GBP") }, wantErr: true},
		{name: "rollover above 100", mutate: func(y *FinancialYear) { y.RolloverPercentage = decimal.NewFromInt(101) }, wantErr: true},
		{name: "rollover negative", mutate: func(y *FinancialYear) { y.RolloverPercentage = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "rollover at bound", mutate: func(y *FinancialYear) { y.RolloverPercentage = decimal.NewFromInt(100) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year := validYear()
			tt.mutate(&year)
			err := year.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFinancialYearIsEditable(t *testing.T) {
	year := validYear()
	assert.True(t, year.IsEditable())

	year.Status = YearStatusDistributed
	assert.False(t, year.IsEditable())
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", day(2024, time.March, 5), day(2024, time.March, 5), 1},
		{"leap year", day(2024, time.January, 1), day(2024, time.December, 31), 366},
		{"non leap year", day(2023, time.January, 1), day(2023, time.December, 31), 365},
		{"one week", day(2024, time.June, 1), day(2024, time.June, 7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year := validYear()
			year.StartDate, year.EndDate = tt.start, tt.end
			assert.Equal(t, tt.want, year.TotalDays())
		})
	}
}

func TestElapsedDays(t *testing.T) {
	year := validYear()

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"before period", day(2023, time.December, 31), 0},
		{"first day", day(2024, time.January, 1), 1},
		{"mid period", day(2024, time.January, 31), 31},
		{"after period clamps", day(2025, time.June, 1), 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, year.ElapsedDays(tt.asOf))
		})
	}
}

func TestDayHelpersIgnoreTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.May, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysInclusive(morning, evening))
	assert.Equal(t, 0, DaysBetween(morning, evening))
	assert.Equal(t, 2, DaysInclusive(morning, evening.AddDate(0, 0, 1)))
	assert.Equal(t, 0, DaysInclusive(evening, morning.AddDate(0, 0, -1)), "reversed bounds yield 0")
}
