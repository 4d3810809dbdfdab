package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahmapp/sahm/internal/models"
)

// profitPrecision is the number of decimal places a final profit figure is
// rounded to. Rounding happens exactly once, on the final per-investor
// profit; rates and percentages keep full precision.
const profitPrecision = 3

var oneHundred = decimal.NewFromInt(100)

// DistributionCalculator apportions a financial year's total profit across
// investors. It is pure and stateless: the same inputs always produce the
// same result, no I/O, no retained state. The backend persists its output
// and UI clients run the same arithmetic for local previews.
type DistributionCalculator struct{}

// NewDistributionCalculator creates a new distribution calculator
func NewDistributionCalculator() *DistributionCalculator {
	return &DistributionCalculator{}
}

// Compute apportions year.TotalProfit across the given investors.
//
// With forceFullPeriod each active investor receives a pro-rata slice of the
// whole period's profit based on capital alone, ignoring join dates.
// Otherwise a single daily rate totalProfit/(totalCapital*totalDays) is
// shared by all investors and each earns amount*elapsedDays*rate, so a late
// joiner earns less than an early joiner with identical capital.
//
// Inactive investors contribute nothing to totalCapital and earn nothing,
// but remain in the result flagged for historical display. The method never
// divides by zero and never errors: missing amounts count as zero, missing
// dates make an investor ineligible.
func (c *DistributionCalculator) Compute(year *models.FinancialYear, investors []*models.Investor, forceFullPeriod bool, asOf time.Time) *models.DistributionResult {
	method := models.MethodDailyRate
	if forceFullPeriod {
		method = models.MethodFullPeriod
	}

	totalCapital := decimal.Zero
	activeCount := 0
	for _, inv := range investors {
		if inv.IsActive {
			totalCapital = totalCapital.Add(inv.AmountContributed)
			activeCount++
		}
	}

	totalDays := year.TotalDays()

	// Daily rate is computed once for the whole year, not per investor.
	dailyRate := decimal.Zero
	if method == models.MethodDailyRate && totalCapital.IsPositive() && totalDays > 0 {
		dailyRate = year.TotalProfit.Div(totalCapital.Mul(decimal.NewFromInt(int64(totalDays))))
	}

	shares := make([]models.InvestorShare, 0, len(investors))
	totalDistributed := decimal.Zero

	for _, inv := range investors {
		share := models.InvestorShare{
			InvestorID:       inv.ID,
			FullName:         inv.FullName,
			InvestmentAmount: inv.AmountContributed,
			SharePercentage:  decimal.Zero,
			DailyProfitRate:  dailyRate,
			Profit:           decimal.Zero,
			Inactive:         !inv.IsActive,
		}

		if !inv.IsActive {
			shares = append(shares, share)
			continue
		}

		if totalCapital.IsPositive() {
			share.SharePercentage = inv.AmountContributed.Div(totalCapital).Mul(oneHundred)
		}

		switch method {
		case models.MethodFullPeriod:
			share.Profit = share.SharePercentage.Div(oneHundred).Mul(year.TotalProfit).Round(profitPrecision)
		case models.MethodDailyRate:
			share.ElapsedDays = c.elapsedDays(year, inv, asOf)
			if share.ElapsedDays > 0 {
				days := decimal.NewFromInt(int64(share.ElapsedDays))
				share.Profit = inv.AmountContributed.Mul(days).Mul(dailyRate).Round(profitPrecision)
			}
		}

		totalDistributed = totalDistributed.Add(share.Profit)
		shares = append(shares, share)
	}

	// Rounding drift in per-investor sums must never let the aggregate
	// exceed the declared pool.
	if totalDistributed.GreaterThan(year.TotalProfit) {
		totalDistributed = year.TotalProfit
	}

	averageProfit := decimal.Zero
	if activeCount > 0 {
		averageProfit = totalDistributed.Div(decimal.NewFromInt(int64(activeCount))).Round(profitPrecision)
	}

	return &models.DistributionResult{
		PerInvestor: shares,
		Summary: models.DistributionSummary{
			Method:           method,
			TotalCapital:     totalCapital,
			TotalDistributed: totalDistributed,
			AverageProfit:    averageProfit,
			TotalDays:        totalDays,
			ElapsedDays:      year.ElapsedDays(asOf),
			InvestorCount:    len(investors),
			ActiveInvestors:  activeCount,
		},
	}
}

// elapsedDays counts the days an investor's capital was exposed during the
// period, as of the given instant. A same-day join counts as 1 day, never 0.
// Returns 0 only when the investor is not eligible at all.
func (c *DistributionCalculator) elapsedDays(year *models.FinancialYear, inv *models.Investor, asOf time.Time) int {
	from, ok := inv.EligibleFrom(year.StartDate, year.EndDate)
	if !ok {
		return 0
	}
	to := asOf
	if to.After(year.EndDate) {
		to = year.EndDate
	}
	if models.DaysInclusive(from, to) == 0 {
		return 0
	}
	days := models.DaysBetween(from, to)
	if days < 1 {
		days = 1
	}
	return days
}
