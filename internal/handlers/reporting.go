package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/services"
)

type ReportingHandler struct {
	investorService services.InvestorService
	yearService     services.FinancialYearService
	converter       *services.ConverterService
}

func NewReportingHandler(investorService services.InvestorService, yearService services.FinancialYearService, converter *services.ConverterService) *ReportingHandler {
	return &ReportingHandler{
		investorService: investorService,
		yearService:     yearService,
		converter:       converter,
	}
}

// PortfolioSummary is the dashboard aggregate, converted into the requested
// display currency.
type PortfolioSummary struct {
	Currency               models.Currency `json:"currency"`
	TotalCapital           decimal.Decimal `json:"total_capital"`
	TotalCapitalFormatted  string          `json:"total_capital_formatted"`
	ActiveInvestors        int             `json:"active_investors"`
	InactiveInvestors      int             `json:"inactive_investors"`
	PendingYears           int             `json:"pending_years"`
	DistributedYears       int             `json:"distributed_years"`
	TotalProfitDistributed decimal.Decimal `json:"total_profit_distributed"`
	TotalProfitFormatted   string          `json:"total_profit_formatted"`
}

// HandleSummary handles GET /api/reports/summary?currency=IQD
// @Summary Portfolio summary
// @Description Aggregate capital and distributed profit, converted to the requested display currency
// @Tags reports
// @Produce json
// @Param currency query string false "Display currency (USD or IQD, default from settings)"
// @Success 200 {object} PortfolioSummary
// @Failure 500 {string} string "Internal server error"
// @Router /reports/summary [get]
func (h *ReportingHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	display := models.Currency(r.URL.Query().Get("currency"))
	if !display.IsValid() {
		display = h.converter.Settings().DefaultCurrency
	}

	investors, err := h.investorService.ListInvestors(r.Context(), nil)
	if err != nil {
		http.Error(w, "Failed to list investors: "+err.Error(), http.StatusInternalServerError)
		return
	}
	years, err := h.yearService.ListFinancialYears(r.Context())
	if err != nil {
		http.Error(w, "Failed to list financial years: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summary := PortfolioSummary{Currency: display}
	totalCapital := decimal.Zero
	for _, inv := range investors {
		if !inv.IsActive {
			summary.InactiveInvestors++
			continue
		}
		summary.ActiveInvestors++
		totalCapital = totalCapital.Add(h.converter.Convert(inv.AmountContributed, inv.Currency, display))
	}

	totalProfit := decimal.Zero
	for _, year := range years {
		switch year.Status {
		case models.YearStatusDistributed:
			summary.DistributedYears++
			totalProfit = totalProfit.Add(h.converter.Convert(year.TotalProfit, year.Currency, display))
		default:
			summary.PendingYears++
		}
	}

	summary.TotalCapital = totalCapital
	summary.TotalCapitalFormatted = h.converter.FormatIn(totalCapital, display, display)
	summary.TotalProfitDistributed = totalProfit
	summary.TotalProfitFormatted = h.converter.FormatIn(totalProfit, display, display)

	json.NewEncoder(w).Encode(summary)
}
