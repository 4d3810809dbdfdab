package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/services"
)

type FinancialYearHandler struct {
	yearService         services.FinancialYearService
	distributionService services.DistributionService
}

func NewFinancialYearHandler(yearService services.FinancialYearService, distributionService services.DistributionService) *FinancialYearHandler {
	return &FinancialYearHandler{
		yearService:         yearService,
		distributionService: distributionService,
	}
}

// CalculateRequest is the body of a recalculation trigger.
type CalculateRequest struct {
	ForceFullPeriod bool `json:"forceFullPeriod"`
	// Preview computes without persisting, for what-if comparisons.
	Preview bool `json:"preview"`
}

// CalculateResult pairs the wire summary with the full per-investor detail.
type CalculateResult struct {
	Summary     models.CalculationResponse `json:"summary"`
	PerInvestor []models.InvestorShare     `json:"per_investor,omitempty"`
}

// HandleFinancialYears handles GET and POST /api/financial-years
// @Summary List or create financial years
// @Tags financial-years
// @Accept json
// @Produce json
// @Success 200 {array} models.FinancialYear
// @Failure 400 {string} string "Bad request"
// @Failure 500 {string} string "Internal server error"
// @Router /financial-years [get]
func (h *FinancialYearHandler) HandleFinancialYears(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		years, err := h.yearService.ListFinancialYears(r.Context())
		if err != nil {
			http.Error(w, "Failed to list financial years: "+err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(years)

	case http.MethodPost:
		var year models.FinancialYear
		if err := json.NewDecoder(r.Body).Decode(&year); err != nil {
			http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.yearService.CreateFinancialYear(r.Context(), &year); err != nil {
			http.Error(w, "Failed to create financial year: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(year)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleFinancialYear handles GET and PUT /api/financial-years/{id}.
// Period name and bounds are editable only while the year is pending.
// @Summary Get or update a financial year
// @Tags financial-years
// @Accept json
// @Produce json
// @Param id path string true "Financial year ID"
// @Success 200 {object} models.FinancialYear
// @Failure 404 {string} string "Financial year not found"
// @Failure 409 {string} string "Year already approved"
// @Router /financial-years/{id} [get]
func (h *FinancialYearHandler) HandleFinancialYear(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Financial year ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		year, err := h.yearService.GetFinancialYear(r.Context(), id)
		if err != nil {
			writeYearError(w, err)
			return
		}
		json.NewEncoder(w).Encode(year)

	case http.MethodPut:
		var year models.FinancialYear
		if err := json.NewDecoder(r.Body).Decode(&year); err != nil {
			http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		year.ID = id
		if err := h.yearService.UpdateFinancialYear(r.Context(), &year); err != nil {
			if errors.Is(err, apperrors.ErrYearApproved) {
				http.Error(w, "Financial year is already approved and can no longer be edited", http.StatusConflict)
				return
			}
			writeYearError(w, err)
			return
		}
		json.NewEncoder(w).Encode(year)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleDistributions handles GET /api/financial-years/{id}/distributions.
// Inactive distributions are included, flagged, for historical display.
// @Summary List a financial year's distributions
// @Tags financial-years
// @Produce json
// @Param id path string true "Financial year ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {string} string "Financial year not found"
// @Router /financial-years/{id}/distributions [get]
func (h *FinancialYearHandler) HandleDistributions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := mux.Vars(r)["id"]
	distributions, err := h.distributionService.ListByYear(r.Context(), id)
	if err != nil {
		writeYearError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"distributions": distributions})
}

// HandleCalculate handles POST /api/financial-years/{id}/calculate-distributions.
// An already-approved year answers with status "approved" instead of
// recalculating; that is an informational state, not an error.
// @Summary Recalculate a financial year's distributions
// @Tags financial-years
// @Accept json
// @Produce json
// @Param id path string true "Financial year ID"
// @Param body body CalculateRequest true "Calculation options"
// @Success 200 {object} CalculateResult
// @Failure 404 {string} string "Financial year not found"
// @Failure 409 {string} string "Superseded by a newer recalculation"
// @Router /financial-years/{id}/calculate-distributions [post]
func (h *FinancialYearHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := mux.Vars(r)["id"]

	var req CalculateRequest
	if r.Body != nil {
		// An empty body means a default (daily-rate, persisted) pass.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var result *models.DistributionResult
	var err error
	if req.Preview {
		result, err = h.distributionService.Preview(r.Context(), id, req.ForceFullPeriod)
	} else {
		result, err = h.distributionService.Recalculate(r.Context(), id, req.ForceFullPeriod)
	}

	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrYearApproved):
			json.NewEncoder(w).Encode(CalculateResult{Summary: models.CalculationResponse{
				Status:  "approved",
				Message: "Financial year is already approved; distributions are final",
			}})
		case errors.Is(err, apperrors.ErrStaleCalculation):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			writeYearError(w, err)
		}
		return
	}

	summary := result.Summary
	json.NewEncoder(w).Encode(CalculateResult{
		Summary: models.CalculationResponse{
			Status:                "calculated",
			ElapsedDays:           summary.ElapsedDays,
			TotalDaysInYear:       summary.TotalDays,
			TotalCalculatedProfit: summary.TotalDistributed,
			CalculationMessage: fmt.Sprintf("Distributed %s across %d investors using the %s method",
				summary.TotalDistributed.String(), summary.ActiveInvestors, summary.Method),
		},
		PerInvestor: result.PerInvestor,
	})
}

// HandleApprove handles POST /api/financial-years/{id}/approve
// @Summary Approve a financial year's distributions
// @Description Freezes the year, credits distribution balances and applies profit rollover when enabled
// @Tags financial-years
// @Produce json
// @Param id path string true "Financial year ID"
// @Success 200 {object} models.FinancialYear
// @Failure 404 {string} string "Financial year not found"
// @Router /financial-years/{id}/approve [post]
func (h *FinancialYearHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := mux.Vars(r)["id"]
	year, err := h.distributionService.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrYearApproved) {
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "approved",
				"message": "Financial year was already approved",
			})
			return
		}
		writeYearError(w, err)
		return
	}
	json.NewEncoder(w).Encode(year)
}

func writeYearError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		http.Error(w, "Financial year not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
