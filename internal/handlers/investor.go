package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/services"
)

type InvestorHandler struct {
	investorService services.InvestorService
}

func NewInvestorHandler(investorService services.InvestorService) *InvestorHandler {
	return &InvestorHandler{investorService: investorService}
}

// HandleInvestors handles GET and POST /api/investors
// @Summary List or create investors
// @Tags investors
// @Accept json
// @Produce json
// @Param is_active query bool false "Filter by active status"
// @Param search query string false "Search by name or national ID"
// @Param limit query int false "Limit results"
// @Param offset query int false "Offset results"
// @Success 200 {array} models.Investor
// @Failure 400 {string} string "Bad request"
// @Failure 500 {string} string "Internal server error"
// @Router /investors [get]
func (h *InvestorHandler) HandleInvestors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		filter := &models.InvestorFilter{}
		if isActiveStr := r.URL.Query().Get("is_active"); isActiveStr != "" {
			if isActive, err := strconv.ParseBool(isActiveStr); err == nil {
				filter.IsActive = &isActive
			}
		}
		filter.Search = r.URL.Query().Get("search")
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
				filter.Limit = limit
			}
		}
		if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
			if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
				filter.Offset = offset
			}
		}

		investors, err := h.investorService.ListInvestors(r.Context(), filter)
		if err != nil {
			http.Error(w, "Failed to list investors: "+err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(investors)

	case http.MethodPost:
		var investor models.Investor
		if err := json.NewDecoder(r.Body).Decode(&investor); err != nil {
			http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.investorService.CreateInvestor(r.Context(), &investor); err != nil {
			http.Error(w, "Failed to create investor: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(investor)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleInvestor handles GET, PUT and DELETE /api/investors/{id}.
// DELETE deactivates: the investor is excluded from future recalculations
// but keeps all historical distributions, flagged inactive.
// @Summary Get, update or deactivate an investor
// @Tags investors
// @Accept json
// @Produce json
// @Param id path string true "Investor ID"
// @Success 200 {object} models.Investor
// @Failure 404 {string} string "Investor not found"
// @Failure 500 {string} string "Internal server error"
// @Router /investors/{id} [get]
func (h *InvestorHandler) HandleInvestor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Investor ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		investor, err := h.investorService.GetInvestor(r.Context(), id)
		if err != nil {
			writeInvestorError(w, err)
			return
		}
		json.NewEncoder(w).Encode(investor)

	case http.MethodPut:
		var investor models.Investor
		if err := json.NewDecoder(r.Body).Decode(&investor); err != nil {
			http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		investor.ID = id
		if err := h.investorService.UpdateInvestor(r.Context(), &investor); err != nil {
			writeInvestorError(w, err)
			return
		}
		json.NewEncoder(w).Encode(investor)

	case http.MethodDelete:
		if err := h.investorService.DeactivateInvestor(r.Context(), id); err != nil {
			writeInvestorError(w, err)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "deactivated", "id": id})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeInvestorError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		http.Error(w, "Investor not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
