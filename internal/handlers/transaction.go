package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/sahmapp/sahm/internal/errors"
	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/services"
)

type TransactionHandler struct {
	transactionService services.TransactionService
}

func NewTransactionHandler(transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// HandleTransactions handles GET and POST /api/transactions
// @Summary List or create transactions
// @Description Deposits and withdrawals mutate the investor's contributed capital; profit payouts draw down distribution balances
// @Tags transactions
// @Accept json
// @Produce json
// @Param investor_id query string false "Filter by investor"
// @Param type query string false "Filter by type"
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Limit results"
// @Param offset query int false "Offset results"
// @Success 200 {array} models.Transaction
// @Failure 400 {string} string "Bad request"
// @Failure 500 {string} string "Internal server error"
// @Router /transactions [get]
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		filter := &models.TransactionFilter{}
		q := r.URL.Query()
		filter.InvestorID = q.Get("investor_id")
		if txType := q.Get("type"); txType != "" {
			filter.Types = []string{txType}
		}
		if startStr := q.Get("start"); startStr != "" {
			if t, err := time.Parse("2006-01-02", startStr); err == nil {
				filter.StartDate = &t
			}
		}
		if endStr := q.Get("end"); endStr != "" {
			if t, err := time.Parse("2006-01-02", endStr); err == nil {
				filter.EndDate = &t
			}
		}
		if limitStr := q.Get("limit"); limitStr != "" {
			if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
				filter.Limit = limit
			}
		}
		if offsetStr := q.Get("offset"); offsetStr != "" {
			if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
				filter.Offset = offset
			}
		}

		txs, err := h.transactionService.ListTransactions(r.Context(), filter)
		if err != nil {
			http.Error(w, "Failed to list transactions: "+err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(txs)

	case http.MethodPost:
		var tx models.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := tx.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := h.transactionService.CreateTransaction(r.Context(), &tx); err != nil {
			var insufficient *apperrors.ErrInsufficientBalance
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				http.Error(w, "Investor not found", http.StatusNotFound)
			case errors.As(err, &insufficient):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "Failed to create transaction: "+err.Error(), http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(tx)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
