package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/services"
)

type SettingsHandler struct {
	converter *services.ConverterService
}

func NewSettingsHandler(converter *services.ConverterService) *SettingsHandler {
	return &SettingsHandler{converter: converter}
}

// HandleSettings handles GET and PATCH /api/settings
// @Summary Get or update exchange-rate settings
// @Description Read the cached exchange-rate settings, or persist new ones and notify all consumers
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.Settings false "New settings (PATCH only)"
// @Success 200 {object} models.Settings
// @Failure 400 {string} string "Bad request"
// @Failure 500 {string} string "Internal server error"
// @Router /settings [get]
func (h *SettingsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(h.converter.Settings())

	case http.MethodPatch, http.MethodPut:
		var settings models.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := settings.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		persisted, err := h.converter.UpdateSettings(r.Context(), settings)
		if err != nil {
			http.Error(w, "Failed to update settings: "+err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(persisted)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
