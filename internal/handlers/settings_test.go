package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/services"
)

type memorySettingsRepo struct {
	settings models.Settings
}

func (m *memorySettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *memorySettingsRepo) Save(ctx context.Context, settings *models.Settings) error {
	m.settings = *settings
	return nil
}

func newSettingsHandler(t *testing.T) (*SettingsHandler, *services.ConverterService) {
	t.Helper()
	converter := services.NewConverterService(&memorySettingsRepo{settings: models.DefaultSettings()}, zap.NewNop())
	converter.Load(context.Background())
	return NewSettingsHandler(converter), converter
}

func TestHandleSettings_Get(t *testing.T) {
	handler, _ := newSettingsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	handler.HandleSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"default_currency":"USD"`)
}

func TestHandleSettings_Patch(t *testing.T) {
	handler, converter := newSettingsHandler(t)

	body := `{"default_currency":"IQD","usd_to_iqd":"1450"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.CurrencyIQD, converter.Settings().DefaultCurrency)
	assert.True(t, converter.Settings().USDToIQD.Equal(decimal.NewFromInt(1450)))
}

func TestHandleSettings_PatchRejectsBadRate(t *testing.T) {
	handler, converter := newSettingsHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"zero rate", `{"default_currency":"USD","usd_to_iqd":"0"}`},
		{"negative rate", `{"default_currency":"USD","usd_to_iqd":"-10"}`},
		{"unknown currency", `{"default_currency":"EUR","usd_to_iqd":"1450"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/settings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.HandleSettings(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, converter.Settings().HasRate(), "rejected update must not change settings")
		})
	}
}

func TestHandleSettings_MethodNotAllowed(t *testing.T) {
	handler, _ := newSettingsHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/settings", nil)
	rec := httptest.NewRecorder()
	handler.HandleSettings(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
