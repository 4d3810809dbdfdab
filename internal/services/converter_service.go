package services

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sahmapp/sahm/internal/models"
	"github.com/sahmapp/sahm/internal/repositories"
)

// ConverterService owns the cached exchange-rate settings and converts and
// formats monetary amounts for display. It is constructed once in cmd/server
// and injected into every consumer; there is no package-level singleton.
// Consumers subscribe to be notified synchronously after a settings update
// so no open view keeps rendering with a stale rate.
type ConverterService struct {
	repo   repositories.SettingsRepository
	logger *zap.Logger

	mu          sync.RWMutex
	settings    models.Settings
	subscribers map[int]func(models.Settings)
	nextSubID   int
}

// NewConverterService creates a converter operating on built-in defaults
// (USD, zero rate) until Load or UpdateSettings succeeds.
func NewConverterService(repo repositories.SettingsRepository, logger *zap.Logger) *ConverterService {
	return &ConverterService{
		repo:        repo,
		logger:      logger,
		settings:    models.DefaultSettings(),
		subscribers: make(map[int]func(models.Settings)),
	}
}

// Load reads the persisted settings into the cache. A load failure is logged
// and the converter keeps its defaults (pass-through conversion) so startup
// is never blocked on the settings row.
func (s *ConverterService) Load(ctx context.Context) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("could not load exchange-rate settings, using defaults",
			zap.Error(err))
		return
	}
	s.mu.Lock()
	s.settings = *settings
	s.mu.Unlock()
}

// Settings returns a copy of the cached settings.
func (s *ConverterService) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Convert converts an amount between USD and IQD using the cached rate.
// Identity pairs, unsupported pairs and a missing/non-positive rate all
// return the amount unchanged; conversion degrades, it never fails.
func (s *ConverterService) Convert(amount decimal.Decimal, from, to models.Currency) decimal.Decimal {
	if from == to {
		return amount
	}

	s.mu.RLock()
	rate := s.settings.USDToIQD
	s.mu.RUnlock()

	if !rate.IsPositive() {
		return amount
	}

	switch {
	case from == models.CurrencyUSD && to == models.CurrencyIQD:
		return amount.Mul(rate)
	case from == models.CurrencyIQD && to == models.CurrencyUSD:
		return amount.Div(rate)
	}
	return amount
}

// Format converts the amount to the default display currency and renders it
// with thousands separators and the currency symbol.
func (s *ConverterService) Format(amount decimal.Decimal, from models.Currency) string {
	return s.FormatIn(amount, from, s.Settings().DefaultCurrency)
}

// FormatIn converts the amount to the given display currency and renders it.
// USD shows 2 decimal places, IQD none.
func (s *ConverterService) FormatIn(amount decimal.Decimal, from, to models.Currency) string {
	converted := s.Convert(amount, from, to)
	return groupThousands(converted.StringFixed(to.DecimalPlaces())) + " " + to.Symbol()
}

// UpdateSettings validates and persists new settings, then swaps the cached
// copy and notifies every subscriber synchronously. On any failure the
// cache and subscribers are left untouched and the prior settings remain in
// effect.
func (s *ConverterService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if err := settings.Validate(); err != nil {
		return s.Settings(), err
	}
	settings.ID = models.SettingsID
	if err := s.repo.Save(ctx, &settings); err != nil {
		s.logger.Error("failed to persist exchange-rate settings", zap.Error(err))
		return s.Settings(), err
	}

	s.mu.Lock()
	s.settings = settings
	listeners := make([]func(models.Settings), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(settings)
	}

	s.logger.Info("exchange-rate settings updated",
		zap.String("default_currency", string(settings.DefaultCurrency)),
		zap.String("usd_to_iqd", settings.USDToIQD.String()))
	return settings, nil
}

// Subscribe registers a listener invoked after every successful settings
// update. The returned function unsubscribes; calling it more than once is
// harmless and no reference to the listener is retained afterwards.
func (s *ConverterService) Subscribe(fn func(models.Settings)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// groupThousands inserts comma separators into the integer part of a
// decimal string produced by StringFixed.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
