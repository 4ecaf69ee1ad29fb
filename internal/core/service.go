package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Age bounds accepted on quote and comparison requests.
const (
	MinQuoteAge = 18
	MaxQuoteAge = 100
)

// Service provides the pricing core: quote lookup, comparison, dataset
// import and option enumeration. All reads resolve the active dataset
// through the store, so a reader sees either the fully-old or fully-new
// dataset around an activation flip, never a mix.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetQuote returns all provider quotes matching the exact filter set.
// Returns ErrNoActiveDataset when nothing has been imported yet and
// ErrNoQuotes when the active dataset has no matching record.
func (s *Service) GetQuote(ctx context.Context, req QuoteRequest) ([]Quote, error) {
	if err := validateAge(req.Age); err != nil {
		return nil, err
	}
	zipPrefix, err := zipToPrefix(req.ZipCode)
	if err != nil {
		return nil, err
	}
	model := strings.ToLower(strings.TrimSpace(req.InsuranceModel))
	if model == "" {
		return nil, fmt.Errorf("%w: insurance_model is required", ErrInvalidRequest)
	}
	if req.Deductible <= 0 {
		return nil, fmt.Errorf("%w: deductible must be positive", ErrInvalidRequest)
	}

	active, err := s.store.ActiveDataset(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := s.store.MatchPrices(ctx, active.ID, MatchFilter{
		Age:              req.Age,
		ZipPrefix:        zipPrefix,
		InsuranceModel:   &model,
		Deductible:       &req.Deductible,
		AccidentCoverage: req.AccidentCoverage,
	})
	if err != nil {
		return nil, fmt.Errorf("match prices: %w", err)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w for zip %s*, age %d, %s", ErrNoQuotes, zipPrefix, req.Age, model)
	}

	return roundQuotes(quotes), nil
}

// CompareQuotes returns matching quotes ranked by monthly premium
// ascending plus the cheapest option. Model and deductible filters are
// skipped when unset; an empty result is valid.
func (s *Service) CompareQuotes(ctx context.Context, req CompareRequest) (*Comparison, error) {
	start := time.Now()

	if err := validateAge(req.Age); err != nil {
		return nil, err
	}
	zipPrefix, err := zipToPrefix(req.ZipCode)
	if err != nil {
		return nil, err
	}

	filter := MatchFilter{
		Age:              req.Age,
		ZipPrefix:        zipPrefix,
		AccidentCoverage: req.AccidentCoverage,
		OrderByPremium:   true,
	}
	if req.InsuranceModel != nil && *req.InsuranceModel != "" {
		model := strings.ToLower(strings.TrimSpace(*req.InsuranceModel))
		filter.InsuranceModel = &model
	}
	if req.Deductible != nil && *req.Deductible > 0 {
		filter.Deductible = req.Deductible
	}

	active, err := s.store.ActiveDataset(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := s.store.MatchPrices(ctx, active.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("match prices: %w", err)
	}

	// Re-rank in memory: the store order for equal premiums is
	// unspecified, Rank pins it to stable-by-insertion-order.
	ranked, cheapest := Rank(roundQuotes(quotes))

	return &Comparison{
		Quotes:      ranked,
		Cheapest:    cheapest,
		QueryTimeMs: Round2(float64(time.Since(start).Microseconds()) / 1000),
	}, nil
}

// Health reports service status and the active dataset. A missing
// active dataset is still healthy, just unhelpful.
func (s *Service) Health(ctx context.Context) (*Health, error) {
	h := &Health{Status: "healthy"}

	active, err := s.store.ActiveDataset(ctx)
	switch {
	case err == nil:
		h.ActiveDataset = active.Name
		h.RowCount = active.RowCount
	case isNoActiveDataset(err):
		// No import yet: empty health payload.
	default:
		return nil, err
	}

	return h, nil
}

// ListOptions enumerates the filter values present in the active
// dataset for UI dropdowns. Empty slices when no dataset is active.
// Repeated calls against an unchanged dataset return identical sets.
func (s *Service) ListOptions(ctx context.Context) (*Options, error) {
	active, err := s.store.ActiveDataset(ctx)
	if isNoActiveDataset(err) {
		return &Options{
			InsuranceModels: []string{},
			Deductibles:     []int{},
			Providers:       []ProviderOption{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	opts, err := s.store.Options(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return opts, nil
}

// ListDatasets returns the import history, newest first.
func (s *Service) ListDatasets(ctx context.Context) ([]Dataset, error) {
	return s.store.ListDatasets(ctx)
}

// ListProviders returns the provider reference entities.
func (s *Service) ListProviders(ctx context.Context) ([]Provider, error) {
	return s.store.ListProviders(ctx)
}

func validateAge(age int) error {
	if age < MinQuoteAge || age > MaxQuoteAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidRequest, MinQuoteAge, MaxQuoteAge)
	}
	return nil
}

// zipToPrefix validates a 5-character ZIP and returns its 3-character
// matching prefix.
func zipToPrefix(zip string) (string, error) {
	zip = strings.TrimSpace(zip)
	if len(zip) != 5 {
		return "", fmt.Errorf("%w: zip_code must be exactly 5 characters", ErrInvalidRequest)
	}
	return zip[:3], nil
}

func roundQuotes(quotes []Quote) []Quote {
	for i := range quotes {
		quotes[i].MonthlyPremium = Round2(quotes[i].MonthlyPremium)
		quotes[i].AnnualPremium = Round2(quotes[i].AnnualPremium)
	}
	return quotes
}

func isNoActiveDataset(err error) bool {
	return errors.Is(err, ErrNoActiveDataset)
}
