// Package core provides the business logic for premium pricing:
// spreadsheet import, dataset activation, quote matching and ranking.
// This package has no transport dependencies and can be used by any frontend.
package core

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors surfaced to callers. The web layer maps these to
// HTTP status codes, everything else is treated as internal.
var (
	// ErrNoActiveDataset means no dataset has ever been activated.
	ErrNoActiveDataset = errors.New("no active pricing dataset")

	// ErrNoQuotes means the active dataset has no record matching the
	// full filter set of a strict quote request.
	ErrNoQuotes = errors.New("no quotes found")

	// ErrInvalidRequest marks request validation failures.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBadImportFile marks spreadsheet files that cannot be imported:
	// empty, oversized, or unparseable. Resubmitting the same file will
	// fail the same way; the file itself must be fixed.
	ErrBadImportFile = errors.New("unusable import file")
)

// Dataset is one import batch. At most one dataset is active at a time;
// historical datasets are retained for audit but never queried.
type Dataset struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
	Active     bool      `json:"active"`
	RowCount   int       `json:"rowCount"`
}

// PriceRow is a canonical priced record as produced by the import
// normalizer, before it is persisted. Rows are immutable after import.
type PriceRow struct {
	AgeMin           int
	AgeMax           int
	ZipPrefix        string
	InsuranceModel   string
	Deductible       int
	AccidentCoverage bool
	MonthlyPremium   float64
	AnnualPremium    float64
	ProviderName     string
	ProviderCode     string
}

// Provider is a reference entity used for UI enumeration. Quotes carry
// denormalized provider fields and do not depend on this table.
type Provider struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
	Active  bool   `json:"active"`
}

// Quote is one priced option returned to the caller. Premiums are
// rounded to 2 decimal places.
type Quote struct {
	ProviderName     string  `json:"providerName"`
	ProviderCode     string  `json:"providerCode"`
	MonthlyPremium   float64 `json:"monthlyPremium"`
	AnnualPremium    float64 `json:"annualPremium"`
	Deductible       int     `json:"deductible"`
	InsuranceModel   string  `json:"insuranceModel"`
	AccidentCoverage bool    `json:"accidentCoverage"`
}

// QuoteRequest is a strict lookup: every filter is required.
type QuoteRequest struct {
	Age              int    `json:"age"`
	ZipCode          string `json:"zipCode"`
	InsuranceModel   string `json:"insuranceModel"`
	Deductible       int    `json:"deductible"`
	AccidentCoverage bool   `json:"accidentCoverage"`
}

// CompareRequest relaxes model and deductible; when nil, all values of
// that dimension qualify and the caller gets a ranked comparison.
type CompareRequest struct {
	Age              int     `json:"age"`
	ZipCode          string  `json:"zipCode"`
	InsuranceModel   *string `json:"insuranceModel,omitempty"`
	Deductible       *int    `json:"deductible,omitempty"`
	AccidentCoverage bool    `json:"accidentCoverage"`
}

// Comparison is the result of a comparison query. An empty quote list
// is a valid result, not an error.
type Comparison struct {
	Quotes      []Quote `json:"quotes"`
	Cheapest    *Quote  `json:"cheapest,omitempty"`
	QueryTimeMs float64 `json:"queryTimeMs"`
}

// Health reports the currently active dataset, if any.
type Health struct {
	Status        string `json:"status"`
	ActiveDataset string `json:"activeDataset,omitempty"`
	RowCount      int    `json:"rowCount"`
}

// Options enumerates the filter values available in the active dataset,
// for UI dropdowns. All slices are empty when no dataset is active.
type Options struct {
	InsuranceModels []string         `json:"insuranceModels"`
	Deductibles     []int            `json:"deductibles"`
	Providers       []ProviderOption `json:"providers"`
}

// ProviderOption is a provider as seen inside the active dataset.
type ProviderOption struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	ImportID  string        `json:"importId"`
	DatasetID int64         `json:"datasetId"`
	Dataset   string        `json:"dataset"`
	Rows      int           `json:"rows"`
	Duration  time.Duration `json:"-"`
}

// MatchFilter is the predicate the store evaluates against a dataset.
// All set clauses are conjoined; InsuranceModel and Deductible are
// skipped when nil (comparison mode). AccidentCoverage is always an
// exact-equality clause, and Age must fall inside [age_min, age_max].
type MatchFilter struct {
	Age              int
	ZipPrefix        string
	InsuranceModel   *string
	Deductible       *int
	AccidentCoverage bool

	// OrderByPremium asks the store for monthly-premium ascending order.
	// Without it the match order is unspecified.
	OrderByPremium bool
}

// Store is the persistence boundary for the pricing core.
// Implemented by store.Postgres; tests use an in-memory fake.
type Store interface {
	// ActiveDataset returns the single active dataset, or
	// ErrNoActiveDataset when none has ever been activated.
	ActiveDataset(ctx context.Context) (*Dataset, error)

	// MatchPrices returns records of the given dataset satisfying the
	// filter. An empty slice is a valid result.
	MatchPrices(ctx context.Context, datasetID int64, f MatchFilter) ([]Quote, error)

	// Options returns the distinct models, deductibles (sorted
	// ascending) and providers present in the given dataset.
	Options(ctx context.Context, datasetID int64) (*Options, error)

	// CreateDataset persists a fully staged batch and atomically flips
	// activation: all-or-nothing, previous dataset deactivated in the
	// same transaction, never zero active datasets afterwards.
	CreateDataset(ctx context.Context, name string, rows []PriceRow) (*Dataset, error)

	// ListDatasets returns all datasets, newest first.
	ListDatasets(ctx context.Context) ([]Dataset, error)

	// ListProviders returns the provider reference entities.
	ListProviders(ctx context.Context) ([]Provider, error)
}
