package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lamalux/pricing/internal/core"
)

// MatchPrices evaluates the match predicate against one dataset.
// Every clause is conjoined; model and deductible are skipped when nil.
// Ordering adds a secondary id sort so equal premiums rank by
// insertion order.
func (s *Postgres) MatchPrices(ctx context.Context, datasetID int64, f core.MatchFilter) ([]core.Quote, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT provider_name, provider_code, monthly_premium, annual_premium,
		       deductible, insurance_model, accident_coverage
		FROM insurance_prices
		WHERE dataset_id = $1
		  AND zip_prefix = $2
		  AND accident_coverage = $3
		  AND age_min <= $4 AND age_max >= $4`)

	args := []any{datasetID, f.ZipPrefix, f.AccidentCoverage, f.Age}

	if f.InsuranceModel != nil {
		args = append(args, strings.ToLower(*f.InsuranceModel))
		fmt.Fprintf(&b, " AND insurance_model = $%d", len(args))
	}
	if f.Deductible != nil {
		args = append(args, *f.Deductible)
		fmt.Fprintf(&b, " AND deductible = $%d", len(args))
	}
	if f.OrderByPremium {
		b.WriteString(" ORDER BY monthly_premium ASC, id ASC")
	}

	rows, err := s.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	quotes := make([]core.Quote, 0)
	for rows.Next() {
		var q core.Quote
		err := rows.Scan(
			&q.ProviderName, &q.ProviderCode, &q.MonthlyPremium, &q.AnnualPremium,
			&q.Deductible, &q.InsuranceModel, &q.AccidentCoverage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// Options returns the distinct filter values present in one dataset.
func (s *Postgres) Options(ctx context.Context, datasetID int64) (*core.Options, error) {
	opts := &core.Options{
		InsuranceModels: []string{},
		Deductibles:     []int{},
		Providers:       []core.ProviderOption{},
	}

	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT insurance_model FROM insurance_prices
		WHERE dataset_id = $1 ORDER BY insurance_model
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query models: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		opts.InsuranceModels = append(opts.InsuranceModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT DISTINCT deductible FROM insurance_prices
		WHERE dataset_id = $1 ORDER BY deductible
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query deductibles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan deductible: %w", err)
		}
		opts.Deductibles = append(opts.Deductibles, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT DISTINCT provider_name, provider_code FROM insurance_prices
		WHERE dataset_id = $1 ORDER BY provider_name
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p core.ProviderOption
		if err := rows.Scan(&p.Name, &p.Code); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		opts.Providers = append(opts.Providers, p)
	}
	return opts, rows.Err()
}
