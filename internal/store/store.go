// Package store implements core.Store on PostgreSQL using pgx.
//
// The pricing table is read-mostly: match queries are plain indexed
// SELECTs with no locking. Import is the only writer and runs inside a
// single transaction guarded by an advisory lock, so concurrent imports
// serialize and readers observe the activation flip atomically.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamalux/pricing/internal/core"
)

// importLockKey is the advisory lock key serializing imports.
const importLockKey = 0x707269 // "pri"

// Postgres is the pgx-backed price store.
type Postgres struct {
	pool *pgxpool.Pool
}

// New creates a Postgres store over the given pool.
func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// ActiveDataset returns the single active dataset.
func (s *Postgres) ActiveDataset(ctx context.Context) (*core.Dataset, error) {
	query := `
		SELECT id, name, uploaded_at, is_active, row_count
		FROM pricing_datasets
		WHERE is_active
	`

	var d core.Dataset
	err := s.pool.QueryRow(ctx, query).Scan(&d.ID, &d.Name, &d.UploadedAt, &d.Active, &d.RowCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNoActiveDataset
	}
	if err != nil {
		return nil, fmt.Errorf("query active dataset: %w", err)
	}
	return &d, nil
}

// ListDatasets returns all datasets, newest first.
func (s *Postgres) ListDatasets(ctx context.Context) ([]core.Dataset, error) {
	query := `
		SELECT id, name, uploaded_at, is_active, row_count
		FROM pricing_datasets
		ORDER BY id DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	datasets := make([]core.Dataset, 0)
	for rows.Next() {
		var d core.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.UploadedAt, &d.Active, &d.RowCount); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// ListProviders returns the provider reference entities.
func (s *Postgres) ListProviders(ctx context.Context) ([]core.Provider, error) {
	query := `
		SELECT id, code, name, COALESCE(logo_url, ''), is_active
		FROM providers
		ORDER BY name
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()

	providers := make([]core.Provider, 0)
	for rows.Next() {
		var p core.Provider
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.LogoURL, &p.Active); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// CreateDataset stages a batch and flips activation in one transaction.
// The new dataset is inserted inactive, rows land via COPY, and only
// then does the old active flag move to the new dataset. A failure at
// any point rolls everything back, leaving the previous dataset active.
func (s *Postgres) CreateDataset(ctx context.Context, name string, rows []core.PriceRow) (*core.Dataset, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent imports. Released at commit/rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, importLockKey); err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}

	var d core.Dataset
	err = tx.QueryRow(ctx, `
		INSERT INTO pricing_datasets (name, is_active, row_count)
		VALUES ($1, false, 0)
		RETURNING id, name, uploaded_at
	`, name).Scan(&d.ID, &d.Name, &d.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("insert dataset: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"insurance_prices"},
		[]string{
			"dataset_id", "age_min", "age_max", "zip_prefix", "insurance_model",
			"deductible", "accident_coverage", "monthly_premium", "annual_premium",
			"provider_name", "provider_code",
		},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{
				d.ID, r.AgeMin, r.AgeMax, r.ZipPrefix, r.InsuranceModel,
				r.Deductible, r.AccidentCoverage, r.MonthlyPremium, r.AnnualPremium,
				r.ProviderName, r.ProviderCode,
			}, nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("copy price rows: %w", err)
	}
	if copied != int64(len(rows)) {
		return nil, fmt.Errorf("copy price rows: expected %d rows, copied %d", len(rows), copied)
	}

	if err := upsertProviders(ctx, tx, rows); err != nil {
		return nil, err
	}

	// Flip activation: deactivate whatever was active, then activate
	// the fully staged dataset. Both inside this transaction, so a
	// reader never sees zero or two active datasets.
	if _, err := tx.Exec(ctx, `UPDATE pricing_datasets SET is_active = false WHERE is_active`); err != nil {
		return nil, fmt.Errorf("deactivate datasets: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE pricing_datasets SET is_active = true, row_count = $2 WHERE id = $1
	`, d.ID, len(rows)); err != nil {
		return nil, fmt.Errorf("activate dataset: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	d.Active = true
	d.RowCount = len(rows)
	return &d, nil
}

// upsertProviders keeps the provider reference table in sync with the
// providers seen in the imported rows.
func upsertProviders(ctx context.Context, tx pgx.Tx, rows []core.PriceRow) error {
	seen := make(map[string]string, 8)
	for _, r := range rows {
		seen[r.ProviderCode] = r.ProviderName
	}

	for code, name := range seen {
		_, err := tx.Exec(ctx, `
			INSERT INTO providers (code, name, is_active)
			VALUES ($1, $2, true)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, is_active = true
		`, code, name)
		if err != nil {
			return fmt.Errorf("upsert provider %s: %w", code, err)
		}
	}
	return nil
}
