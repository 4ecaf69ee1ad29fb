package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Import reads a pricing spreadsheet, normalizes every row, and commits
// the batch as a new dataset. The batch is all-or-nothing: every row is
// validated before anything touches the store, and the store commits
// rows and the activation flip in one transaction. On any failure the
// previously active dataset remains active and untouched.
//
// datasetName is optional; it defaults to an import timestamp label.
func (s *Service) Import(ctx context.Context, datasetName, fileName string, r io.Reader) (*ImportResult, error) {
	start := time.Now()
	importID := uuid.New().String()

	log := slog.With("import_id", importID, "file", fileName)
	log.Info("import started")

	header, dataRows, err := ReadSpreadsheet(fileName, r)
	if err != nil {
		log.Warn("import rejected", "error", err)
		return nil, err
	}

	rows, err := NormalizeRows(header, dataRows)
	if err != nil {
		log.Warn("import rejected", "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows after header", ErrBadImportFile)
	}

	if datasetName == "" {
		datasetName = "Import " + start.Format("2006-01-02 15:04")
	}

	dataset, err := s.store.CreateDataset(ctx, datasetName, rows)
	if err != nil {
		log.Error("import failed", "error", err)
		return nil, fmt.Errorf("create dataset: %w", err)
	}

	log.Info("import complete",
		"dataset_id", dataset.ID,
		"dataset", dataset.Name,
		"rows", dataset.RowCount,
		"duration", time.Since(start),
	)

	return &ImportResult{
		ImportID:  importID,
		DatasetID: dataset.ID,
		Dataset:   dataset.Name,
		Rows:      dataset.RowCount,
		Duration:  time.Since(start),
	}, nil
}

// ImportRows commits pre-normalized rows as a new dataset. The seeder
// and tests use this to bypass file parsing.
func (s *Service) ImportRows(ctx context.Context, datasetName string, rows []PriceRow) (*ImportResult, error) {
	start := time.Now()

	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to import")
	}
	if datasetName == "" {
		datasetName = "Import " + start.Format("2006-01-02 15:04")
	}

	dataset, err := s.store.CreateDataset(ctx, datasetName, rows)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}

	return &ImportResult{
		ImportID:  uuid.New().String(),
		DatasetID: dataset.ID,
		Dataset:   dataset.Name,
		Rows:      dataset.RowCount,
		Duration:  time.Since(start),
	}, nil
}
