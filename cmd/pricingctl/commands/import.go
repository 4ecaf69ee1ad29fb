package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a pricing spreadsheet as a new active dataset",
	Long: `Import reads a CSV or XLSX pricing sheet, validates every row, and
activates the batch as the new dataset. The import is all-or-nothing:
on any validation failure the previous dataset stays active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, cfg, cleanup, err := newService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		importCtx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
		defer cancel()

		result, err := service.Import(importCtx, importName, filepath.Base(path), f)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d rows into dataset %q (id %d) in %s\n",
			result.Rows, result.Dataset, result.DatasetID, result.Duration.Round(1e6))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "dataset display name (default: import timestamp)")
	rootCmd.AddCommand(importCmd)
}
