package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active dataset and available options",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, _, cleanup, err := newService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		health, err := service.Health(ctx)
		if err != nil {
			return err
		}

		if health.ActiveDataset == "" {
			fmt.Println("No active dataset. Run 'pricingctl import <file>' or 'pricingctl seed'.")
			return nil
		}

		fmt.Printf("Active dataset: %s (%d rows)\n", health.ActiveDataset, health.RowCount)

		opts, err := service.ListOptions(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Models:      %v\n", opts.InsuranceModels)
		fmt.Printf("Deductibles: %v\n", opts.Deductibles)
		fmt.Printf("Providers:   %d\n", len(opts.Providers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
