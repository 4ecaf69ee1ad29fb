package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate and activate a demo pricing dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, _, cleanup, err := newService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := service.Seed(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d sample price rows into dataset %q (id %d)\n",
			result.Rows, result.Dataset, result.DatasetID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
