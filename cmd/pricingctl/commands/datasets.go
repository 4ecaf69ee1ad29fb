package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the import history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, _, cleanup, err := newService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		datasets, err := service.ListDatasets(ctx)
		if err != nil {
			return err
		}

		if len(datasets) == 0 {
			fmt.Println("No datasets imported yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tUPLOADED\tROWS\tACTIVE")
		for _, d := range datasets {
			active := ""
			if d.Active {
				active = "*"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
				d.ID, d.Name, d.UploadedAt.Format("2006-01-02 15:04"), d.RowCount, active)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
