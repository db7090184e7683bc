package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/trafficwatch/pkg/export"
)

func newChartCmd(o *options) *cobra.Command {
	var output, title string
	cmd := &cobra.Command{
		Use:   "chart [logfile]",
		Short: "Render the baseline and the predicted curve as an HTML chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup(cmd, o, args)
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := export.WriteChart(f, a.Model, title); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "baseline.html", "HTML file to write")
	cmd.Flags().StringVar(&title, "title", "Traffic baseline", "chart title")
	return cmd
}
