package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/trafficwatch/pkg/export"
)

func newBaselineCmd(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "baseline [logfile]",
		Short: "Print the hourly baseline learned from a log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup(cmd, o, args)
			if err != nil {
				return err
			}
			defer cleanup()
			return export.Write(cmd.OutOrStdout(), format, export.Rows(a.Model.Snapshot()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", fmt.Sprintf("output format %v", export.Formats))
	return cmd
}
