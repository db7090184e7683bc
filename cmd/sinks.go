package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/trafficwatch/app/plugins"
)

func newSinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sinks",
		Short: "List the metrics sink types usable in the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range plugins.SinkTypes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
