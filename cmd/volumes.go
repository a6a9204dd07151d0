package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/riadafridishibly/diskviz/logger"
)

var volumesCmd = &cobra.Command{
	Use:   "volumes",
	Short: "List the volumes a scan would visit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger.Setup(os.Stderr, logger.ParseLevel(cfg.LogLevel))

		vols, err := newLister(cfg).List(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMOUNT POINT\tTOTAL\tUSED\tUSE%\tSCANNED")
		for _, v := range vols {
			scanned := "yes"
			if v.Total <= 0 {
				scanned = "no"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f%%\t%s\n",
				v.Name, v.MountPoint,
				humanize.IBytes(uint64(v.Total)), //nolint:gosec // capacities are non-negative
				humanize.IBytes(uint64(v.Used)),  //nolint:gosec // capacities are non-negative
				v.UsagePercent(), scanned)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(volumesCmd)
}
