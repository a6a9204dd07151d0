package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/riadafridishibly/diskviz/export"
	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/report"
	"github.com/riadafridishibly/diskviz/scanner"
)

var (
	exportFormats []string
	extFilter     string
	nameFilter    string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan once without the UI and print the largest files",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringSliceVarP(&exportFormats, "export", "e", nil, "export formats: json, csv or both")
	scanCmd.Flags().StringVar(&extFilter, "type", "", "only show files whose path ends with this suffix")
	scanCmd.Flags().StringVar(&nameFilter, "name", "", "only show files whose path contains this text")
	rootCmd.AddCommand(scanCmd)
}

// parseFormats expands the --export values, where "both" means json and csv.
// Repeated formats are exported once.
func parseFormats(values []string) ([]export.Format, error) {
	var formats []export.Format
	for _, v := range values {
		expanded := []export.Format{}
		if strings.EqualFold(v, "both") {
			expanded = append(expanded, export.FormatJSON, export.FormatCSV)
		} else {
			format, err := export.ParseFormat(v)
			if err != nil {
				return nil, err
			}
			expanded = append(expanded, format)
		}
		for _, f := range expanded {
			if !slices.Contains(formats, f) {
				formats = append(formats, f)
			}
		}
	}
	return formats, nil
}

func runScan(cmd *cobra.Command, _ []string) error {
	formats, err := parseFormats(exportFormats)
	if err != nil {
		return err
	}

	logger.Setup(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := newScanner(cfg).Run(ctx)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), r, extFilter, nameFilter, cfg.TopN)

	exporter := export.New(cfg.ExportDir)
	for _, format := range formats {
		path, err := exporter.Export(r, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	}
	return nil
}

func printReport(w io.Writer, r *scanner.Report, ext, name string, topN int) {
	for _, view := range report.Filter(r, ext, name) {
		v := view.Volume
		fmt.Fprintf(w, "Disk: %s (%s)\n", v.Name, v.MountPoint)
		fmt.Fprintf(w, "Total Space: %.2f GB\n", v.TotalGiB())
		fmt.Fprintf(w, "Used Space: %.2f GB (%.1f%%)\n", v.UsedGiB(), v.UsagePercent())
		for _, f := range view.Top(topN) {
			fmt.Fprintf(w, "File: %s, Size: %s\n", f.Path, report.FormatSize(f.Size))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Files: %s\n", humanize.Comma(int64(r.FileCount())))
	fmt.Fprintf(w, "Scan Duration: %.2f seconds\n", r.Seconds())
}
