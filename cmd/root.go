// Package cmd wires the command line entry points.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riadafridishibly/diskviz/config"
	"github.com/riadafridishibly/diskviz/export"
	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/scanner"
	"github.com/riadafridishibly/diskviz/tui"
	"github.com/riadafridishibly/diskviz/volume"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:           "diskviz",
	Short:         "Inventory files on mounted volumes",
	Long:          "Scan every mounted volume, rank files by size, filter and export the result.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return cfg.Validate()
	},
	RunE: runInteractive,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "traversal goroutines per volume (0 = GOMAXPROCS)")
	flags.BoolVar(&cfg.FollowSymlinks, "follow-symlinks", cfg.FollowSymlinks, "resolve symlinks and traverse symlinked directories")
	flags.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory receiving disk_usage.json / disk_usage.csv")
	flags.IntVarP(&cfg.TopN, "top", "n", cfg.TopN, "files shown per volume")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.BoolVar(&cfg.AllPartitions, "all", cfg.AllPartitions, "include virtual filesystems")
	flags.StringArrayVar(&cfg.Roots, "root", cfg.Roots, "scan this directory instead of the mounted volumes (repeatable)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLister(c config.Config) volume.Lister {
	if len(c.Roots) > 0 {
		return volume.NewRootsLister(c.Roots)
	}
	return volume.NewSystemLister(c.AllPartitions)
}

func newScanner(c config.Config) *scanner.Scanner {
	return scanner.New(newLister(c), scanner.NewWalker(c.NumWorkers(), c.FollowSymlinks))
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	logFile, err := logger.CreateLogFile(os.TempDir())
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}
	defer logFile.Close()

	logger.Setup(logFile, logger.ParseLevel(cfg.LogLevel))
	fmt.Fprintln(cmd.OutOrStdout(), "Logfile is being written in:", logFile.Name())

	logger.Info().
		Int("workers", cfg.NumWorkers()).
		Bool("follow_symlinks", cfg.FollowSymlinks).
		Strs("roots", cfg.Roots).
		Msg("Starting interactive mode")

	app := tui.NewApp(newScanner(cfg), export.New(cfg.ExportDir), tui.Config{
		ReplaceHomeWithTilde: true,
		TopN:                 cfg.TopN,
	})
	return app.Run()
}
