package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mediasort/internal"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*internal.Config, error) {
	conf, err := internal.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		conf.Logging.Level = logLevelFlag
	}
	if flags.Changed("log-format") {
		conf.Logging.Format = logFormatFlag
	}
	if flags.Changed("exiftool") {
		conf.Metadata.UseExifTool = useExifToolFlag
	}
	if flags.Changed("filename-dates") {
		conf.Metadata.FilenameDates = filenameDatesFlag
	}
	if flags.Changed("no-verify") {
		conf.Copy.Verify = !noVerifyFlag
	}
	return conf, nil
}

func newLogger(conf *internal.Config) (*slog.Logger, func() error, error) {
	return internal.NewLogger(internal.LogOptions{
		Level:  conf.Logging.Level,
		Format: conf.Logging.Format,
		File:   conf.Logging.File,
	})
}

func runSort(cmd *cobra.Command, sourceDir, targetDir string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(conf)
	if err != nil {
		return err
	}
	defer closeLog()

	summary, err := sortOnce(conf, logger, sourceDir, targetDir, dryRunFlag)
	if summary != nil {
		printSummary(cmd.OutOrStdout(), summary)
	}
	return err
}

// sortOnce performs one complete run with its own run_id.
func sortOnce(conf *internal.Config, logger *slog.Logger, sourceDir, targetDir string, dryRun bool) (*internal.Summary, error) {
	logger = logger.With("run_id", uuid.NewString())

	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		logger.Error("source directory does not exist", "path", sourceDir)
		return nil, fmt.Errorf("%w: %s", internal.ErrSourceMissing, sourceDir)
	}

	if !dryRun {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", internal.ErrTargetUnavailable, targetDir, err)
		}
		if err := internal.CheckTargetWritable(targetDir); err != nil {
			return nil, err
		}
		lock, err := internal.NewTargetLock(targetDir)
		if err != nil {
			return nil, err
		}
		if err := lock.Acquire(); err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("failed to release target lock", "lock", lock.Path(), "error", err)
			}
		}()
	}

	store := internal.NewOSStore(conf.Copy.Verify)
	resolver := internal.NewResolver(store.Fs(), internal.ResolverOptions{
		UseExifTool:   conf.Metadata.UseExifTool,
		FilenameDates: conf.Metadata.FilenameDates,
		Logger:        logger,
	})
	defer resolver.Close()

	sorter := internal.NewSorter(store, resolver, internal.SorterOptions{
		PathFormat:  conf.Sorting.PathFormat,
		Extensions:  conf.Sorting.SupportedExtensions,
		UnsortedDir: conf.Sorting.UnsortedDir,
		DryRun:      dryRun,
		Logger:      logger,
	})

	logger.Debug("starting run", "source", sourceDir, "target", targetDir, "path_format", conf.Sorting.PathFormat)
	return sorter.Run(sourceDir, targetDir)
}

func printSummary(w io.Writer, summary *internal.Summary) {
	fmt.Fprintln(w, summary.Render())
	if report := summary.Errors.Report(); report != "" {
		fmt.Fprint(w, report)
	}
}
