package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mediasort/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch <source_dir> <target_dir>",
	Short: "Sort once, then sort again whenever new media lands in the source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(conf)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return watchAndSort(ctx, watchOptions{
			conf:      conf,
			logger:    logger,
			sourceDir: args[0],
			targetDir: args[1],
			dryRun:    dryRunFlag,
			debounce:  internal.DefaultDebounce,
			out:       cmd.OutOrStdout(),
		})
	},
}

type watchOptions struct {
	conf      *internal.Config
	logger    *slog.Logger
	sourceDir string
	targetDir string
	dryRun    bool
	debounce  time.Duration
	out       io.Writer

	afterInitialPass func()
}

// watchAndSort subscribes to the source before the initial pass so nothing
// written during or right after it goes unnoticed.
func watchAndSort(ctx context.Context, opts watchOptions) error {
	logger := opts.logger
	pass := func() error {
		summary, err := sortOnce(opts.conf, logger, opts.sourceDir, opts.targetDir, opts.dryRun)
		if summary != nil {
			printSummary(opts.out, summary)
		}
		return err
	}

	watcher, err := internal.NewWatcher(opts.sourceDir, opts.conf.Sorting.SupportedExtensions, opts.debounce, logger)
	if err != nil {
		// A missing source is reported the same way as for a single run.
		if passErr := pass(); passErr != nil {
			return passErr
		}
		return err
	}
	defer watcher.Close()

	if err := pass(); err != nil {
		return err
	}
	if opts.afterInitialPass != nil {
		opts.afterInitialPass()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("watching for new media", "path", opts.sourceDir)
	var fatal error
	err = watcher.Run(ctx, func() {
		if err := pass(); err != nil {
			if errors.Is(err, internal.ErrTargetLocked) {
				logger.Warn("target busy, will retry on next change", "error", err)
				return
			}
			fatal = err
			cancel()
		}
	})
	if fatal != nil {
		return fatal
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("watch stopped")
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
