package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/iconfont/internal/pipeline"
	"github.com/conneroisu/iconfont/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Rebuild the icon font whenever an icon changes",
	Long: `Build the icon font, then watch the input directory and rebuild the
whole font after every burst of changes to its .svg files.

Overwriting is confirmed at most once, before the first build.

Examples:
  iconfont watch                  # Watch icons/
  iconfont watch -i assets/svg -y # Watch another directory, never ask`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, pipeline.Options{
		Config:  cfg,
		Confirm: stdinConfirm(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)

	// the first build settled whether overwriting is fine
	cfg.Output.Force = true

	fileWatcher, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.SVGFilter)
	fileWatcher.AddFilter(watcher.NoHiddenFilter)
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, event := range events {
			logger.Debug(ctx, "Icon changed", "path", event.Path, "type", event.Type.String())
		}

		res, err := pipeline.Run(ctx, pipeline.Options{Config: cfg, Logger: logger})
		if err != nil {
			PrintError(err)
			return nil
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	})

	if err := fileWatcher.AddPath(cfg.Input.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Input.Dir, err)
	}
	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes. Press Ctrl+C to stop.\n", cfg.Input.Dir)
	<-ctx.Done()
	return nil
}
