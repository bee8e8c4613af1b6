package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// ChangeWatcher defines the interface for receiving batched document changes.
type ChangeWatcher interface {
	Start(ctx context.Context) error
	Changes() <-chan []string
	Stop() error
}

// WatcherFactory builds a ChangeWatcher over an input folder with the given
// debounce interval.
type WatcherFactory func(folder string, debounce time.Duration) (ChangeWatcher, error)

// recombine runs one combine pass, reporting failures without stopping the
// watch loop.
func recombine(cmd *cobra.Command, runner CombineRunner, inputFolder, outputFolder string) {
	result, err := runner.Combine(cmd.Context(), inputFolder, outputFolder, false)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), FormatError(err))
		return
	}
	errCount, warnCount := countIssues(result.Issues)
	formatCombineHuman(cmd.OutOrStdout(), result, errCount, warnCount)
}

// runWatch performs an initial combine and then recombines on every change
// batch until the context is cancelled.
func runWatch(cmd *cobra.Command, runner CombineRunner, newWatcher WatcherFactory, inputFolder, outputFolder string, debounce time.Duration) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	recombine(cmd, runner, inputFolder, outputFolder)

	watcher, err := newWatcher(inputFolder, debounce)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "watching %s\n", inputFolder)

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-watcher.Changes():
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "changed: %s\n", strings.Join(batch, ", "))
			recombine(cmd, runner, inputFolder, outputFolder)
		}
	}
}

// NewWatchCmd creates the watch command with the given combine runner and
// watcher factory.
func NewWatchCmd(runner CombineRunner, newWatcher WatcherFactory) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:          "watch <input-folder> <output-folder>",
		Short:        "Recombine automatically whenever documents change",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			interval := GetSettings().Watch.Debounce
			if cmd.Flags().Changed("debounce") {
				interval = debounce
			}
			return runWatch(cmd, runner, newWatcher, args[0], args[1], interval)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period before recombining after a change")

	return cmd
}
