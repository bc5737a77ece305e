package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openhta/ceaplane/internal/cea"
	"github.com/openhta/ceaplane/internal/input"
	"github.com/openhta/ceaplane/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-summarize therapies as their delta files change",
	Long: `Watch the artifact root for changes to deltas.csv files and re-run the
quadrant summary for each changed therapy, appending a fresh section to the
markdown artifact.

Useful when an upstream pipeline rewrites delta files on its own schedule:
the accumulated artifact then records every revision in order. Runs in the
foreground; press Ctrl+C to stop.`,
	Example: `  ceaplane watch
  ceaplane watch --root /data/psa`,
	RunE: runWatchCmd,
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	w, err := watcher.New(rootDir, func(ev watcher.Event) {
		deltas, err := input.ReadDeltas(ev.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			return
		}
		if err := appendSummary(ev.Therapy, ev.Perspective, cea.Summarize(deltas)); err != nil {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("Watching %s for delta changes (press Ctrl+C to stop)...\n", rootDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	return w.Stop()
}
