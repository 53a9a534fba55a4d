// Command tileset finds the distinct tiles of a tile-based image and
// generates measurement textures.
//
// Usage:
//
//	tileset detect level.png --tile-width 16 --tile-height 16 --out atlas.png
//	tileset measure --size 256 --grid --labels floor,wall --out-dir textures
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/tileset"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		newStatus(os.Stderr).Error("%v", err)
		stop()
		os.Exit(1)
	}
}

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	verbose bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	var g globalOptions

	root := &cobra.Command{
		Use:           "tileset",
		Short:         "Find the distinct tiles of an image",
		Version:       tileset.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if g.noColor {
				color.NoColor = true
			}
			if g.verbose {
				tileset.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log detector activity to stderr")
	root.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newDetectCmd(), newMeasureCmd())
	return root
}
