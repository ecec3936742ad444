package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/winstack/internal/compositor"
	"github.com/jmylchreest/winstack/internal/demo"
	"github.com/jmylchreest/winstack/internal/runloop"
)

var inspectOpts struct {
	format        string
	cards         int
	notifications int
	midTransition bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run a scripted scenario and print the compositor state",
	Long: `Run a scripted scenario without a terminal and print a snapshot of
both window stacks, their load states and render bits, the framebuffer
owner, the input target and any running transition.

Examples:
  # Two cards and one notification, as YAML
  winstack inspect --cards 2 --notifications 1

  # Stop half way through a slide, as JSON
  winstack inspect --cards 1 --mid-transition --format json`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectOpts.format, "format", "f", "yaml",
		"Output format (yaml, json)")
	inspectCmd.Flags().IntVar(&inspectOpts.cards, "cards", 1,
		"Number of cards to push onto the primary stack")
	inspectCmd.Flags().IntVar(&inspectOpts.notifications, "notifications", 0,
		"Number of notifications to send to the overlay")
	inspectCmd.Flags().BoolVar(&inspectOpts.midTransition, "mid-transition", false,
		"Push one more card and stop half way through its slide")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectOpts.format != "yaml" && inspectOpts.format != "json" {
		return fmt.Errorf("unknown format %q: must be yaml or json", inspectOpts.format)
	}

	loop := runloop.New(runloop.Options{
		Compositor: compositor.Options{
			Screen: cfg.ScreenSize(),
			Transition: compositor.TransitionOptions{
				Duration: cfg.Transition.Duration.Duration(),
				Curve:    cfg.Curve(),
			},
		},
		FrameRate: cfg.Simulator.FrameRate,
		Logger:    logger,
	})
	app := demo.New(loop, demo.Options{Config: cfg, Logger: logger})

	scenario := demo.Scenario{
		Cards:         inspectOpts.cards,
		Notifications: inspectOpts.notifications,
		MidTransition: inspectOpts.midTransition,
	}
	if err := scenario.Run(app); err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}

	return writeSnapshot(cmd.OutOrStdout(), loop.Compositor().Snapshot(), inspectOpts.format)
}

func writeSnapshot(w io.Writer, snap compositor.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
}
