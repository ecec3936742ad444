package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/winstack/internal/sim"
)

var runOpts struct {
	watch bool
	shape string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the terminal simulator",
	Long: `Launch the terminal simulator of the display and its buttons.

The framebuffer is drawn with half-block characters, two pixels per cell.
A demo client provides a home menu, stackable cards and notifications.

Key bindings:
  k/↑         Up button
  j/↓         Down button
  enter       Select button
  esc         Back button
  n           Send a notification to the overlay
  p           Push a card
  o           Pop the top card
  ?           Toggle help
  q           Quit

With --watch, edits to the config file update the transition duration,
curve and animation setting while the simulator runs.`,
	RunE: runSimulator,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runOpts.watch, "watch", true,
		"Reload transition settings when the config file changes")
	runCmd.Flags().StringVar(&runOpts.shape, "shape", "",
		"Override the display shape (rect, round)")
}

func runSimulator(cmd *cobra.Command, args []string) error {
	c := *cfg
	if runOpts.shape != "" {
		c.Display.Shape = runOpts.shape
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return sim.Run(sim.RunOptions{
		Config:     &c,
		ConfigPath: configPath(),
		Watch:      runOpts.watch,
		Logger:     logger,
	})
}
