package compositor

import (
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

// WindowSnapshot describes one stacked window.
type WindowSnapshot struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	State           string `yaml:"state" json:"state"`
	Background      string `yaml:"background" json:"background"`
	RenderScheduled bool   `yaml:"render_scheduled" json:"render_scheduled"`
	FrameOffset     int    `yaml:"frame_offset" json:"frame_offset"`
}

// TransitionSnapshot describes the running slide.
type TransitionSnapshot struct {
	Window    string `yaml:"window" json:"window"`
	Stack     string `yaml:"stack" json:"stack"`
	Direction string `yaml:"direction" json:"direction"`
	Offset    int    `yaml:"offset" json:"offset"`
	Duration  string `yaml:"duration" json:"duration"`
	Curve     string `yaml:"curve" json:"curve"`
}

// Snapshot is a serialisable view of the compositor.
type Snapshot struct {
	Width            int                 `yaml:"width" json:"width"`
	Height           int                 `yaml:"height" json:"height"`
	FramebufferOwner string              `yaml:"framebuffer_owner" json:"framebuffer_owner"`
	InputTarget      string              `yaml:"input_target,omitempty" json:"input_target,omitempty"`
	Primary          []WindowSnapshot    `yaml:"primary" json:"primary"`
	Overlay          []WindowSnapshot    `yaml:"overlay" json:"overlay"`
	Transition       *TransitionSnapshot `yaml:"transition,omitempty" json:"transition,omitempty"`
}

// Snapshot captures both stacks, head first.
func (c *Compositor) Snapshot() Snapshot {
	snap := Snapshot{
		Width:            c.screen.W,
		Height:           c.screen.H,
		FramebufferOwner: c.owner.String(),
		Primary:          snapshotWindows(c.Windows(thread.Primary)),
		Overlay:          snapshotWindows(c.Windows(thread.Overlay)),
	}
	if w := c.InputTarget(); w != nil {
		snap.InputTarget = w.Name()
	}
	if t := c.active; t != nil {
		snap.Transition = &TransitionSnapshot{
			Window:    t.win.Name(),
			Stack:     t.stack.String(),
			Direction: t.dir.String(),
			Offset:    t.offset,
			Duration:  t.anim.Duration().String(),
			Curve:     string(c.transitionOpts.Curve),
		}
	}
	return snap
}

func snapshotWindows(ws []*window.Window) []WindowSnapshot {
	out := make([]WindowSnapshot, 0, len(ws))
	for _, w := range ws {
		out = append(out, WindowSnapshot{
			ID:              w.ID(),
			Name:            w.Name(),
			State:           w.State().String(),
			Background:      w.BackgroundColor().Hex(),
			RenderScheduled: w.RenderScheduled(),
			FrameOffset:     w.FrameOffset(),
		})
	}
	return out
}
