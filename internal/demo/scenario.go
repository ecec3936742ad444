package demo

import (
	"errors"

	"github.com/jmylchreest/winstack/internal/runloop"
)

// maxSettleSteps bounds how many frames Settle waits for transitions.
const maxSettleSteps = 1000

// ErrUnsettled is returned when the loop keeps drawing past maxSettleSteps.
var ErrUnsettled = errors.New("loop did not settle")

// Scenario is a scripted sequence of client actions run without a terminal.
type Scenario struct {
	Cards         int
	Notifications int
	// MidTransition pushes one more card and stops half way through its
	// slide.
	MidTransition bool
}

// Settle steps the loop one frame at a time until no draw is pending and no
// transition is running.
func Settle(loop *runloop.Loop) error {
	for range maxSettleSteps {
		drew, err := loop.Step(loop.FrameInterval())
		if err != nil {
			return err
		}
		if !drew && !loop.Compositor().Transitioning() {
			return nil
		}
	}
	return ErrUnsettled
}

// Run plays s against the app.
func (s Scenario) Run(a *App) error {
	if err := a.Start(); err != nil {
		return err
	}
	if err := Settle(a.loop); err != nil {
		return err
	}

	for range s.Cards {
		if err := a.PushCard(); err != nil {
			return err
		}
		if err := Settle(a.loop); err != nil {
			return err
		}
	}

	for range s.Notifications {
		if err := a.NotifySample(); err != nil {
			return err
		}
		if err := Settle(a.loop); err != nil {
			return err
		}
	}

	if s.MidTransition {
		if err := a.PushCard(); err != nil {
			return err
		}
		half := a.comp.TransitionOptions().Duration / 2
		if _, err := a.loop.Step(0); err != nil {
			return err
		}
		if _, err := a.loop.Step(half); err != nil {
			return err
		}
	}
	return nil
}
