package compositor

import (
	"fmt"

	"github.com/jmylchreest/winstack/internal/nodelist"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

// Direction is the way the incoming window slides in.
type Direction int

const (
	// SlideLeft brings the incoming window in from the right edge.
	SlideLeft Direction = iota
	// SlideRight brings the incoming window in from the left edge.
	SlideRight
)

// String returns the string representation of Direction.
func (d Direction) String() string {
	switch d {
	case SlideLeft:
		return "slide-left"
	case SlideRight:
		return "slide-right"
	default:
		return "unknown"
	}
}

// Stack is the window stack of one execution context. The head is the
// visible window. Every call takes the caller's context and fails with
// ErrWrongContext when it does not own the stack.
type Stack struct {
	c    *Compositor
	ctx  thread.Context
	list *nodelist.List[*window.Window]
}

func newStack(c *Compositor, ctx thread.Context) *Stack {
	return &Stack{c: c, ctx: ctx, list: newStackList(c.logger.With("stack", ctx.String()))}
}

// Context returns the execution context owning the stack.
func (s *Stack) Context() thread.Context { return s.ctx }

func (s *Stack) check(op string, caller thread.Context) error {
	if caller != s.ctx {
		return s.c.wrongContext(op, s.ctx, caller)
	}
	return nil
}

func (s *Stack) top() *window.Window {
	if n := s.list.Front(); n != nil {
		return n.Value
	}
	return nil
}

// Push makes w the new head. An animated push slides w in from the right.
func (s *Stack) Push(caller thread.Context, w *window.Window, animated bool) error {
	return s.push(caller, w, animated, SlideLeft)
}

// PushSlide makes w the new head and slides it in from the given side.
func (s *Stack) PushSlide(caller thread.Context, w *window.Window, dir Direction) error {
	return s.push(caller, w, true, dir)
}

func (s *Stack) push(caller thread.Context, w *window.Window, animated bool, dir Direction) error {
	if err := s.check("push", caller); err != nil {
		return err
	}
	c := s.c
	switch {
	case w.Destroyed():
		c.logger.Error("push of destroyed window", "window", w.String())
		return ErrWindowDestroyed
	case w.AttachedTo() != thread.None:
		c.logger.Error("push of attached window", "window", w.String(), "attached", w.AttachedTo())
		return fmt.Errorf("push %s: %w", w, ErrAlreadyAttached)
	case animated && c.active != nil:
		c.logger.Error("transition already running", "window", w.String(), "running", c.active.win.String())
		return ErrTransitionInProgress
	}

	prev := s.top()
	if _, err := s.list.InsertHead(w); err != nil {
		return fmt.Errorf("push %s: %w", w, err)
	}
	w.Attach(s.ctx)
	w.SetInvalidator(c)
	w.SetRenderScheduled(false)
	if prev != nil {
		s.cover(prev)
	}
	if !s.configure(w) {
		return nil
	}

	if animated && c.startTransition(s.ctx, w, dir) == nil {
		return nil
	}
	w.SetFrameOffset(0)
	c.forceRender(w)
	return nil
}

// cover demotes the previous head once something was pushed over it.
func (s *Stack) cover(w *window.Window) {
	if t := s.c.active; t != nil && t.win == w {
		s.c.cancelTransition()
	}
	w.Disappear()
	w.Unload()
	w.SetRenderScheduled(false)
}

// configure loads a new head and hands it the buttons if it is the input
// target. It reports false when the load handler pushed another window over
// w, in which case w is covered again.
func (s *Stack) configure(w *window.Window) bool {
	w.Load()
	if s.top() != w {
		s.cover(w)
		return false
	}
	w.Appear()
	if s.c.InputTarget() == w {
		w.ConfigureClicks(s.c.buttons)
	}
	return true
}

// Pop removes the head and returns it so the caller may destroy it. An
// empty stack returns nil and no error.
func (s *Stack) Pop(caller thread.Context, animated bool) (*window.Window, error) {
	if err := s.check("pop", caller); err != nil {
		return nil, err
	}
	w := s.top()
	if w == nil {
		return nil, nil
	}
	if err := s.Remove(caller, w, animated); err != nil {
		return nil, err
	}
	return w, nil
}

// Remove detaches w. When w was the head the new head is configured and
// redrawn; an animated removal slides it in from the left.
func (s *Stack) Remove(caller thread.Context, w *window.Window, animated bool) error {
	if err := s.check("remove", caller); err != nil {
		return err
	}
	c := s.c
	if !s.list.Contains(w) {
		c.logger.Info("remove: window not in stack", "window", w.String())
		return ErrNotInStack
	}
	if animated && c.active != nil && c.active.win != w {
		c.logger.Error("transition already running", "window", w.String(), "running", c.active.win.String())
		return ErrTransitionInProgress
	}
	s.detach(w, animated)
	return nil
}

func (s *Stack) detach(w *window.Window, animated bool) {
	c := s.c
	wasTop := s.top() == w
	if t := c.active; t != nil && t.win == w {
		c.cancelTransition()
	}

	s.list.Remove(w)
	if wasTop {
		w.Disappear()
	}
	w.Unload()
	w.Detach()
	w.SetInvalidator(nil)
	w.SetRenderScheduled(false)
	w.SetFrameOffset(0)

	if wasTop {
		if next := s.top(); next != nil && s.configure(next) {
			if !animated || c.startTransition(s.ctx, next, SlideRight) != nil {
				next.SetFrameOffset(0)
				c.forceRender(next)
			}
		}
	}

	if s.list.Len() == 0 {
		c.rebindInput()
		if s.ctx == thread.Overlay {
			// The overlay covered the outgoing window's columns, so a slide
			// still running underneath ends here and the head repaints whole.
			if pw := c.primary.top(); pw != nil {
				if t := c.active; t != nil && t.win == pw {
					c.cancelTransition()
				}
				c.forceRender(pw)
			}
		}
	}
}

// Top returns the head, or nil when the stack is empty.
func (s *Stack) Top(caller thread.Context) (*window.Window, error) {
	if err := s.check("top", caller); err != nil {
		return nil, err
	}
	return s.top(), nil
}

// Count returns the number of windows in the stack.
func (s *Stack) Count(caller thread.Context) (int, error) {
	if err := s.check("count", caller); err != nil {
		return 0, err
	}
	n := 0
	for range s.list.All() {
		n++
	}
	return n, nil
}

// Contains reports whether w is in the stack.
func (s *Stack) Contains(caller thread.Context, w *window.Window) (bool, error) {
	if err := s.check("contains", caller); err != nil {
		return false, err
	}
	return s.list.Contains(w), nil
}
