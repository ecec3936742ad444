// Package layer implements the drawable surface tree owned by windows.
package layer

import (
	"github.com/jmylchreest/winstack/internal/gfx"
)

// UpdateProc paints a layer. Coordinates are relative to the layer's origin.
type UpdateProc func(l *Layer, ctx gfx.Context)

// Layer is a rectangular drawable element. A layer owns its children.
type Layer struct {
	frame    gfx.Rect
	hidden   bool
	update   UpdateProc
	parent   *Layer
	children []*Layer

	// invalidate is set on root layers by their owner.
	invalidate func()
	destroyed  bool
}

// New creates a layer with the given frame.
func New(frame gfx.Rect) *Layer {
	return &Layer{frame: frame}
}

// Frame returns the frame relative to the parent.
func (l *Layer) Frame() gfx.Rect {
	return l.frame
}

// SetFrame moves or resizes the layer and marks it dirty.
func (l *Layer) SetFrame(frame gfx.Rect) {
	l.frame = frame
	l.MarkDirty()
}

// Bounds returns the layer's own coordinate space.
func (l *Layer) Bounds() gfx.Rect {
	return gfx.Rect{Size: l.frame.Size}
}

// SetUpdateProc sets the paint callback.
func (l *Layer) SetUpdateProc(proc UpdateProc) {
	l.update = proc
}

// SetHidden hides or shows the layer and its children.
func (l *Layer) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.MarkDirty()
}

// Hidden reports whether the layer is hidden.
func (l *Layer) Hidden() bool {
	return l.hidden
}

// Parent returns the parent layer, or nil for a root.
func (l *Layer) Parent() *Layer {
	return l.parent
}

// Children returns the child layers in paint order.
func (l *Layer) Children() []*Layer {
	return l.children
}

// AddChild appends child on top of existing children, detaching it from any
// previous parent.
func (l *Layer) AddChild(child *Layer) {
	if child == nil || child == l {
		return
	}
	child.RemoveFromParent()
	child.parent = l
	l.children = append(l.children, child)
	l.MarkDirty()
}

// RemoveFromParent detaches the layer from its parent.
func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == l {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	l.parent = nil
	p.MarkDirty()
}

// SetInvalidateFunc installs the hook MarkDirty calls on the root.
func (l *Layer) SetInvalidateFunc(fn func()) {
	l.invalidate = fn
}

// MarkDirty requests a redraw of the tree this layer belongs to.
func (l *Layer) MarkDirty() {
	root := l
	for root.parent != nil {
		root = root.parent
	}
	if root.invalidate != nil && !root.destroyed {
		root.invalidate()
	}
}

// Draw paints the layer and its children through ctx.
func (l *Layer) Draw(ctx gfx.Context) {
	if l.hidden || l.destroyed {
		return
	}
	prev := ctx.Origin()
	ctx.SetOrigin(prev.Add(l.frame.Origin))
	if l.update != nil {
		l.update(l, ctx)
	}
	for _, c := range l.children {
		c.Draw(ctx)
	}
	ctx.SetOrigin(prev)
}

// Destroy releases the layer and every child it owns.
func (l *Layer) Destroy() {
	if l.destroyed {
		return
	}
	l.RemoveFromParent()
	for _, c := range l.children {
		c.parent = nil
		c.Destroy()
	}
	l.children = nil
	l.update = nil
	l.invalidate = nil
	l.destroyed = true
}

// Destroyed reports whether Destroy has run.
func (l *Layer) Destroyed() bool {
	return l.destroyed
}
