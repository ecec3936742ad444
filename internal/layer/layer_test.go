package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/winstack/internal/gfx"
)

func TestLayer_DrawOffsetsChildren(t *testing.T) {
	fb := gfx.NewFramebuffer(gfx.Size{W: 20, H: 20})
	ctx := gfx.NewCanvas(fb)

	root := New(gfx.R(0, 0, 20, 20))
	child := New(gfx.R(5, 5, 4, 4))
	child.SetUpdateProc(func(l *Layer, ctx gfx.Context) {
		ctx.FillRect(l.Bounds(), gfx.ColorRed)
	})
	root.AddChild(child)

	root.Draw(ctx)

	assert.Equal(t, gfx.ColorRed, fb.Pixel(5, 5))
	assert.Equal(t, gfx.ColorRed, fb.Pixel(8, 8))
	assert.Equal(t, gfx.ColorClear, fb.Pixel(9, 9))
	assert.Equal(t, gfx.Pt(0, 0), ctx.Origin())
}

func TestLayer_HiddenSkipsSubtree(t *testing.T) {
	fb := gfx.NewFramebuffer(gfx.Size{W: 4, H: 4})
	root := New(gfx.R(0, 0, 4, 4))
	root.SetUpdateProc(func(l *Layer, ctx gfx.Context) {
		ctx.FillRect(l.Bounds(), gfx.ColorBlue)
	})
	root.SetHidden(true)

	root.Draw(gfx.NewCanvas(fb))
	assert.Equal(t, gfx.ColorClear, fb.Pixel(0, 0))
}

func TestLayer_MarkDirtyBubblesToRoot(t *testing.T) {
	root := New(gfx.R(0, 0, 10, 10))
	calls := 0
	root.SetInvalidateFunc(func() { calls++ })

	child := New(gfx.R(0, 0, 2, 2))
	root.AddChild(child)
	require.Equal(t, 1, calls)

	grandchild := New(gfx.R(0, 0, 1, 1))
	child.AddChild(grandchild)
	grandchild.MarkDirty()
	assert.Equal(t, 3, calls)
}

func TestLayer_AddChildReparents(t *testing.T) {
	a := New(gfx.R(0, 0, 1, 1))
	b := New(gfx.R(0, 0, 1, 1))
	c := New(gfx.R(0, 0, 1, 1))

	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Layer{c}, b.Children())
	assert.Equal(t, b, c.Parent())
}

func TestLayer_DestroyReleasesSubtree(t *testing.T) {
	root := New(gfx.R(0, 0, 10, 10))
	child := New(gfx.R(0, 0, 2, 2))
	grandchild := New(gfx.R(0, 0, 1, 1))
	root.AddChild(child)
	child.AddChild(grandchild)

	calls := 0
	root.SetInvalidateFunc(func() { calls++ })

	root.Destroy()

	assert.True(t, root.Destroyed())
	assert.True(t, child.Destroyed())
	assert.True(t, grandchild.Destroyed())
	assert.Nil(t, child.Parent())

	grandchild.MarkDirty()
	assert.Equal(t, 0, calls)
}

func TestStatusBar_SetColors(t *testing.T) {
	fb := gfx.NewFramebuffer(gfx.Size{W: 30, H: 20})
	sb := NewStatusBar(30)
	sb.SetColors(gfx.ColorOrange, gfx.ColorWhite)

	bg, fg := sb.Colors()
	assert.Equal(t, gfx.ColorOrange, bg)
	assert.Equal(t, gfx.ColorWhite, fg)

	sb.Draw(gfx.NewCanvas(fb))
	assert.Equal(t, gfx.ColorOrange, fb.Pixel(0, 0))
	assert.Equal(t, gfx.ColorClear, fb.Pixel(0, StatusBarHeight))
}
