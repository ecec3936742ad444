// Package thread identifies the logical execution contexts that share the
// display: the primary application context and the overlay context used for
// system UI such as notifications.
package thread

// Context identifies a logical execution context.
type Context uint8

const (
	// None means no context, e.g. nobody owns the framebuffer.
	None Context = iota
	// Primary is the application context.
	Primary
	// Overlay is the system UI context. It pre-empts Primary for drawing.
	Overlay
)

// String returns the string representation of Context.
func (c Context) String() string {
	switch c {
	case None:
		return "none"
	case Primary:
		return "primary"
	case Overlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Valid reports whether c names a real execution context.
func (c Context) Valid() bool {
	return c == Primary || c == Overlay
}
