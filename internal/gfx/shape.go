package gfx

import (
	"fmt"
	"slices"
)

// Shape is the physical outline of the display.
type Shape string

const (
	ShapeRect  Shape = "rect"
	ShapeRound Shape = "round"
)

// ValidShapes returns all valid shape values.
func ValidShapes() []Shape {
	return []Shape{ShapeRect, ShapeRound}
}

// ParseShape validates a shape name.
func ParseShape(s string) (Shape, error) {
	sh := Shape(s)
	if slices.Contains(ValidShapes(), sh) {
		return sh, nil
	}
	return ShapeRect, fmt.Errorf("invalid shape %q, must be one of: %v", s, ValidShapes())
}
