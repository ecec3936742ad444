package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxTransitionDuration caps [transition] duration.
const MaxTransitionDuration = 10 * time.Second

// Duration is the length of a slide transition. The file form is a Go
// duration string ("300ms", "1.5s") or a bare integer of milliseconds.
type Duration time.Duration

// UnmarshalText decodes the TOML value.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	var parsed time.Duration
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		parsed = time.Duration(ms) * time.Millisecond
	} else if parsed, err = time.ParseDuration(s); err != nil {
		return fmt.Errorf("transition duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText writes the duration string form, so a saved file reads back
// unchanged.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) validate() error {
	if v := d.Duration(); v < 0 || v > MaxTransitionDuration {
		return fmt.Errorf("transition duration must be between 0s and %s, got %s", MaxTransitionDuration, v)
	}
	return nil
}
