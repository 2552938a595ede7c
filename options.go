package xlgrid

import (
	"fmt"
	"io"
	"log/slog"
)

// FocusMode selects how keyboard focus is exposed to a renderer.
type FocusMode string

const (
	// FocusRoving gives tab index 0 to the active cell and -1 to every other cell.
	FocusRoving FocusMode = "roving"
	// FocusActiveDescendant keeps focus on the grid and names the active cell.
	FocusActiveDescendant FocusMode = "activedescendant"
)

// Wrap is the boundary behavior of directional navigation on one axis.
type Wrap string

const (
	WrapNone       Wrap = "nowrap"
	WrapLoop       Wrap = "loop"
	WrapContinuous Wrap = "continuous"
)

// ParseFocusMode converts a configuration string into a FocusMode.
func ParseFocusMode(s string) (FocusMode, error) {
	switch FocusMode(s) {
	case FocusRoving, FocusActiveDescendant:
		return FocusMode(s), nil
	case "":
		return FocusRoving, nil
	}
	return "", fmt.Errorf("unknown focus mode %q", s)
}

// ParseWrap converts a configuration string into a Wrap.
func ParseWrap(s string) (Wrap, error) {
	switch Wrap(s) {
	case WrapNone, WrapLoop, WrapContinuous:
		return Wrap(s), nil
	case "":
		return WrapLoop, nil
	}
	return "", fmt.Errorf("unknown wrap strategy %q", s)
}

// Options holds configuration for a Grid.
type Options struct {
	focusMode    FocusMode
	disabled     bool
	softDisabled bool
	rowWrap      Wrap
	colWrap      Wrap
	logger       *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		focusMode:    FocusRoving,
		softDisabled: true,
		rowWrap:      WrapLoop,
		colWrap:      WrapLoop,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Grid.
type Option func(*Options)

// WithFocusMode sets the focus strategy (default: roving).
func WithFocusMode(mode FocusMode) Option {
	return func(o *Options) { o.focusMode = mode }
}

// WithDisabled disables the whole grid.
func WithDisabled(disabled bool) Option {
	return func(o *Options) { o.disabled = disabled }
}

// WithSoftDisabled controls whether disabled cells stay reachable by focus (default: true).
func WithSoftDisabled(soft bool) Option {
	return func(o *Options) { o.softDisabled = soft }
}

// WithRowWrap sets the wrap strategy for vertical moves (default: loop).
func WithRowWrap(w Wrap) Option {
	return func(o *Options) { o.rowWrap = w }
}

// WithColWrap sets the wrap strategy for horizontal moves (default: loop).
func WithColWrap(w Wrap) Option {
	return func(o *Options) { o.colWrap = w }
}

// WithWrap sets the same wrap strategy on both axes.
func WithWrap(w Wrap) Option {
	return func(o *Options) {
		o.rowWrap = w
		o.colWrap = w
	}
}

// WithLogger receives debug records from state recovery. Nil restores the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = l
	}
}

// wrapFor returns the configured wrap for the axis d moves along.
func (o *Options) wrapFor(d Direction) Wrap {
	if d.Vertical() {
		return o.rowWrap
	}
	return o.colWrap
}
