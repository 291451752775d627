// Package style tracks per-grapheme text styling as sparse runs.
//
// A Runs value stores modifiers keyed by grapheme index. The style of a
// grapheme is the cumulative effect of every modifier at or before its
// index, so a single "bold on" entry at index 3 makes every grapheme from
// 3 onward bold until another entry switches it off.
//
// Runs must be kept consistent with the graphemes they annotate: the owner
// calls UpdateDueToGraphemeInsertion and UpdateDueToGraphemeDeletion for
// every text edit, SplitAt when the text is split and Join when two texts
// are concatenated.
package style

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Toggle is a tri-state flag change.
type Toggle int8

const (
	// Unchanged leaves the flag as it was.
	Unchanged Toggle = iota
	// On sets the flag.
	On
	// Off clears the flag.
	Off
)

func (t Toggle) apply(v bool) bool {
	switch t {
	case On:
		return true
	case Off:
		return false
	}
	return v
}

func toggleOf(v bool) Toggle {
	if v {
		return On
	}
	return Off
}

// Modifier changes a style starting at some grapheme.
type Modifier struct {
	Bold          Toggle
	Italic        Toggle
	Underline     Toggle
	Strikethrough Toggle

	// Foreground and Background replace the color when set. ClearForeground
	// and ClearBackground reset it to the default.
	Foreground      *colorful.Color
	Background      *colorful.Color
	ClearForeground bool
	ClearBackground bool
}

// IsEmpty reports whether the modifier changes nothing.
func (m Modifier) IsEmpty() bool {
	return m.Bold == Unchanged && m.Italic == Unchanged && m.Underline == Unchanged &&
		m.Strikethrough == Unchanged && m.Foreground == nil && m.Background == nil &&
		!m.ClearForeground && !m.ClearBackground
}

// Merge returns m with every change in later applied on top.
func (m Modifier) Merge(later Modifier) Modifier {
	if later.Bold != Unchanged {
		m.Bold = later.Bold
	}
	if later.Italic != Unchanged {
		m.Italic = later.Italic
	}
	if later.Underline != Unchanged {
		m.Underline = later.Underline
	}
	if later.Strikethrough != Unchanged {
		m.Strikethrough = later.Strikethrough
	}
	if later.Foreground != nil || later.ClearForeground {
		m.Foreground, m.ClearForeground = later.Foreground, later.ClearForeground
	}
	if later.Background != nil || later.ClearBackground {
		m.Background, m.ClearBackground = later.Background, later.ClearBackground
	}
	return m
}

// Style is the resolved style of one grapheme.
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Foreground    *colorful.Color
	Background    *colorful.Color
}

// Apply returns s changed by m.
func (s Style) Apply(m Modifier) Style {
	s.Bold = m.Bold.apply(s.Bold)
	s.Italic = m.Italic.apply(s.Italic)
	s.Underline = m.Underline.apply(s.Underline)
	s.Strikethrough = m.Strikethrough.apply(s.Strikethrough)
	switch {
	case m.Foreground != nil:
		c := *m.Foreground
		s.Foreground = &c
	case m.ClearForeground:
		s.Foreground = nil
	}
	switch {
	case m.Background != nil:
		c := *m.Background
		s.Background = &c
	case m.ClearBackground:
		s.Background = nil
	}
	return s
}

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool {
	return s.Bold == o.Bold && s.Italic == o.Italic && s.Underline == o.Underline &&
		s.Strikethrough == o.Strikethrough && colorEqual(s.Foreground, o.Foreground) &&
		colorEqual(s.Background, o.Background)
}

// Explicit returns a modifier that produces s from any starting style.
func (s Style) Explicit() Modifier {
	m := Modifier{
		Bold:          toggleOf(s.Bold),
		Italic:        toggleOf(s.Italic),
		Underline:     toggleOf(s.Underline),
		Strikethrough: toggleOf(s.Strikethrough),
	}
	if s.Foreground != nil {
		c := *s.Foreground
		m.Foreground = &c
	} else {
		m.ClearForeground = true
	}
	if s.Background != nil {
		c := *s.Background
		m.Background = &c
	} else {
		m.ClearBackground = true
	}
	return m
}

// String renders the style for diagnostics.
func (s Style) String() string {
	out := ""
	flag := func(on bool, name string) {
		if on {
			if out != "" {
				out += "+"
			}
			out += name
		}
	}
	flag(s.Bold, "bold")
	flag(s.Italic, "italic")
	flag(s.Underline, "underline")
	flag(s.Strikethrough, "strike")
	if s.Foreground != nil {
		flag(true, "fg"+s.Foreground.Hex())
	}
	if s.Background != nil {
		flag(true, "bg"+s.Background.Hex())
	}
	if out == "" {
		return "plain"
	}
	return out
}

// ParseColor parses a CSS style hex color ("#rrggbb" or "#rgb").
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}

// ForegroundModifier returns a modifier setting the foreground color.
func ForegroundModifier(hex string) (Modifier, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return Modifier{}, err
	}
	return Modifier{Foreground: &c}, nil
}

// BackgroundModifier returns a modifier setting the background color.
func BackgroundModifier(hex string) (Modifier, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return Modifier{}, err
	}
	return Modifier{Background: &c}, nil
}

func colorEqual(a, b *colorful.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Hex() == b.Hex()
}
