// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggplan"
	"golang.org/x/image/colornames"
)

// Target is a drawing surface that renders one frame at a time and encodes
// it on demand.
//
// Targets are NOT thread-safe.
type Target interface {
	ggplan.Surface

	// Reset discards the current frame and starts an empty one.
	Reset()

	// WriteTo encodes the current frame.
	WriteTo(w io.Writer) (int64, error)

	// Close releases all resources associated with the target.
	// Close is idempotent.
	Close() error
}

// Options configures a new Target.
type Options struct {
	// Width and Height are the frame size in pixels.
	Width  int
	Height int

	// Background is the color every frame starts with. Empty means
	// transparent.
	Background string
}

// DefaultOptions returns an 800x600 white frame.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Background: "#ffffff"}
}

// ParseColor resolves a style color. Hex colors may have 3, 4, 6 or 8
// digits; anything else is looked up among the CSS color names. ok is false
// for empty or unknown colors.
func ParseColor(s string) (c color.NRGBA, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, false
	}
	if hex, found := strings.CutPrefix(s, "#"); found {
		if !isHex(hex) {
			return color.NRGBA{}, false
		}
		switch len(hex) {
		case 3, 4, 6, 8:
			return gg.Hex(hex).Color().(color.NRGBA), true
		}
		return color.NRGBA{}, false
	}
	rgba, found := colornames.Map[strings.ToLower(s)]
	if !found {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, true
}

// WithOpacity scales the alpha of c by opacity. Non-positive opacity is
// treated as fully opaque.
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case '0' <= ch && ch <= '9', 'a' <= ch && ch <= 'f', 'A' <= ch && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
