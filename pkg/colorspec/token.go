// Package colorspec parses heterogeneous color tokens into canonical
// 8-bit RGB triplets.
//
// A color token is one of:
//   - a 12-bit hex string ("#F00", nibble-doubled to "#FF0000")
//   - a 24-bit hex string ("#FF0000")
//   - a CSS named color ("tomato")
//   - a functional form ("rgb(255, 0, 0)" or "rgb(100%, 0%, 0%)")
//   - an integer triplet (255, 0, 0)
//   - the transparency sentinel ("transparent", case-insensitive)
//   - the null sentinel (no token at all)
//
// Resolution is a pure function: the same token always resolves to the
// same color, and the sentinels resolve to the NoRecolor marker that
// tells the recolorizer to pass a stencil through untouched.
package colorspec

import (
	"fmt"
	"image/color"

	"github.com/tintstack/tintstack/pkg/errors"
)

// tokenKind discriminates the closed set of token shapes.
type tokenKind int

const (
	kindNone tokenKind = iota
	kindString
	kindTriplet
)

// Token is a single color value supplied by a caller. The zero value is
// the null sentinel, which resolves to NoRecolor.
type Token struct {
	kind    tokenKind
	text    string
	r, g, b int
}

// None returns the null sentinel token.
func None() Token {
	return Token{}
}

// String wraps a textual color token (hex, named, functional, or
// "transparent").
func String(s string) Token {
	return Token{kind: kindString, text: s}
}

// Triplet wraps an integer triplet token. Channels are validated during
// Resolve, not here, so out-of-range values surface as MALFORMED_COLOR_SPEC
// like every other malformed token.
func Triplet(r, g, b int) Token {
	return Token{kind: kindTriplet, r: r, g: g, b: b}
}

// FromValue converts a dynamically-typed value (as produced by TOML or
// JSON decoding of a colors file) into a Token. Strings become string
// tokens; integer slices of length 3 become triplets; nil becomes the
// null sentinel. Anything else fails with UNSUPPORTED_COLOR_FORMAT.
func FromValue(v any) (Token, error) {
	switch val := v.(type) {
	case nil:
		return None(), nil
	case string:
		return String(val), nil
	case []int:
		if len(val) != 3 {
			return Token{}, errors.New(errors.ErrCodeMalformedColorSpec,
				"integer triplet must have exactly 3 channels, got %d", len(val))
		}
		return Triplet(val[0], val[1], val[2]), nil
	case []int64:
		if len(val) != 3 {
			return Token{}, errors.New(errors.ErrCodeMalformedColorSpec,
				"integer triplet must have exactly 3 channels, got %d", len(val))
		}
		return Triplet(int(val[0]), int(val[1]), int(val[2])), nil
	case []any:
		if len(val) != 3 {
			return Token{}, errors.New(errors.ErrCodeMalformedColorSpec,
				"integer triplet must have exactly 3 channels, got %d", len(val))
		}
		var ch [3]int
		for i, e := range val {
			n, ok := e.(int64)
			if !ok {
				return Token{}, errors.New(errors.ErrCodeMalformedColorSpec,
					"triplet channel %d is not an integer: %v", i, e)
			}
			ch[i] = int(n)
		}
		return Triplet(ch[0], ch[1], ch[2]), nil
	default:
		return Token{}, errors.New(errors.ErrCodeUnsupportedColorFormat,
			"cannot interpret %T as a color token", v)
	}
}

// IsNone reports whether the token is the null sentinel.
func (t Token) IsNone() bool {
	return t.kind == kindNone
}

// String returns a stable textual form of the token, used in error
// messages and cache keys.
func (t Token) String() string {
	switch t.kind {
	case kindString:
		return t.text
	case kindTriplet:
		return fmt.Sprintf("rgb(%d,%d,%d)", t.r, t.g, t.b)
	default:
		return "<none>"
	}
}

// Resolved is the canonical result of resolving a token: either a
// concrete 8-bit RGB triplet, or the NoRecolor marker. The zero value is
// NoRecolor.
type Resolved struct {
	R, G, B uint8
	recolor bool
}

// NoRecolor is the marker meaning "leave the stencil's own RGB alone".
var NoRecolor = Resolved{}

// RGB builds a concrete resolved color.
func RGB(r, g, b uint8) Resolved {
	return Resolved{R: r, G: g, B: b, recolor: true}
}

// Recolor reports whether the color carries a concrete triplet.
func (c Resolved) Recolor() bool {
	return c.recolor
}

// NRGBA returns the resolved triplet as an opaque color.NRGBA.
// Calling it on NoRecolor returns opaque black; callers are expected to
// check Recolor first.
func (c Resolved) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// String returns "#RRGGBB" for concrete colors and "none" for NoRecolor.
func (c Resolved) String() string {
	if !c.recolor {
		return "none"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
