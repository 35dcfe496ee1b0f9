package colorspec

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tintstack/tintstack/pkg/errors"
)

// Resolve maps a color token to its canonical resolved color.
//
// The mapping is pure and total over the documented token shapes; any
// other input fails with one of the configuration error codes:
// MALFORMED_COLOR_SPEC for recognizable-but-broken tokens,
// UNKNOWN_COLOR_NAME for unlisted color names, and
// UNSUPPORTED_COLOR_FORMAT for shapes the resolver does not know at all.
func Resolve(t Token) (Resolved, error) {
	switch t.kind {
	case kindNone:
		return NoRecolor, nil
	case kindTriplet:
		return resolveTriplet(t.r, t.g, t.b)
	case kindString:
		return resolveString(t.text)
	default:
		return NoRecolor, errors.New(errors.ErrCodeInternal, "unknown token kind %d", t.kind)
	}
}

func resolveTriplet(r, g, b int) (Resolved, error) {
	for _, ch := range [3]int{r, g, b} {
		if ch < 0 || ch > 255 {
			return NoRecolor, errors.New(errors.ErrCodeMalformedColorSpec,
				"channel value %d outside [0,255] in rgb(%d,%d,%d)", ch, r, g, b)
		}
	}
	return RGB(uint8(r), uint8(g), uint8(b)), nil
}

func resolveString(s string) (Resolved, error) {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)

	switch {
	case lower == "transparent":
		return NoRecolor, nil

	case strings.HasPrefix(trimmed, "#"):
		return resolveHex(trimmed)

	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(trimmed, ")"):
		return resolveFunctional(trimmed[4 : len(trimmed)-1])

	case isNameLike(lower):
		rgb, ok := namedColors[lower]
		if !ok {
			return NoRecolor, errors.New(errors.ErrCodeUnknownColorName,
				"unknown color name %q", trimmed)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil

	default:
		return NoRecolor, errors.New(errors.ErrCodeUnsupportedColorFormat,
			"cannot interpret %q as a color", s)
	}
}

// resolveHex handles "#RGB" (nibble-doubled) and "#RRGGBB". The length
// check is explicit because go-colorful scans leniently; only the two
// documented shapes are accepted.
func resolveHex(s string) (Resolved, error) {
	if len(s) != 4 && len(s) != 7 {
		return NoRecolor, errors.New(errors.ErrCodeMalformedColorSpec,
			"hex color %q must be #RGB or #RRGGBB", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return NoRecolor, errors.Wrap(errors.ErrCodeMalformedColorSpec, err,
			"invalid hex color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// resolveFunctional handles the inside of "rgb(...)": either three
// integers in [0,255] or three percentages in [0%,100%].
func resolveFunctional(inner string) (Resolved, error) {
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return NoRecolor, errors.New(errors.ErrCodeMalformedColorSpec,
			"rgb() needs exactly 3 channels, got %d in rgb(%s)", len(parts), inner)
	}

	var ch [3]int
	for i, part := range parts {
		part = strings.TrimSpace(part)

		if strings.HasSuffix(part, "%") {
			pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(part, "%")), 64)
			if err != nil {
				return NoRecolor, errors.Wrap(errors.ErrCodeMalformedColorSpec, err,
					"invalid percentage %q in rgb(%s)", part, inner)
			}
			if pct < 0 || pct > 100 {
				return NoRecolor, errors.New(errors.ErrCodeMalformedColorSpec,
					"percentage %s outside [0%%,100%%] in rgb(%s)", part, inner)
			}
			ch[i] = int(pct / 100.0 * 255.0)
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return NoRecolor, errors.Wrap(errors.ErrCodeMalformedColorSpec, err,
				"invalid channel %q in rgb(%s)", part, inner)
		}
		if n < 0 || n > 255 {
			return NoRecolor, errors.New(errors.ErrCodeMalformedColorSpec,
				"channel value %d outside [0,255] in rgb(%s)", n, inner)
		}
		ch[i] = n
	}

	return RGB(uint8(ch[0]), uint8(ch[1]), uint8(ch[2])), nil
}

// isNameLike reports whether s could plausibly be a color name: ASCII
// letters only. This keeps the dispatch closed: anything that is not a
// hex, functional, sentinel, or name shape is an unsupported format
// rather than a failed name lookup.
func isNameLike(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
