// Package color implements the color math used by every audit: parsing CSS
// color strings, WCAG relative luminance and contrast, an approximate Delta E
// distance, and accessible-color suggestions. Everything here is pure.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit sRGB color. It encodes as a #RRGGBB string.
type RGB struct {
	R, G, B uint8
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", text)
	}
	*c = parsed
	return nil
}

var named = map[string]RGB{
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"maroon":  {128, 0, 0},
	"lime":    {0, 255, 0},
	"aqua":    {0, 255, 255},
	"cyan":    {0, 255, 255},
	"fuchsia": {255, 0, 255},
	"magenta": {255, 0, 255},
	"olive":   {128, 128, 0},
}

// Parse reads hex (#rgb, #rrggbb, with an ignored alpha nibble/byte),
// rgb()/rgba() and a small table of named colors.
// ok is false for anything else, including "transparent".
func Parse(s string) (c RGB, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RGB{}, false
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseFunc(s)
	}
	c, ok = named[s]
	return c, ok
}

func parseHex(h string) (RGB, bool) {
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
		h = h[:6]
	default:
		return RGB{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

func parseFunc(s string) (RGB, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return RGB{}, false
	}
	body := s[open+1 : end]
	if i := strings.IndexByte(body, '/'); i >= 0 {
		body = body[:i]
	}
	fields := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) < 3 {
		return RGB{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(fields[i])
		if !ok {
			return RGB{}, false
		}
		ch[i] = v
	}
	if len(fields) >= 4 {
		// fully transparent colors carry no visible value
		if a, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "%"), 64); err == nil && a == 0 {
			return RGB{}, false
		}
	}
	return RGB{ch[0], ch[1], ch[2]}, true
}

func parseChannel(f string) (uint8, bool) {
	pct := strings.HasSuffix(f, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v = v * 255 / 100
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v)))), true
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) RGB {
	c, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("color: invalid color %q", s))
	}
	return c
}

// Hex formats c as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// Lighten moves each channel pct (0..1) of the way toward white.
func (c RGB) Lighten(pct float64) RGB {
	f := func(v uint8) uint8 { return uint8(math.Round(float64(v) + (255-float64(v))*pct)) }
	return RGB{f(c.R), f(c.G), f(c.B)}
}

// Darken moves each channel pct (0..1) of the way toward black.
func (c RGB) Darken(pct float64) RGB {
	f := func(v uint8) uint8 { return uint8(math.Round(float64(v) * (1 - pct))) }
	return RGB{f(c.R), f(c.G), f(c.B)}
}

// FirstColor returns the first hex or rgb()/rgba() token found in s, as in
// a box-shadow value.
func FirstColor(s string) (RGB, bool) {
	lower := strings.ToLower(s)
	for i := 0; i < len(lower); i++ {
		switch {
		case lower[i] == '#':
			j := i + 1
			for j < len(lower) && isHexDigit(lower[j]) {
				j++
			}
			if c, ok := parseHex(lower[i+1 : j]); ok {
				return c, true
			}
		case strings.HasPrefix(lower[i:], "rgb"):
			end := strings.IndexByte(lower[i:], ')')
			if end < 0 {
				return RGB{}, false
			}
			if c, ok := parseFunc(lower[i : i+end+1]); ok {
				return c, true
			}
			i += end
		}
	}
	return RGB{}, false
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}
